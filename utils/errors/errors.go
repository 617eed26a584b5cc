package errors

import (
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
)

type CustomError struct {
	errType    constant.ErrorType
	violations []model.FieldViolation
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

// Violations returns the field-level failures, set only for ErrValidation
func (c CustomError) Violations() []model.FieldViolation {
	return c.violations
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetValidationError builds an ErrValidation carrying the violation list
func SetValidationError(violations []model.FieldViolation) CustomError {
	return CustomError{
		errType:    constant.ErrValidation,
		violations: violations,
	}
}
