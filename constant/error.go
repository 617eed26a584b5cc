package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrValidation
	ErrUnauthorize
	ErrForbidden
	ErrConflict
	ErrCredentialExists
	ErrInvalidPassword
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:          "success",
	ErrInternal:         "error internal",
	ErrNotFound:         "data not found",
	ErrInvalidRequest:   "invalid request",
	ErrValidation:       "validation failed",
	ErrUnauthorize:      "unauthorize request",
	ErrForbidden:        "insufficient role",
	ErrConflict:         "conflicting state",
	ErrCredentialExists: "email already exists",
	ErrInvalidPassword:  "password invalid",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:          http.StatusOK,
	ErrInternal:         http.StatusInternalServerError,
	ErrNotFound:         http.StatusNotFound,
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrValidation:       http.StatusUnprocessableEntity,
	ErrUnauthorize:      http.StatusUnauthorized,
	ErrForbidden:        http.StatusForbidden,
	ErrConflict:         http.StatusBadRequest,
	ErrCredentialExists: http.StatusBadRequest,
	ErrInvalidPassword:  http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:          "0000",
	ErrInternal:         "0001",
	ErrNotFound:         "0002",
	ErrInvalidRequest:   "0003",
	ErrValidation:       "0004",
	ErrUnauthorize:      "0005",
	ErrForbidden:        "0006",
	ErrConflict:         "0007",
	ErrCredentialExists: "0008",
	ErrInvalidPassword:  "0009",
}
