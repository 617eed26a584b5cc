package transport

import (
	"encoding/json"
	"net/http"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
)

type baseResponse struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Data       interface{}            `json:"data,omitempty"`
	Violations []model.FieldViolation `json:"violations,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, baseResponse{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, baseResponse{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	if ce, ok := err.(cerr.CustomError); ok {
		writeJSON(w, ce.ErrorHTTPCode(), baseResponse{
			Code:       ce.ErrorCode(),
			Message:    ce.Error(),
			Violations: ce.Violations(),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, baseResponse{
		Code:    constant.ErrorTypeCode[constant.ErrInternal],
		Message: constant.ErrorTypeMessage[constant.ErrInternal],
	})
}

func writeJSON(w http.ResponseWriter, status int, body baseResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
