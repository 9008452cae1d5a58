package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobpulse/internal/common"
)

type ErrorCollector interface {
	IncErrors()
}

var collector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

type errorPayload struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	payload := errorPayload{Error: string(common.CodeInternal), Message: "internal error"}

	var coded *common.Error
	if errors.As(err, &coded) {
		status = statusFor(coded.Code)
		payload.Error = string(coded.Code)
		payload.Message = coded.Message
		payload.Fields = coded.Fields
	}
	if status >= http.StatusInternalServerError && collector != nil {
		collector.IncErrors()
	}
	JSON(w, status, payload)
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeMissingField, common.CodeInvalidAction, common.CodeInvalidBoostTier:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeNoActiveSubscription:
		return http.StatusPaymentRequired
	case common.CodeForbidden, common.CodeQuotaExceeded:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
