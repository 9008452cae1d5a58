package common

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Code string

const (
	CodeValidation           Code = "validation"
	CodeNotFound             Code = "not_found"
	CodeUnauthorized         Code = "unauthorized"
	CodeForbidden            Code = "forbidden"
	CodeConflict             Code = "conflict"
	CodeNoActiveSubscription Code = "no_active_subscription"
	CodeQuotaExceeded        Code = "quota_exceeded"
	CodeInvalidBoostTier     Code = "invalid_boost_tier"
	CodeInvalidAction        Code = "invalid_action"
	CodeMissingField         Code = "missing_required_field"
	CodeInternal             Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
	stack   []byte
}

func NewError(code Code, message string, cause error) *Error {
	e := &Error{Code: code, Message: message, cause: cause}
	if code == CodeInternal {
		if stackErr, ok := cause.(*goerrors.Error); ok {
			e.stack = stackErr.Stack()
		} else if cause != nil {
			e.stack = goerrors.Wrap(cause, 1).Stack()
		} else {
			e.stack = goerrors.New(message).Stack()
		}
	}
	return e
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) StackTrace() []byte {
	return e.stack
}

func Is(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}
