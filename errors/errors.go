package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// HTTPStatus maps an error code to the status the REST surface returns.
// Conflict-class codes (duplicate, inactive, lost race) are 409 so callers
// can distinguish retryable races from bad input.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeInvalidScore, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeDuplicateSubmission, CodeChallengeNotActive, CodeConcurrencyConflict, CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
