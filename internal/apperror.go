package internal

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrUpstream   = errors.New("upstream unavailable")
)

// AppError is the error shape surfaced to API callers. Field is set for
// validation failures so the client can point at the offending input.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// NewValidationError reports a field-specific validation failure.
func NewValidationError(field, msg string) *AppError {
	return &AppError{Code: 400, Message: msg, Field: field, Err: ErrValidation}
}
