package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrStorage indicates that the underlying store could not complete an operation.
var ErrStorage = errors.New("storage failure")

// AppError carries an HTTP-ish status code and a human readable message alongside the
// underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports 5xx app errors as storage failures so callers can use errors.Is(err, ErrStorage).
func (e *AppError) Is(target error) bool {
	return target == ErrStorage && e.Code >= 500
}

// NewStorageError wraps a driver error as a storage failure.
func NewStorageError(message string, err error) *AppError {
	return NewAppError(500, message, err)
}

// Validationf builds an error wrapping ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
