package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal wraps storage and other unexpected failures.
var ErrInternal = errors.New("internal error")

// ErrState indicates an operation was blocked by the current state of a resource,
// such as mutating a posted transaction.
var ErrState = errors.New("state conflict")

// ErrIntegrity indicates the ledger hash chain failed verification.
var ErrIntegrity = errors.New("integrity violation")

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the cause and ErrInternal for 5xx codes so callers can
// match either with errors.Is.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Code >= 500 {
		errs = append(errs, ErrInternal)
	}
	return errs
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError wraps ErrNotFound with the kind and id of the missing resource.
func NewNotFoundError(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}
