package flight

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrorCodeRepositoryFailure ErrorCode = "REPOSITORY_FAILURE"
	ErrorCodeInternalFailure   ErrorCode = "INTERNAL_FAILURE"
)

// AppError is an error that maps directly onto an HTTP response.
type AppError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"error"`
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(field, format string, args ...any) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    ErrorCodeValidation,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrorCodeValidation
}

// RepositoryError is returned by Repository implementations when the
// underlying store fails. The service hands it back untouched.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
