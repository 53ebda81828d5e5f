package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyUsername is returned when a username is missing.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyEmail is returned when an email is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrEmptyPassword is returned when no password or password hash is present.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrEmptyTitle is returned when a task title is missing.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidTaskStatus is returned when a task status is not one of the
	// enumerated values. This is also the error behind an invalid list filter.
	ErrInvalidTaskStatus = fmt.Errorf("%w: invalid status value", ErrValidation)

	// ErrInvalidTaskPriority is returned when a task priority is not one of
	// the enumerated values.
	ErrInvalidTaskPriority = fmt.Errorf("%w: invalid priority value", ErrValidation)
)

// ValidationError carries the offending field and the received value so that
// callers can surface an actionable message without string matching.
type ValidationError struct {
	Field   string // The field that failed validation (e.g., "status")
	Value   string // The received value
	Message string // Human-readable description
	Err     error  // Sentinel error, supports errors.Is
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field and value.
func NewValidationError(field, value, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// IsValidationError checks if the error is any kind of validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
