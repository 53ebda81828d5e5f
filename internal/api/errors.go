package api

import (
	"errors"
	"net/http"

	"github.com/calebm/taskman-api/internal/api/shared"
	"github.com/calebm/taskman-api/internal/domain"
	"github.com/calebm/taskman-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case domain.IsValidationError(err),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyPassword):
		return http.StatusBadRequest

	// Storage unreachable or any other storage failure
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Not-found, conflict and validation failures get
// actionable detail; storage failures stay deliberately generic so no
// internal detail leaks.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case store.IsNotFoundError(err):
		return "Not found"

	// Conflict errors
	case store.IsDuplicateError(err):
		return "A user with this username or email already exists"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return "Invalid status value"

	case errors.Is(err, domain.ErrInvalidTaskPriority):
		return "Invalid priority value"

	case domain.IsValidationError(err), errors.Is(err, domain.ErrInvalidID):
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return "Invalid " + verr.Field
		}
		return "Validation error"

	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrEmptyUsername),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyPassword):
		return "Validation error"

	// Default case for unknown errors; covers connection and storage
	// failures, which are deliberately opaque to callers.
	default:
		return "Database error"
	}
}

// HandleAPIError writes the response for a failed store or domain call:
// status from MapErrorToStatusCode, body from GetSafeErrorMessage (or the
// given override), full error detail in the logs only.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
