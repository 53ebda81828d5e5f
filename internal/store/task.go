package store

import (
	"context"

	"github.com/calebm/taskman-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and returns the persisted row,
	// including the store-assigned ID and timestamps (read-back).
	// Returns ErrUserNotFound if the owning user does not exist; the
	// existence pre-check happens before any insert is attempted.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user, optionally
	// restricted to a single status. No ordering is guaranteed.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns domain.ErrInvalidTaskStatus if the filter is not a valid status.
	// Returns an empty slice, never nil, when no tasks match.
	ListByUser(ctx context.Context, userID int64, status *domain.TaskStatus) ([]*domain.Task, error)

	// Update replaces all mutable fields of an existing task (full-replace,
	// not a partial patch) and refreshes the update timestamp. Returns the
	// persisted row after the write (read-back).
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
}
