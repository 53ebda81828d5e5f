package store

import (
	"context"

	"github.com/calebm/taskman-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and returns the persisted row,
	// including the store-assigned ID and creation timestamp (read-back).
	// Returns ErrUsernameOrEmailExists if the username or email is taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Exists reports whether a user with the given ID is present.
	// Used as an existence pre-check before inserting dependent rows.
	Exists(ctx context.Context, id int64) (bool, error)
}
