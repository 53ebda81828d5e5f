package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/calebm/taskman-api/internal/domain"
	"github.com/calebm/taskman-api/internal/platform/logger"
	"github.com/calebm/taskman-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend. Every operation
// acquires its own connection from the provider and releases it on all
// exit paths.
type PostgresUserStore struct {
	provider *ConnProvider
	logger   *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. If logger is nil, a default logger will be used.
func NewPostgresUserStore(provider *ConnProvider, log *slog.Logger) *PostgresUserStore {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresUserStore{
		provider: provider,
		logger:   log.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It inserts the user, then re-reads the row by its assigned ID so the
// caller receives the store-assigned fields (read-back).
// Returns store.ErrUsernameOrEmailExists on a unique violation.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return nil, err
	}

	conn, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer releaseConn(conn, log)

	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id
	`

	var id int64
	err = conn.QueryRowContext(ctx, query, user.Username, user.Email, user.HashedPassword).
		Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate username or email during user creation",
				slog.String("username", user.Username),
				slog.String("email", user.Email))
			return nil, fmt.Errorf(
				"%w: a user with this username or email already exists",
				store.ErrUsernameOrEmailExists)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return nil, store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	// Read-back: return the authoritative persisted row, not an echo of
	// the input.
	created, err := s.getByID(ctx, conn, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Error("user missing on read-back after creation",
				slog.Int64("user_id", id))
			return nil, fmt.Errorf("%w: user not found after creation", store.ErrUserNotFound)
		}
		return nil, err
	}

	log.Info("user created successfully",
		slog.Int64("user_id", created.ID),
		slog.String("username", created.Username))
	return created, nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conn, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer releaseConn(conn, log)

	return s.getByID(ctx, conn, id)
}

// Exists implements store.UserStore.Exists
func (s *PostgresUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conn, err := s.provider.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer releaseConn(conn, log)

	return userExists(ctx, conn, id)
}

// getByID fetches a user over an already-acquired connection. Shared by
// GetByID and the Create read-back, which reuses the inserting connection.
func (s *PostgresUserStore) getByID(ctx context.Context, db store.DBTX, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}

	return &user, nil
}

// userExists checks user presence over an already-acquired connection.
// Also used by the task store as its existence pre-check.
func userExists(ctx context.Context, db store.DBTX, id int64) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// releaseConn returns a connection to the pool, logging release failures
// instead of swallowing them.
func releaseConn(conn *sql.Conn, log *slog.Logger) {
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		log.Error("failed to release connection", slog.String("error", err.Error()))
	}
}
