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

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend. Every operation
// follows validate → existence-check → mutate → read-back on a connection
// of its own, released on all exit paths.
type PostgresTaskStore struct {
	provider *ConnProvider
	logger   *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(provider *ConnProvider, log *slog.Logger) *PostgresTaskStore {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresTaskStore{
		provider: provider,
		logger:   log.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `task_id, user_id, title, description, status, priority, due_date, created_at, updated_at`

// Create implements store.TaskStore.Create
// It verifies the owning user exists before inserting, then re-reads the
// row by its assigned ID (read-back).
// Returns store.ErrUserNotFound if the owning user is absent.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID))
		return nil, err
	}

	conn, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer releaseConn(conn, log)

	// Existence pre-check so the caller gets an actionable not-found
	// instead of a foreign key violation.
	exists, err := userExists(ctx, conn, task.UserID)
	if err != nil {
		log.Error("failed to check user existence",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID))
		return nil, err
	}
	if !exists {
		log.Debug("user not found for task creation", slog.Int64("user_id", task.UserID))
		return nil, fmt.Errorf("%w: user not found", store.ErrUserNotFound)
	}

	query := `
		INSERT INTO tasks (user_id, title, description, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING task_id
	`

	var id int64
	err = conn.QueryRowContext(
		ctx,
		query,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
	).Scan(&id)
	if err != nil {
		// The user can vanish between the pre-check and the insert; the
		// foreign key constraint catches that and still reads as not-found.
		if IsForeignKeyViolation(err) {
			log.Debug("user deleted before task insert", slog.Int64("user_id", task.UserID))
			return nil, fmt.Errorf("%w: user not found", store.ErrUserNotFound)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID))
		return nil, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	created, err := s.getByID(ctx, conn, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Error("task missing on read-back after creation",
				slog.Int64("task_id", id))
			return nil, fmt.Errorf("%w: task not found after creation", store.ErrTaskNotFound)
		}
		return nil, err
	}

	log.Info("task created successfully",
		slog.Int64("task_id", created.ID),
		slog.Int64("user_id", created.UserID),
		slog.String("status", string(created.Status)))
	return created, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conn, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer releaseConn(conn, log)

	return s.getByID(ctx, conn, id)
}

// ListByUser implements store.TaskStore.ListByUser
// The status filter, when present, must be one of the enumerated values;
// rows come back in store-native order.
func (s *PostgresTaskStore) ListByUser(
	ctx context.Context,
	userID int64,
	status *domain.TaskStatus,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Filter validation happens before any database interaction.
	if status != nil && !status.IsValid() {
		log.Warn("invalid status filter",
			slog.String("status", string(*status)),
			slog.Int64("user_id", userID))
		return nil, domain.NewValidationError("status", string(*status),
			"invalid status value", domain.ErrInvalidTaskStatus)
	}

	conn, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer releaseConn(conn, log)

	exists, err := userExists(ctx, conn, userID)
	if err != nil {
		log.Error("failed to check user existence",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, err
	}
	if !exists {
		log.Debug("user not found for task listing", slog.Int64("user_id", userID))
		return nil, fmt.Errorf("%w: user not found", store.ErrUserNotFound)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks by user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks for user",
		slog.Int64("user_id", userID),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// It replaces all mutable fields unconditionally and refreshes the update
// timestamp, then re-reads the row (read-back).
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.ValidateForUpdate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return nil, err
	}

	conn, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer releaseConn(conn, log)

	exists, err := taskExists(ctx, conn, task.ID)
	if err != nil {
		log.Error("failed to check task existence",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return nil, err
	}
	if !exists {
		log.Debug("task not found for update", slog.Int64("task_id", task.ID))
		return nil, fmt.Errorf("%w: task not found", store.ErrTaskNotFound)
	}

	// updated_at comes from the database clock, the same one that assigned
	// created_at, so the refreshed value is always strictly later.
	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = now()
		WHERE task_id = $6
	`

	result, err := conn.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return nil, store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	// Zero affected rows is itself a not-found signal, closing most of the
	// window between the pre-check and the write.
	if err := CheckRowsAffected(result, "task"); err != nil {
		return nil, err
	}

	updated, err := s.getByID(ctx, conn, task.ID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Error("task missing on read-back after update",
				slog.Int64("task_id", task.ID))
			return nil, fmt.Errorf("%w: task not found after update", store.ErrTaskNotFound)
		}
		return nil, err
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", updated.ID),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// getByID fetches a task over an already-acquired connection. Shared by
// GetByID and the Create/Update read-backs.
func (s *PostgresTaskStore) getByID(ctx context.Context, db store.DBTX, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`

	row := db.QueryRowContext(ctx, query, id)

	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	return &task, nil
}

// taskExists checks task presence over an already-acquired connection.
func taskExists(ctx context.Context, db store.DBTX, id int64) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE task_id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// scanTask scans one row from a taskColumns query.
func scanTask(rows *sql.Rows) (*domain.Task, error) {
	var task domain.Task
	err := rows.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
