package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebm/taskman-api/internal/domain"
	"github.com/calebm/taskman-api/internal/store"
)

// scriptedConnector hands out connections where existence checks report the
// row as present and every other statement fails with writeErr. This lets
// the stores run past their pre-checks and hit the write error paths.
type scriptedConnector struct {
	writeErr error
}

func (c *scriptedConnector) Connect(ctx context.Context) (driver.Conn, error) {
	return &scriptedConn{writeErr: c.writeErr}, nil
}

func (c *scriptedConnector) Driver() driver.Driver { return nil }

type scriptedConn struct {
	writeErr error
}

func (c *scriptedConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *scriptedConn) Close() error { return nil }

func (c *scriptedConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *scriptedConn) QueryContext(
	ctx context.Context,
	query string,
	args []driver.NamedValue,
) (driver.Rows, error) {
	if strings.Contains(query, "SELECT EXISTS") {
		return &boolRows{value: true}, nil
	}
	return nil, c.writeErr
}

func (c *scriptedConn) ExecContext(
	ctx context.Context,
	query string,
	args []driver.NamedValue,
) (driver.Result, error) {
	return nil, c.writeErr
}

// boolRows yields a single one-column boolean row.
type boolRows struct {
	value bool
	done  bool
}

func (r *boolRows) Columns() []string { return []string{"exists"} }

func (r *boolRows) Close() error { return nil }

func (r *boolRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = r.value
	return nil
}

func newScriptedTaskStore(t *testing.T, writeErr error) *PostgresTaskStore {
	t.Helper()

	db := sql.OpenDB(&scriptedConnector{writeErr: writeErr})
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresTaskStore(NewConnProvider(db, nil), nil)
}

func TestCreateTaskForeignKeyViolationOnInsert(t *testing.T) {
	t.Parallel()

	// The existence pre-check passes, then the insert hits the foreign key
	// constraint: the user was deleted in between.
	pgErr := &pgconn.PgError{
		Code:           foreignKeyViolationCode,
		ConstraintName: "tasks_user_id_fkey",
	}
	taskStore := newScriptedTaskStore(t, pgErr)

	task, err := domain.NewTask(1, "t", nil, "", "", nil)
	require.NoError(t, err)

	created, createErr := taskStore.Create(context.Background(), task)
	require.Error(t, createErr)
	assert.Nil(t, created)

	assert.ErrorIs(t, createErr, store.ErrUserNotFound)
}

func TestCreateTaskWrapsStorageFailure(t *testing.T) {
	t.Parallel()

	taskStore := newScriptedTaskStore(t, errors.New("disk full"))

	task, err := domain.NewTask(1, "t", nil, "", "", nil)
	require.NoError(t, err)

	_, createErr := taskStore.Create(context.Background(), task)
	require.Error(t, createErr)

	var storeErr *store.StoreError
	require.ErrorAs(t, createErr, &storeErr)
	assert.Equal(t, "task", storeErr.Entity)
	assert.Equal(t, "create", storeErr.Operation)
}

func TestUpdateTaskWrapsStorageFailure(t *testing.T) {
	t.Parallel()

	taskStore := newScriptedTaskStore(t, errors.New("disk full"))

	task := &domain.Task{
		ID:       1,
		Title:    "t",
		Status:   domain.TaskStatusPending,
		Priority: domain.TaskPriorityMedium,
	}

	_, updateErr := taskStore.Update(context.Background(), task)
	require.Error(t, updateErr)

	var storeErr *store.StoreError
	require.ErrorAs(t, updateErr, &storeErr)
	assert.Equal(t, "task", storeErr.Entity)
	assert.Equal(t, "update", storeErr.Operation)
}
