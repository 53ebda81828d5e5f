package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/calebm/taskman-api/internal/domain"
	"github.com/calebm/taskman-api/internal/store"
)

// MockTaskStore is a configurable in-memory implementation of
// store.TaskStore. It shares a MockUserStore for the owning-user existence
// pre-checks so handler tests exercise the same not-found paths as the
// real store.
type MockTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*domain.Task
	users  *MockUserStore

	CreateFn func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn   func(ctx context.Context, userID int64, status *domain.TaskStatus) ([]*domain.Task, error)
	UpdateFn func(ctx context.Context, task *domain.Task) (*domain.Task, error)

	CreateCalls int
	GetCalls    int
	ListCalls   int
	UpdateCalls int
}

// NewMockTaskStore creates an empty MockTaskStore backed by the given user
// store for existence pre-checks.
func NewMockTaskStore(users *MockUserStore) *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[int64]*domain.Task),
		users: users,
	}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.Create
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.users != nil {
		exists, err := m.users.Exists(ctx, task.UserID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: user not found", store.ErrUserNotFound)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	now := time.Now().UTC()
	created := &domain.Task{
		ID:          m.nextID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.tasks[created.ID] = created

	copied := *created
	return &copied, nil
}

// GetByID implements store.TaskStore.GetByID
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	m.GetCalls++
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (m *MockTaskStore) ListByUser(
	ctx context.Context,
	userID int64,
	status *domain.TaskStatus,
) ([]*domain.Task, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, userID, status)
	}

	if status != nil && !status.IsValid() {
		return nil, domain.NewValidationError("status", string(*status),
			"invalid status value", domain.ErrInvalidTaskStatus)
	}

	if m.users != nil {
		exists, err := m.users.Exists(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: user not found", store.ErrUserNotFound)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := []*domain.Task{}
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		copied := *task
		tasks = append(tasks, &copied)
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok {
		return nil, fmt.Errorf("%w: task not found", store.ErrTaskNotFound)
	}

	existing.Title = task.Title
	existing.Description = task.Description
	existing.Status = task.Status
	existing.Priority = task.Priority
	existing.DueDate = task.DueDate
	existing.UpdatedAt = existing.UpdatedAt.Add(time.Microsecond)
	if now := time.Now().UTC(); now.After(existing.UpdatedAt) {
		existing.UpdatedAt = now
	}

	copied := *existing
	return &copied, nil
}
