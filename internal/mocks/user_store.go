package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/calebm/taskman-api/internal/domain"
	"github.com/calebm/taskman-api/internal/store"
)

// MockUserStore is a configurable in-memory implementation of
// store.UserStore. Behavior can be overridden per method via the Fn fields;
// otherwise a simple map-backed store with uniqueness checks is used.
type MockUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User

	CreateFn func(ctx context.Context, user *domain.User) (*domain.User, error)
	GetFn    func(ctx context.Context, id int64) (*domain.User, error)
	ExistsFn func(ctx context.Context, id int64) (bool, error)

	CreateCalls int
	GetCalls    int
	ExistsCalls int
}

// NewMockUserStore creates an empty MockUserStore.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[int64]*domain.User)}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Seed inserts a user directly, bypassing uniqueness checks, and returns it.
func (m *MockUserStore) Seed(username, email string) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user := &domain.User{
		ID:             m.nextID,
		Username:       username,
		Email:          email,
		HashedPassword: "hashed",
		CreatedAt:      time.Now().UTC(),
	}
	m.users[user.ID] = user
	return user
}

// Create implements store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, store.ErrUsernameOrEmailExists
		}
	}

	m.nextID++
	created := &domain.User{
		ID:             m.nextID,
		Username:       user.Username,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		CreatedAt:      time.Now().UTC(),
	}
	m.users[created.ID] = created

	copied := *created
	return &copied, nil
}

// GetByID implements store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	m.GetCalls++
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// Exists implements store.UserStore.Exists
func (m *MockUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	m.ExistsCalls++
	m.mu.Unlock()

	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}
