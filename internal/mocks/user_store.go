package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/store"
)

// MockUserStore is an in-memory store.UserStore. Each method prefers its
// Fn override; without one it falls back to the Users map, which enforces
// email and username uniqueness like the real store.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	// Users backs the default implementation, keyed by email.
	Users       map[string]*domain.User
	CreateError error
}

// NewMockUserStore returns a mock with an empty user map.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: make(map[string]*domain.User)}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, taken := m.Users[user.Email]; taken {
		return store.ErrEmailExists
	}
	for _, existing := range m.Users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	m.Users[user.Email] = user
	return nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if user, ok := m.Users[email]; ok {
		return user, nil
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if user := m.findByID(id); user != nil {
		return user, nil
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	current := m.findByID(user.ID)
	if current == nil {
		return store.ErrUserNotFound
	}
	if current.Email != user.Email {
		if _, taken := m.Users[user.Email]; taken {
			return store.ErrEmailExists
		}
		delete(m.Users, current.Email)
	}
	m.Users[user.Email] = user
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if user := m.findByID(id); user != nil {
		delete(m.Users, user.Email)
		return nil
	}
	return store.ErrUserNotFound
}

// WithTx satisfies store.UserStore; the mock has no transaction state.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

func (m *MockUserStore) findByID(id uuid.UUID) *domain.User {
	for _, user := range m.Users {
		if user.ID == id {
			return user
		}
	}
	return nil
}
