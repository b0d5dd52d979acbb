package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists or ErrUsernameExists if the identity is taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's details.
	// The caller MUST provide a complete user object including HashedPassword.
	// If a new plain text Password is provided, it will be hashed and the
	// HashedPassword will be updated.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}

// PatronStore defines the interface for patron profile persistence.
type PatronStore interface {
	// Create saves a new patron profile.
	// Returns ErrPatronExists if the user already has one.
	Create(ctx context.Context, profile *domain.PatronProfile) error

	// GetByID retrieves a patron profile by its ID.
	// Returns ErrPatronNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PatronProfile, error)

	// GetByUserID retrieves the patron profile belonging to the given user.
	// Returns ErrPatronNotFound if the user has no patron profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PatronProfile, error)

	// WithTx returns a new PatronStore bound to the provided transaction.
	WithTx(tx *sql.Tx) PatronStore
}

// AuthorStore defines the interface for author profile persistence.
type AuthorStore interface {
	// Create saves a new author profile.
	// Returns ErrAuthorExists if the user already has one.
	Create(ctx context.Context, profile *domain.AuthorProfile) error

	// GetByID retrieves an author profile by its ID.
	// Returns ErrAuthorNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AuthorProfile, error)

	// GetByUserID retrieves the author profile belonging to the given user.
	// Returns ErrAuthorNotFound if the user has no author profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.AuthorProfile, error)

	// List returns all author profiles ordered by creation time.
	List(ctx context.Context) ([]*domain.AuthorProfile, error)

	// WithTx returns a new AuthorStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AuthorStore
}
