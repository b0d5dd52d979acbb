package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
)

// GenreFilter narrows a genre listing. Empty fields match everything.
// Matching is case-insensitive substring containment.
type GenreFilter struct {
	Name        string
	Description string
}

// GenreStore defines the interface for genre data persistence.
type GenreStore interface {
	// Create saves a new genre.
	// Returns ErrGenreNameExists if the name is already taken.
	Create(ctx context.Context, genre *domain.Genre) error

	// GetByID retrieves a genre by its unique ID.
	// Returns ErrGenreNotFound if the genre does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Genre, error)

	// GetByName retrieves a genre by its exact name.
	// Returns ErrGenreNotFound if the genre does not exist.
	GetByName(ctx context.Context, name string) (*domain.Genre, error)

	// List returns genres matching the filter, ordered by name.
	List(ctx context.Context, filter GenreFilter) ([]*domain.Genre, error)

	// Update modifies an existing genre.
	// Returns ErrGenreNotFound if the genre does not exist.
	Update(ctx context.Context, genre *domain.Genre) error

	// Delete removes a genre by its ID.
	// Returns ErrGenreNotFound if the genre does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new GenreStore bound to the provided transaction.
	WithTx(tx *sql.Tx) GenreStore
}
