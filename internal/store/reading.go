package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
)

// ProgressStore defines the interface for reading progress persistence.
// Each (user, book) pair has at most one entry; together the entries form
// the user's personal shelf.
type ProgressStore interface {
	// Create saves a new reading progress entry.
	// Returns ErrAlreadyShelved if the user already shelved the book.
	// Returns ErrInvalidEntity if the referenced book or user does not exist.
	Create(ctx context.Context, progress *domain.ReadingProgress) error

	// Get retrieves the progress entry for the given user and book.
	// Returns ErrProgressNotFound if the book is not on the user's shelf.
	Get(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error)

	// ListByUser returns all of the user's shelf entries, most recently
	// updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReadingProgress, error)

	// Update modifies an existing progress entry.
	// Returns ErrProgressNotFound if the entry does not exist.
	Update(ctx context.Context, progress *domain.ReadingProgress) error

	// Delete removes the user's progress entry for the given book.
	// Returns ErrProgressNotFound if the entry does not exist.
	Delete(ctx context.Context, userID, bookID uuid.UUID) error

	// WithTx returns a new ProgressStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProgressStore
}
