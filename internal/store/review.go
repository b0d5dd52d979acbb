package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
)

// ReviewStore defines the interface for review data persistence.
type ReviewStore interface {
	// Create saves a new review.
	// Returns ErrAlreadyReviewed if the patron already reviewed the book.
	// Returns ErrInvalidEntity if the referenced book or patron does not exist.
	Create(ctx context.Context, review *domain.Review) error

	// ListByBook returns all reviews of the given book, newest first.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]*domain.Review, error)

	// AggregateByBook computes the average rating and review count for the
	// book. Returns (0, 0) when the book has no reviews.
	AggregateByBook(ctx context.Context, bookID uuid.UUID) (avg float64, count int, err error)

	// WithTx returns a new ReviewStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ReviewStore
}
