package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
)

// BookFilter narrows a book listing. Empty fields match everything.
// Title and Description use case-insensitive substring containment;
// ISBN is an exact match.
type BookFilter struct {
	Title       string
	ISBN        string
	Description string
}

// BookStore defines the interface for book data persistence, including the
// book's author and genre associations.
type BookStore interface {
	// Create saves a new book together with its author and genre sets.
	// Returns ErrInvalidEntity if a referenced author or genre does not exist.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book with its author and genre IDs populated.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// List returns books matching the filter, ordered by title.
	List(ctx context.Context, filter BookFilter) ([]*domain.Book, error)

	// ListByAuthor returns the books written by the given author profile.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Book, error)

	// Update modifies an existing book's catalog fields. The author and
	// genre sets are managed through AddAuthor/RemoveAuthor and
	// AddGenre/RemoveGenre instead.
	// Returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book by its ID.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddAuthor links an author profile to the book. Adding an existing
	// link is a no-op.
	AddAuthor(ctx context.Context, bookID, authorID uuid.UUID) error

	// RemoveAuthor unlinks an author profile from the book.
	RemoveAuthor(ctx context.Context, bookID, authorID uuid.UUID) error

	// AddGenre links a genre to the book. Adding an existing link is a no-op.
	AddGenre(ctx context.Context, bookID, genreID uuid.UUID) error

	// RemoveGenre unlinks a genre from the book.
	RemoveGenre(ctx context.Context, bookID, genreID uuid.UUID) error

	// DecrementAvailableCopies atomically takes one copy of the book.
	// Returns ErrNoCopiesAvailable when no copies remain, preventing
	// concurrent checkouts from going negative.
	DecrementAvailableCopies(ctx context.Context, bookID uuid.UUID) error

	// IncrementAvailableCopies atomically returns one copy of the book.
	IncrementAvailableCopies(ctx context.Context, bookID uuid.UUID) error

	// UpdateRating sets the book's derived rating and review count.
	UpdateRating(ctx context.Context, bookID uuid.UUID, rating float64, reviewCount int) error

	// WithTx returns a new BookStore bound to the provided transaction.
	WithTx(tx *sql.Tx) BookStore
}
