package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/platform/logger"
	"github.com/openshelf/libra-api/internal/store"
)

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend. Author and genre
// associations live in the book_authors and book_genres link tables.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the
// BookStore interface. If logger is nil, a default logger will be used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// Create implements store.BookStore.Create
// It inserts the book row and its author/genre links. When called outside a
// transaction the links are inserted best-effort in order; callers that need
// atomicity should run Create inside store.RunInTransaction via WithTx.
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return err
	}

	query := `
		INSERT INTO books (id, title, isbn, description, rating, published_on,
			available_copies, review_count, page_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		book.ID,
		book.Title,
		book.ISBN,
		book.Description,
		book.Rating,
		book.PublishedOn,
		book.AvailableCopies,
		book.ReviewCount,
		book.PageCount,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return MapError(err)
	}

	for _, authorID := range book.AuthorIDs {
		if err := s.AddAuthor(ctx, book.ID, authorID); err != nil {
			return err
		}
	}
	for _, genreID := range book.GenreIDs {
		if err := s.AddGenre(ctx, book.ID, genreID); err != nil {
			return err
		}
	}

	log.Info("book created",
		slog.String("book_id", book.ID.String()),
		slog.String("title", book.Title))
	return nil
}

// GetByID implements store.BookStore.GetByID
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := `
		SELECT id, title, isbn, description, rating, published_on,
			available_copies, review_count, page_count, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	var book domain.Book
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.ISBN,
		&book.Description,
		&book.Rating,
		&book.PublishedOn,
		&book.AvailableCopies,
		&book.ReviewCount,
		&book.PageCount,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		return nil, MapError(err)
	}

	if err := s.loadAssociations(ctx, &book); err != nil {
		return nil, err
	}

	return &book, nil
}

// List implements store.BookStore.List
// Title and Description filters use case-insensitive substring matching;
// ISBN is exact.
func (s *PostgresBookStore) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	query := `
		SELECT id, title, isbn, description, rating, published_on,
			available_copies, review_count, page_count, created_at, updated_at
		FROM books
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR isbn = $2)
		  AND ($3 = '' OR description ILIKE '%' || $3 || '%')
		ORDER BY title
	`
	return s.queryBooks(ctx, query, filter.Title, filter.ISBN, filter.Description)
}

// ListByAuthor implements store.BookStore.ListByAuthor
func (s *PostgresBookStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Book, error) {
	query := `
		SELECT b.id, b.title, b.isbn, b.description, b.rating, b.published_on,
			b.available_copies, b.review_count, b.page_count, b.created_at, b.updated_at
		FROM books b
		JOIN book_authors ba ON ba.book_id = b.id
		WHERE ba.author_id = $1
		ORDER BY b.title
	`
	return s.queryBooks(ctx, query, authorID)
}

// Update implements store.BookStore.Update
// Returns store.ErrBookNotFound if the book does not exist.
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE books
		SET title = $1, isbn = $2, description = $3, published_on = $4,
			available_copies = $5, page_count = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		book.Title,
		book.ISBN,
		book.Description,
		book.PublishedOn,
		book.AvailableCopies,
		book.PageCount,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.String("book_id", book.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// Delete implements store.BookStore.Delete
// Link table rows are removed by ON DELETE CASCADE.
func (s *PostgresBookStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.String("book_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// AddAuthor implements store.BookStore.AddAuthor
func (s *PostgresBookStore) AddAuthor(ctx context.Context, bookID, authorID uuid.UUID) error {
	query := `
		INSERT INTO book_authors (book_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, bookID, authorID); err != nil {
		return MapError(err)
	}
	return nil
}

// RemoveAuthor implements store.BookStore.RemoveAuthor
func (s *PostgresBookStore) RemoveAuthor(ctx context.Context, bookID, authorID uuid.UUID) error {
	query := `DELETE FROM book_authors WHERE book_id = $1 AND author_id = $2`
	if _, err := s.db.ExecContext(ctx, query, bookID, authorID); err != nil {
		return MapError(err)
	}
	return nil
}

// AddGenre implements store.BookStore.AddGenre
func (s *PostgresBookStore) AddGenre(ctx context.Context, bookID, genreID uuid.UUID) error {
	query := `
		INSERT INTO book_genres (book_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, bookID, genreID); err != nil {
		return MapError(err)
	}
	return nil
}

// RemoveGenre implements store.BookStore.RemoveGenre
func (s *PostgresBookStore) RemoveGenre(ctx context.Context, bookID, genreID uuid.UUID) error {
	query := `DELETE FROM book_genres WHERE book_id = $1 AND genre_id = $2`
	if _, err := s.db.ExecContext(ctx, query, bookID, genreID); err != nil {
		return MapError(err)
	}
	return nil
}

// DecrementAvailableCopies implements store.BookStore.DecrementAvailableCopies
// The conditional UPDATE makes the decrement safe under concurrent checkouts:
// the row only changes when a copy remains.
func (s *PostgresBookStore) DecrementAvailableCopies(ctx context.Context, bookID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE books
		SET available_copies = available_copies - 1, updated_at = NOW()
		WHERE id = $1 AND available_copies > 0
	`
	result, err := s.db.ExecContext(ctx, query, bookID)
	if err != nil {
		log.Error("failed to decrement available copies",
			slog.String("error", err.Error()),
			slog.String("book_id", bookID.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		// Either the book is missing or no copies remain; distinguish the two.
		if _, err := s.GetByID(ctx, bookID); err != nil {
			return err
		}
		return store.ErrNoCopiesAvailable
	}

	return nil
}

// IncrementAvailableCopies implements store.BookStore.IncrementAvailableCopies
func (s *PostgresBookStore) IncrementAvailableCopies(ctx context.Context, bookID uuid.UUID) error {
	query := `
		UPDATE books
		SET available_copies = available_copies + 1, updated_at = NOW()
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// UpdateRating implements store.BookStore.UpdateRating
func (s *PostgresBookStore) UpdateRating(ctx context.Context, bookID uuid.UUID, rating float64, reviewCount int) error {
	query := `
		UPDATE books
		SET rating = $1, review_count = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, rating, reviewCount, bookID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// WithTx implements store.BookStore.WithTx
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{db: tx, logger: s.logger}
}

// queryBooks runs a multi-row book query and loads associations for each row.
func (s *PostgresBookStore) queryBooks(ctx context.Context, query string, args ...any) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var books []*domain.Book
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.ISBN,
			&book.Description,
			&book.Rating,
			&book.PublishedOn,
			&book.AvailableCopies,
			&book.ReviewCount,
			&book.PageCount,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	for _, book := range books {
		if err := s.loadAssociations(ctx, book); err != nil {
			return nil, err
		}
	}

	return books, nil
}

// loadAssociations populates the book's author and genre ID sets from the
// link tables.
func (s *PostgresBookStore) loadAssociations(ctx context.Context, book *domain.Book) error {
	authorIDs, err := s.queryIDs(ctx,
		`SELECT author_id FROM book_authors WHERE book_id = $1 ORDER BY author_id`, book.ID)
	if err != nil {
		return err
	}
	book.AuthorIDs = authorIDs

	genreIDs, err := s.queryIDs(ctx,
		`SELECT genre_id FROM book_genres WHERE book_id = $1 ORDER BY genre_id`, book.ID)
	if err != nil {
		return err
	}
	book.GenreIDs = genreIDs

	return nil
}

func (s *PostgresBookStore) queryIDs(ctx context.Context, query string, arg any) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}
