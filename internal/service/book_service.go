package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/store"
)

// BookServiceError wraps errors from the book service with context.
type BookServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for BookServiceError.
func (e *BookServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("book service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("book service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *BookServiceError) Unwrap() error {
	return e.Err
}

// NewBookParams carries the caller-supplied fields for creating a book.
// GenreNames are resolved against the genre catalog; unknown names fail the
// whole creation with ErrUnknownGenre.
type NewBookParams struct {
	Title           string
	ISBN            string
	Description     string
	PublishedOn     time.Time
	AvailableCopies int
	PageCount       int
	GenreNames      []string
}

// BookService provides catalog management. Mutating operations require the
// author role and, for edits and deletes, authorship of the target book.
type BookService interface {
	// CreateBook creates a new book credited to the calling author.
	// Returns domain.ErrNotAuthor if the user has no author profile.
	CreateBook(ctx context.Context, userID uuid.UUID, params NewBookParams) (*domain.Book, error)

	// GetBook retrieves a book by ID.
	GetBook(ctx context.Context, bookID uuid.UUID) (*domain.Book, error)

	// ListBooks returns books matching the filter.
	ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error)

	// ListMyBooks returns the books authored by the calling author.
	ListMyBooks(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error)

	// UpdateBook applies a partial edit to a book the caller authored.
	// Returns domain.ErrNotBookAuthor if the caller is not one of its authors.
	UpdateBook(ctx context.Context, userID, bookID uuid.UUID, update domain.BookUpdate) (*domain.Book, error)

	// DeleteBook removes a book the caller authored.
	// Returns domain.ErrNotBookAuthor if the caller is not one of its authors.
	DeleteBook(ctx context.Context, userID, bookID uuid.UUID) error

	// AddBookAuthor credits another author on a book the caller authored.
	AddBookAuthor(ctx context.Context, userID, bookID, authorID uuid.UUID) error

	// RemoveBookAuthor removes an author credit from a book the caller authored.
	RemoveBookAuthor(ctx context.Context, userID, bookID, authorID uuid.UUID) error

	// AddBookGenre tags a book the caller authored with a genre.
	AddBookGenre(ctx context.Context, userID, bookID, genreID uuid.UUID) error

	// RemoveBookGenre removes a genre tag from a book the caller authored.
	RemoveBookGenre(ctx context.Context, userID, bookID, genreID uuid.UUID) error
}

// bookServiceImpl implements the BookService interface
type bookServiceImpl struct {
	bookStore   store.BookStore
	genreStore  store.GenreStore
	authorStore store.AuthorStore
	db          *sql.DB
	logger      *slog.Logger
}

// NewBookService creates a new BookService.
// It returns an error if any of the required dependencies are nil.
func NewBookService(
	bookStore store.BookStore,
	genreStore store.GenreStore,
	authorStore store.AuthorStore,
	db *sql.DB,
	logger *slog.Logger,
) (BookService, error) {
	if bookStore == nil {
		return nil, &BookServiceError{Operation: "create_service", Message: "bookStore cannot be nil"}
	}
	if genreStore == nil {
		return nil, &BookServiceError{Operation: "create_service", Message: "genreStore cannot be nil"}
	}
	if authorStore == nil {
		return nil, &BookServiceError{Operation: "create_service", Message: "authorStore cannot be nil"}
	}
	if db == nil {
		return nil, &BookServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &bookServiceImpl{
		bookStore:   bookStore,
		genreStore:  genreStore,
		authorStore: authorStore,
		db:          db,
		logger:      logger.With("component", "book_service"),
	}, nil
}

// CreateBook implements BookService.CreateBook
func (s *bookServiceImpl) CreateBook(
	ctx context.Context,
	userID uuid.UUID,
	params NewBookParams,
) (*domain.Book, error) {
	author, err := s.requireAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	book, err := domain.NewBook(
		params.Title,
		params.ISBN,
		params.Description,
		params.PublishedOn,
		params.AvailableCopies,
		params.PageCount,
	)
	if err != nil {
		return nil, err
	}
	book.AuthorIDs = []uuid.UUID{author.ID}

	genreIDs, err := s.resolveGenres(ctx, params.GenreNames)
	if err != nil {
		return nil, err
	}
	book.GenreIDs = genreIDs

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.bookStore.WithTx(tx).Create(ctx, book)
	})
	if err != nil {
		return nil, &BookServiceError{
			Operation: "create_book",
			Message:   "failed to save book",
			Err:       err,
		}
	}

	s.logger.Info("book created",
		"book_id", book.ID,
		"author_id", author.ID,
		"title", book.Title)
	return book, nil
}

// GetBook implements BookService.GetBook
func (s *bookServiceImpl) GetBook(ctx context.Context, bookID uuid.UUID) (*domain.Book, error) {
	return s.bookStore.GetByID(ctx, bookID)
}

// ListBooks implements BookService.ListBooks
func (s *bookServiceImpl) ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	return s.bookStore.List(ctx, filter)
}

// ListMyBooks implements BookService.ListMyBooks
func (s *bookServiceImpl) ListMyBooks(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error) {
	author, err := s.requireAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.bookStore.ListByAuthor(ctx, author.ID)
}

// UpdateBook implements BookService.UpdateBook
func (s *bookServiceImpl) UpdateBook(
	ctx context.Context,
	userID, bookID uuid.UUID,
	update domain.BookUpdate,
) (*domain.Book, error) {
	book, err := s.requireOwnedBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if err := book.Apply(update); err != nil {
		return nil, err
	}

	if err := s.bookStore.Update(ctx, book); err != nil {
		return nil, &BookServiceError{
			Operation: "update_book",
			Message:   "failed to save book changes",
			Err:       err,
		}
	}

	s.logger.Info("book updated", "book_id", book.ID)
	return book, nil
}

// DeleteBook implements BookService.DeleteBook
func (s *bookServiceImpl) DeleteBook(ctx context.Context, userID, bookID uuid.UUID) error {
	if _, err := s.requireOwnedBook(ctx, userID, bookID); err != nil {
		return err
	}

	if err := s.bookStore.Delete(ctx, bookID); err != nil {
		return &BookServiceError{
			Operation: "delete_book",
			Message:   "failed to delete book",
			Err:       err,
		}
	}

	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}

// AddBookAuthor implements BookService.AddBookAuthor
func (s *bookServiceImpl) AddBookAuthor(ctx context.Context, userID, bookID, authorID uuid.UUID) error {
	if _, err := s.requireOwnedBook(ctx, userID, bookID); err != nil {
		return err
	}
	if _, err := s.authorStore.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.bookStore.AddAuthor(ctx, bookID, authorID)
}

// RemoveBookAuthor implements BookService.RemoveBookAuthor
func (s *bookServiceImpl) RemoveBookAuthor(ctx context.Context, userID, bookID, authorID uuid.UUID) error {
	book, err := s.requireOwnedBook(ctx, userID, bookID)
	if err != nil {
		return err
	}
	// A book always keeps at least one author credit.
	if len(book.AuthorIDs) <= 1 && book.HasAuthor(authorID) {
		return domain.ErrValidation
	}
	return s.bookStore.RemoveAuthor(ctx, bookID, authorID)
}

// AddBookGenre implements BookService.AddBookGenre
func (s *bookServiceImpl) AddBookGenre(ctx context.Context, userID, bookID, genreID uuid.UUID) error {
	if _, err := s.requireOwnedBook(ctx, userID, bookID); err != nil {
		return err
	}
	if _, err := s.genreStore.GetByID(ctx, genreID); err != nil {
		return err
	}
	return s.bookStore.AddGenre(ctx, bookID, genreID)
}

// RemoveBookGenre implements BookService.RemoveBookGenre
func (s *bookServiceImpl) RemoveBookGenre(ctx context.Context, userID, bookID, genreID uuid.UUID) error {
	if _, err := s.requireOwnedBook(ctx, userID, bookID); err != nil {
		return err
	}
	return s.bookStore.RemoveGenre(ctx, bookID, genreID)
}

// requireAuthor resolves the caller's author profile, mapping a missing
// profile to domain.ErrNotAuthor.
func (s *bookServiceImpl) requireAuthor(ctx context.Context, userID uuid.UUID) (*domain.AuthorProfile, error) {
	author, err := s.authorStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrAuthorNotFound) {
			return nil, domain.ErrNotAuthor
		}
		return nil, err
	}
	return author, nil
}

// requireOwnedBook loads the book and verifies the caller is one of its
// authors.
func (s *bookServiceImpl) requireOwnedBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
	author, err := s.requireAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	book, err := s.bookStore.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if !book.HasAuthor(author.ID) {
		s.logger.Warn("book modification denied",
			"book_id", bookID,
			"author_id", author.ID)
		return nil, domain.ErrNotBookAuthor
	}

	return book, nil
}

// resolveGenres maps genre names to their catalog IDs.
func (s *bookServiceImpl) resolveGenres(ctx context.Context, names []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		genre, err := s.genreStore.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, store.ErrGenreNotFound) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownGenre, name)
			}
			return nil, err
		}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}
