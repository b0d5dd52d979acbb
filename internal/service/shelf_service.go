package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/store"
)

// ShelfServiceError wraps errors from the shelf service with context.
type ShelfServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ShelfServiceError.
func (e *ShelfServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shelf service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("shelf service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ShelfServiceError) Unwrap() error {
	return e.Err
}

// ShelfService manages each user's personal shelf of books and the reading
// progress tracked per shelved book.
type ShelfService interface {
	// AddToShelf puts the book on the user's shelf with unread status.
	// Returns store.ErrAlreadyShelved if the book is already shelved.
	AddToShelf(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error)

	// RemoveFromShelf takes the book off the user's shelf.
	RemoveFromShelf(ctx context.Context, userID, bookID uuid.UUID) error

	// ListShelf returns the user's shelf, most recently touched first.
	ListShelf(ctx context.Context, userID uuid.UUID) ([]*domain.ReadingProgress, error)

	// OpenBook marks the shelved book as being read.
	OpenBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error)

	// CloseBook records the page the user stopped at. Closing on the last
	// page marks the book finished.
	CloseBook(ctx context.Context, userID, bookID uuid.UUID, page int) (*domain.ReadingProgress, error)
}

// shelfServiceImpl implements the ShelfService interface
type shelfServiceImpl struct {
	progressStore store.ProgressStore
	bookStore     store.BookStore
	db            *sql.DB
	logger        *slog.Logger
}

// NewShelfService creates a new ShelfService.
// It returns an error if any of the required dependencies are nil.
func NewShelfService(
	progressStore store.ProgressStore,
	bookStore store.BookStore,
	db *sql.DB,
	logger *slog.Logger,
) (ShelfService, error) {
	if progressStore == nil {
		return nil, &ShelfServiceError{Operation: "create_service", Message: "progressStore cannot be nil"}
	}
	if bookStore == nil {
		return nil, &ShelfServiceError{Operation: "create_service", Message: "bookStore cannot be nil"}
	}
	if db == nil {
		return nil, &ShelfServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &shelfServiceImpl{
		progressStore: progressStore,
		bookStore:     bookStore,
		db:            db,
		logger:        logger.With("component", "shelf_service"),
	}, nil
}

// AddToShelf implements ShelfService.AddToShelf
// The entry snapshots the book's page count so later edits to the book do
// not shift the user's progress.
func (s *shelfServiceImpl) AddToShelf(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error) {
	book, err := s.bookStore.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	progress, err := domain.NewReadingProgress(bookID, userID, book.PageCount)
	if err != nil {
		return nil, err
	}

	if err := s.progressStore.Create(ctx, progress); err != nil {
		return nil, err
	}

	s.logger.Info("book added to shelf",
		"user_id", userID,
		"book_id", bookID)
	return progress, nil
}

// RemoveFromShelf implements ShelfService.RemoveFromShelf
func (s *shelfServiceImpl) RemoveFromShelf(ctx context.Context, userID, bookID uuid.UUID) error {
	if err := s.progressStore.Delete(ctx, userID, bookID); err != nil {
		return err
	}

	s.logger.Info("book removed from shelf",
		"user_id", userID,
		"book_id", bookID)
	return nil
}

// ListShelf implements ShelfService.ListShelf
func (s *shelfServiceImpl) ListShelf(ctx context.Context, userID uuid.UUID) ([]*domain.ReadingProgress, error) {
	return s.progressStore.ListByUser(ctx, userID)
}

// OpenBook implements ShelfService.OpenBook
func (s *shelfServiceImpl) OpenBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error) {
	progress, err := s.progressStore.Get(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	progress.Open()

	if err := s.progressStore.Update(ctx, progress); err != nil {
		return nil, &ShelfServiceError{
			Operation: "open_book",
			Message:   "failed to update reading progress",
			Err:       err,
		}
	}

	return progress, nil
}

// CloseBook implements ShelfService.CloseBook
func (s *shelfServiceImpl) CloseBook(ctx context.Context, userID, bookID uuid.UUID, page int) (*domain.ReadingProgress, error) {
	progress, err := s.progressStore.Get(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if err := progress.Close(page); err != nil {
		return nil, err
	}

	if err := s.progressStore.Update(ctx, progress); err != nil {
		return nil, &ShelfServiceError{
			Operation: "close_book",
			Message:   "failed to update reading progress",
			Err:       err,
		}
	}

	s.logger.Debug("reading progress recorded",
		"user_id", userID,
		"book_id", bookID,
		"current_page", progress.CurrentPage,
		"status", progress.Status)
	return progress, nil
}
