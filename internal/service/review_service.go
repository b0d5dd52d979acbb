package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/store"
)

// ReviewServiceError wraps errors from the review service with context.
type ReviewServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ReviewServiceError.
func (e *ReviewServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("review service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("review service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ReviewServiceError) Unwrap() error {
	return e.Err
}

// ReviewService lets patrons review books and keeps the per-book rating
// aggregate in sync.
type ReviewService interface {
	// CreateReview records the patron's review and recomputes the book's
	// average rating. Returns store.ErrAlreadyReviewed if the patron already
	// reviewed the book, and domain.ErrNotPatron if the user has no patron
	// profile.
	CreateReview(ctx context.Context, userID, bookID uuid.UUID, rating int, comment string) (*domain.Review, error)

	// ListReviews returns the book's reviews, newest first.
	ListReviews(ctx context.Context, bookID uuid.UUID) ([]*domain.Review, error)
}

// reviewServiceImpl implements the ReviewService interface
type reviewServiceImpl struct {
	reviewStore store.ReviewStore
	bookStore   store.BookStore
	patronStore store.PatronStore
	db          *sql.DB
	logger      *slog.Logger
}

// NewReviewService creates a new ReviewService.
// It returns an error if any of the required dependencies are nil.
func NewReviewService(
	reviewStore store.ReviewStore,
	bookStore store.BookStore,
	patronStore store.PatronStore,
	db *sql.DB,
	logger *slog.Logger,
) (ReviewService, error) {
	if reviewStore == nil {
		return nil, &ReviewServiceError{Operation: "create_service", Message: "reviewStore cannot be nil"}
	}
	if bookStore == nil {
		return nil, &ReviewServiceError{Operation: "create_service", Message: "bookStore cannot be nil"}
	}
	if patronStore == nil {
		return nil, &ReviewServiceError{Operation: "create_service", Message: "patronStore cannot be nil"}
	}
	if db == nil {
		return nil, &ReviewServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		reviewStore: reviewStore,
		bookStore:   bookStore,
		patronStore: patronStore,
		db:          db,
		logger:      logger.With("component", "review_service"),
	}, nil
}

// CreateReview implements ReviewService.CreateReview
// The review insert and the rating recomputation share a transaction so the
// book's aggregate never drifts from its reviews.
func (s *reviewServiceImpl) CreateReview(
	ctx context.Context,
	userID, bookID uuid.UUID,
	rating int,
	comment string,
) (*domain.Review, error) {
	patron, err := s.patronStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrPatronNotFound) {
			return nil, domain.ErrNotPatron
		}
		return nil, err
	}

	if _, err := s.bookStore.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	review, err := domain.NewReview(bookID, patron.ID, rating, comment)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txReviews := s.reviewStore.WithTx(tx)
		txBooks := s.bookStore.WithTx(tx)

		if err := txReviews.Create(ctx, review); err != nil {
			return err
		}

		avg, count, err := txReviews.AggregateByBook(ctx, bookID)
		if err != nil {
			return err
		}

		return txBooks.UpdateRating(ctx, bookID, avg, count)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyReviewed) {
			return nil, err
		}
		return nil, &ReviewServiceError{
			Operation: "create_review",
			Message:   "failed to save review",
			Err:       err,
		}
	}

	s.logger.Info("review created",
		"review_id", review.ID,
		"book_id", bookID,
		"patron_id", patron.ID,
		"rating", rating)
	return review, nil
}

// ListReviews implements ReviewService.ListReviews
func (s *reviewServiceImpl) ListReviews(ctx context.Context, bookID uuid.UUID) ([]*domain.Review, error) {
	if _, err := s.bookStore.GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.reviewStore.ListByBook(ctx, bookID)
}
