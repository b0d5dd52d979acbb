package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReviewStore implements store.ReviewStore with function fields.
type stubReviewStore struct {
	CreateFn          func(ctx context.Context, review *domain.Review) error
	ListByBookFn      func(ctx context.Context, bookID uuid.UUID) ([]*domain.Review, error)
	AggregateByBookFn func(ctx context.Context, bookID uuid.UUID) (float64, int, error)
}

func (s *stubReviewStore) Create(ctx context.Context, review *domain.Review) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, review)
	}
	return nil
}

func (s *stubReviewStore) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*domain.Review, error) {
	if s.ListByBookFn != nil {
		return s.ListByBookFn(ctx, bookID)
	}
	return nil, nil
}

func (s *stubReviewStore) AggregateByBook(ctx context.Context, bookID uuid.UUID) (float64, int, error) {
	if s.AggregateByBookFn != nil {
		return s.AggregateByBookFn(ctx, bookID)
	}
	return 0, 0, nil
}

func (s *stubReviewStore) WithTx(tx *sql.Tx) store.ReviewStore { return s }

func reviewedBook(t *testing.T) *domain.Book {
	t.Helper()
	published := time.Date(1969, 3, 1, 0, 0, 0, 0, time.UTC)
	book, err := domain.NewBook("The Left Hand", "9780441478125", "A winter planet", published, 3, 304)
	require.NoError(t, err)
	return book
}

func newTestReviewService(
	t *testing.T,
	reviews *stubReviewStore,
	books *stubBookStore,
	patrons *stubPatronStore,
	db *sql.DB,
) ReviewService {
	t.Helper()
	svc, err := NewReviewService(reviews, books, patrons, db, nil)
	require.NoError(t, err)
	return svc
}

func TestNewReviewService(t *testing.T) {
	t.Parallel()

	db := &sql.DB{}

	_, err := NewReviewService(nil, &stubBookStore{}, &stubPatronStore{}, db, nil)
	assert.Error(t, err, "nil review store should be rejected")

	_, err = NewReviewService(&stubReviewStore{}, nil, &stubPatronStore{}, db, nil)
	assert.Error(t, err, "nil book store should be rejected")

	_, err = NewReviewService(&stubReviewStore{}, &stubBookStore{}, nil, db, nil)
	assert.Error(t, err, "nil patron store should be rejected")

	_, err = NewReviewService(&stubReviewStore{}, &stubBookStore{}, &stubPatronStore{}, nil, nil)
	assert.Error(t, err, "nil db should be rejected")
}

func TestCreateReviewRequiresPatron(t *testing.T) {
	t.Parallel()

	svc := newTestReviewService(t, &stubReviewStore{}, &stubBookStore{}, &stubPatronStore{}, &sql.DB{})

	_, err := svc.CreateReview(context.Background(), uuid.New(), uuid.New(), 4, "great read")
	assert.ErrorIs(t, err, domain.ErrNotPatron)
}

func TestCreateReviewRecomputesRating(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectCommit()

	patron := testPatronProfile()
	book := reviewedBook(t)

	var created *domain.Review
	reviews := &stubReviewStore{
		CreateFn: func(ctx context.Context, review *domain.Review) error {
			created = review
			return nil
		},
		AggregateByBookFn: func(ctx context.Context, bookID uuid.UUID) (float64, int, error) {
			assert.Equal(t, book.ID, bookID)
			return 4.5, 2, nil
		},
	}

	var gotRating float64
	var gotCount int
	books := &stubBookStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
			return book, nil
		},
		UpdateRatingFn: func(ctx context.Context, bookID uuid.UUID, rating float64, reviewCount int) error {
			assert.Equal(t, book.ID, bookID)
			gotRating = rating
			gotCount = reviewCount
			return nil
		},
	}

	svc := newTestReviewService(t, reviews, books, &stubPatronStore{profile: patron}, db)

	review, err := svc.CreateReview(context.Background(), patron.UserID, book.ID, 5, "a masterpiece")
	require.NoError(t, err)

	require.NotNil(t, created, "review should be saved")
	assert.Equal(t, patron.ID, created.PatronID)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, 4.5, gotRating, "book rating should be the recomputed average")
	assert.Equal(t, 2, gotCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewDuplicate(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	patron := testPatronProfile()
	book := reviewedBook(t)

	reviews := &stubReviewStore{
		CreateFn: func(ctx context.Context, review *domain.Review) error {
			return store.ErrAlreadyReviewed
		},
	}
	books := &stubBookStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
			return book, nil
		},
	}

	svc := newTestReviewService(t, reviews, books, &stubPatronStore{profile: patron}, db)

	_, err = svc.CreateReview(context.Background(), patron.UserID, book.ID, 3, "again")
	assert.ErrorIs(t, err, store.ErrAlreadyReviewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewAggregateFailure(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	patron := testPatronProfile()
	book := reviewedBook(t)

	reviews := &stubReviewStore{
		AggregateByBookFn: func(ctx context.Context, bookID uuid.UUID) (float64, int, error) {
			return 0, 0, assert.AnError
		},
	}
	ratingUpdated := false
	books := &stubBookStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
			return book, nil
		},
		UpdateRatingFn: func(ctx context.Context, bookID uuid.UUID, rating float64, reviewCount int) error {
			ratingUpdated = true
			return nil
		},
	}

	svc := newTestReviewService(t, reviews, books, &stubPatronStore{profile: patron}, db)

	_, err = svc.CreateReview(context.Background(), patron.UserID, book.ID, 3, "lost")
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, ratingUpdated, "rating update should not run after aggregate failure")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReviewsUnknownBook(t *testing.T) {
	t.Parallel()

	svc := newTestReviewService(t, &stubReviewStore{}, &stubBookStore{}, &stubPatronStore{}, &sql.DB{})

	_, err := svc.ListReviews(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}
