package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/platform/logger"
	"github.com/openshelf/libra-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface. If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// Create implements store.ReviewStore.Create
// Returns store.ErrAlreadyReviewed if the patron already reviewed the book.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (id, book_id, patron_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.BookID,
		review.PatronID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrAlreadyReviewed)
		}
		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	log.Info("review created",
		slog.String("review_id", review.ID.String()),
		slog.String("book_id", review.BookID.String()),
		slog.Int("rating", review.Rating))
	return nil
}

// ListByBook implements store.ReviewStore.ListByBook
func (s *PostgresReviewStore) ListByBook(ctx context.Context, bookID uuid.UUID) ([]*domain.Review, error) {
	query := `
		SELECT id, book_id, patron_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.BookID,
			&review.PatronID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return reviews, nil
}

// AggregateByBook implements store.ReviewStore.AggregateByBook
// COALESCE keeps the average at zero for books without reviews.
func (s *PostgresReviewStore) AggregateByBook(ctx context.Context, bookID uuid.UUID) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE book_id = $1
	`

	var avg float64
	var count int
	if err := s.db.QueryRowContext(ctx, query, bookID).Scan(&avg, &count); err != nil {
		return 0, 0, MapError(err)
	}

	return avg, count, nil
}

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{db: tx, logger: s.logger}
}
