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

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Create implements store.ProgressStore.Create
// Returns store.ErrAlreadyShelved if the user already shelved the book.
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.ReadingProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("reading progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("book_id", progress.BookID.String()))
		return err
	}

	query := `
		INSERT INTO reading_progress (id, book_id, user_id, total_pages,
			current_page, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.BookID,
		progress.UserID,
		progress.TotalPages,
		progress.CurrentPage,
		progress.Status,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrAlreadyShelved)
		}
		log.Error("failed to create reading progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("book_id", progress.BookID.String()))
		return MapError(err)
	}

	log.Info("book shelved",
		slog.String("user_id", progress.UserID.String()),
		slog.String("book_id", progress.BookID.String()))
	return nil
}

// Get implements store.ProgressStore.Get
// Returns store.ErrProgressNotFound if the book is not on the user's shelf.
func (s *PostgresProgressStore) Get(ctx context.Context, userID, bookID uuid.UUID) (*domain.ReadingProgress, error) {
	query := `
		SELECT id, book_id, user_id, total_pages, current_page, status,
			created_at, updated_at
		FROM reading_progress
		WHERE user_id = $1 AND book_id = $2
	`

	var progress domain.ReadingProgress
	err := s.db.QueryRowContext(ctx, query, userID, bookID).Scan(
		&progress.ID,
		&progress.BookID,
		&progress.UserID,
		&progress.TotalPages,
		&progress.CurrentPage,
		&progress.Status,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		return nil, MapError(err)
	}

	return &progress, nil
}

// ListByUser implements store.ProgressStore.ListByUser
func (s *PostgresProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReadingProgress, error) {
	query := `
		SELECT id, book_id, user_id, total_pages, current_page, status,
			created_at, updated_at
		FROM reading_progress
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.ReadingProgress
	for rows.Next() {
		var progress domain.ReadingProgress
		if err := rows.Scan(
			&progress.ID,
			&progress.BookID,
			&progress.UserID,
			&progress.TotalPages,
			&progress.CurrentPage,
			&progress.Status,
			&progress.CreatedAt,
			&progress.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, &progress)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}

// Update implements store.ProgressStore.Update
// Returns store.ErrProgressNotFound if the entry does not exist.
func (s *PostgresProgressStore) Update(ctx context.Context, progress *domain.ReadingProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE reading_progress
		SET total_pages = $1, current_page = $2, status = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		progress.TotalPages,
		progress.CurrentPage,
		progress.Status,
		progress.UpdatedAt,
		progress.ID,
	)
	if err != nil {
		log.Error("failed to update reading progress",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrProgressNotFound)
}

// Delete implements store.ProgressStore.Delete
// Returns store.ErrProgressNotFound if the entry does not exist.
func (s *PostgresProgressStore) Delete(ctx context.Context, userID, bookID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM reading_progress WHERE user_id = $1 AND book_id = $2`
	result, err := s.db.ExecContext(ctx, query, userID, bookID)
	if err != nil {
		log.Error("failed to delete reading progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("book_id", bookID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrProgressNotFound)
}

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{db: tx, logger: s.logger}
}
