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

// PostgresGenreStore implements the store.GenreStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGenreStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGenreStore creates a new PostgreSQL implementation of the
// GenreStore interface. If logger is nil, a default logger will be used.
func NewPostgresGenreStore(db store.DBTX, logger *slog.Logger) *PostgresGenreStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGenreStore{
		db:     db,
		logger: logger.With(slog.String("component", "genre_store")),
	}
}

// Ensure PostgresGenreStore implements store.GenreStore interface
var _ store.GenreStore = (*PostgresGenreStore)(nil)

// Create implements store.GenreStore.Create
// Returns store.ErrGenreNameExists if the name is already taken.
func (s *PostgresGenreStore) Create(ctx context.Context, genre *domain.Genre) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := genre.Validate(); err != nil {
		log.Warn("genre validation failed during create",
			slog.String("error", err.Error()),
			slog.String("genre_id", genre.ID.String()))
		return err
	}

	query := `
		INSERT INTO genres (id, name, description)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, genre.ID, genre.Name, genre.Description)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrGenreNameExists)
		}
		log.Error("failed to create genre",
			slog.String("error", err.Error()),
			slog.String("genre_id", genre.ID.String()))
		return MapError(err)
	}

	log.Info("genre created",
		slog.String("genre_id", genre.ID.String()),
		slog.String("name", genre.Name))
	return nil
}

// GetByID implements store.GenreStore.GetByID
func (s *PostgresGenreStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Genre, error) {
	return s.scanGenre(ctx, `SELECT id, name, description FROM genres WHERE id = $1`, id)
}

// GetByName implements store.GenreStore.GetByName
func (s *PostgresGenreStore) GetByName(ctx context.Context, name string) (*domain.Genre, error) {
	return s.scanGenre(ctx, `SELECT id, name, description FROM genres WHERE name = $1`, name)
}

// List implements store.GenreStore.List
// Filter fields use case-insensitive substring matching.
func (s *PostgresGenreStore) List(ctx context.Context, filter store.GenreFilter) ([]*domain.Genre, error) {
	query := `
		SELECT id, name, description
		FROM genres
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR description ILIKE '%' || $2 || '%')
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, filter.Name, filter.Description)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var genres []*domain.Genre
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Description); err != nil {
			return nil, MapError(err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return genres, nil
}

// Update implements store.GenreStore.Update
// Returns store.ErrGenreNotFound if the genre does not exist.
func (s *PostgresGenreStore) Update(ctx context.Context, genre *domain.Genre) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := genre.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE genres
		SET name = $1, description = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, genre.Name, genre.Description, genre.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrGenreNameExists)
		}
		log.Error("failed to update genre",
			slog.String("error", err.Error()),
			slog.String("genre_id", genre.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrGenreNotFound)
}

// Delete implements store.GenreStore.Delete
// Returns store.ErrGenreNotFound if the genre does not exist.
func (s *PostgresGenreStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete genre",
			slog.String("error", err.Error()),
			slog.String("genre_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrGenreNotFound)
}

// WithTx implements store.GenreStore.WithTx
func (s *PostgresGenreStore) WithTx(tx *sql.Tx) store.GenreStore {
	return &PostgresGenreStore{db: tx, logger: s.logger}
}

func (s *PostgresGenreStore) scanGenre(ctx context.Context, query string, arg any) (*domain.Genre, error) {
	var genre domain.Genre

	err := s.db.QueryRowContext(ctx, query, arg).Scan(&genre.ID, &genre.Name, &genre.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGenreNotFound
		}
		return nil, MapError(err)
	}

	return &genre, nil
}
