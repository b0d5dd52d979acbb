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

// PostgresPatronStore implements the store.PatronStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPatronStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPatronStore creates a new PostgreSQL implementation of the
// PatronStore interface. If logger is nil, a default logger will be used.
func NewPostgresPatronStore(db store.DBTX, logger *slog.Logger) *PostgresPatronStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPatronStore{
		db:     db,
		logger: logger.With(slog.String("component", "patron_store")),
	}
}

// Ensure PostgresPatronStore implements store.PatronStore interface
var _ store.PatronStore = (*PostgresPatronStore)(nil)

// Create implements store.PatronStore.Create
// Returns store.ErrPatronExists if the user already has a patron profile.
func (s *PostgresPatronStore) Create(ctx context.Context, profile *domain.PatronProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("patron profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	query := `
		INSERT INTO patron_profiles (id, user_id, address, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.Address,
		profile.PhoneNumber,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrPatronExists)
		}
		log.Error("failed to create patron profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return MapError(err)
	}

	log.Info("patron profile created",
		slog.String("patron_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// GetByID implements store.PatronStore.GetByID
func (s *PostgresPatronStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PatronProfile, error) {
	query := `
		SELECT id, user_id, address, phone_number, created_at, updated_at
		FROM patron_profiles
		WHERE id = $1
	`
	return s.scanPatron(ctx, query, id)
}

// GetByUserID implements store.PatronStore.GetByUserID
func (s *PostgresPatronStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PatronProfile, error) {
	query := `
		SELECT id, user_id, address, phone_number, created_at, updated_at
		FROM patron_profiles
		WHERE user_id = $1
	`
	return s.scanPatron(ctx, query, userID)
}

// WithTx implements store.PatronStore.WithTx
func (s *PostgresPatronStore) WithTx(tx *sql.Tx) store.PatronStore {
	return &PostgresPatronStore{db: tx, logger: s.logger}
}

func (s *PostgresPatronStore) scanPatron(ctx context.Context, query string, arg any) (*domain.PatronProfile, error) {
	var profile domain.PatronProfile

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Address,
		&profile.PhoneNumber,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPatronNotFound
		}
		return nil, MapError(err)
	}

	return &profile, nil
}

// PostgresAuthorStore implements the store.AuthorStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAuthorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuthorStore creates a new PostgreSQL implementation of the
// AuthorStore interface. If logger is nil, a default logger will be used.
func NewPostgresAuthorStore(db store.DBTX, logger *slog.Logger) *PostgresAuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAuthorStore{
		db:     db,
		logger: logger.With(slog.String("component", "author_store")),
	}
}

// Ensure PostgresAuthorStore implements store.AuthorStore interface
var _ store.AuthorStore = (*PostgresAuthorStore)(nil)

// Create implements store.AuthorStore.Create
// Returns store.ErrAuthorExists if the user already has an author profile.
func (s *PostgresAuthorStore) Create(ctx context.Context, profile *domain.AuthorProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("author profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	query := `
		INSERT INTO author_profiles (id, user_id, birth_date, nationality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.BirthDate,
		profile.Nationality,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return MapUniqueViolation(err, store.ErrAuthorExists)
		}
		log.Error("failed to create author profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return MapError(err)
	}

	log.Info("author profile created",
		slog.String("author_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// GetByID implements store.AuthorStore.GetByID
func (s *PostgresAuthorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.AuthorProfile, error) {
	query := `
		SELECT id, user_id, birth_date, nationality, created_at, updated_at
		FROM author_profiles
		WHERE id = $1
	`
	return s.scanAuthor(ctx, query, id)
}

// GetByUserID implements store.AuthorStore.GetByUserID
func (s *PostgresAuthorStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.AuthorProfile, error) {
	query := `
		SELECT id, user_id, birth_date, nationality, created_at, updated_at
		FROM author_profiles
		WHERE user_id = $1
	`
	return s.scanAuthor(ctx, query, userID)
}

// List implements store.AuthorStore.List
func (s *PostgresAuthorStore) List(ctx context.Context) ([]*domain.AuthorProfile, error) {
	query := `
		SELECT id, user_id, birth_date, nationality, created_at, updated_at
		FROM author_profiles
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []*domain.AuthorProfile
	for rows.Next() {
		var profile domain.AuthorProfile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.BirthDate,
			&profile.Nationality,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return profiles, nil
}

// WithTx implements store.AuthorStore.WithTx
func (s *PostgresAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &PostgresAuthorStore{db: tx, logger: s.logger}
}

func (s *PostgresAuthorStore) scanAuthor(ctx context.Context, query string, arg any) (*domain.AuthorProfile, error) {
	var profile domain.AuthorProfile

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.BirthDate,
		&profile.Nationality,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAuthorNotFound
		}
		return nil, MapError(err)
	}

	return &profile, nil
}
