package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/platform/logger"
	"github.com/openshelf/libra-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	logger     *slog.Logger
	bcryptCost int
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. A bcryptCost of 0 selects
// bcrypt.DefaultCost. If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:         db,
		logger:     logger.With(slog.String("component", "user_store")),
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It validates the user, hashes the plaintext password with bcrypt, and
// inserts the row. Returns store.ErrEmailExists or store.ErrUsernameExists
// on unique violations.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	query := `
		INSERT INTO users (id, email, username, first_name, last_name,
			hashed_password, is_patron, is_author, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Username,
		user.FirstName,
		user.LastName,
		user.HashedPassword,
		user.IsPatron,
		user.IsAuthor,
		user.IsAdmin,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate user identity during create",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return mapUserUniqueViolation(err)
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, username, first_name, last_name, hashed_password,
			is_patron, is_author, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(ctx, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, username, first_name, last_name, hashed_password,
			is_patron, is_author, is_admin, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(ctx, query, email)
}

// Update implements store.UserStore.Update
// If a new plaintext Password is set, it is hashed before storage.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = $1, username = $2, first_name = $3, last_name = $4,
			hashed_password = $5, is_patron = $6, is_author = $7, is_admin = $8,
			updated_at = $9
		WHERE id = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Email,
		user.Username,
		user.FirstName,
		user.LastName,
		user.HashedPassword,
		user.IsPatron,
		user.IsAuthor,
		user.IsAdmin,
		user.UpdatedAt,
		user.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return mapUserUniqueViolation(err)
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		logger:     s.logger,
		bcryptCost: s.bcryptCost,
	}
}

// scanUser runs a single-row user query and maps the result.
func (s *PostgresUserStore) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.HashedPassword,
		&user.IsPatron,
		&user.IsAuthor,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	return &user, nil
}

// mapUserUniqueViolation distinguishes the email and username unique
// constraints so callers can report which identity field is taken.
func mapUserUniqueViolation(err error) error {
	if pgErr := pgError(err); pgErr != nil {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		case "users_username_key":
			return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
	}
	return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
}
