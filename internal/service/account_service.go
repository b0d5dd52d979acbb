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

// AccountServiceError wraps errors from the account service with context.
type AccountServiceError struct {
	// Operation is the operation that failed (e.g., "become_patron")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for AccountServiceError.
func (e *AccountServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("account service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("account service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *AccountServiceError) Unwrap() error {
	return e.Err
}

// AccountService manages user roles and their role profiles. A user starts
// with no roles and gains the patron or author role by registering the
// matching profile.
type AccountService interface {
	// BecomePatron registers a patron profile for the user and grants the
	// patron role. Returns store.ErrPatronExists if the user already has one.
	BecomePatron(ctx context.Context, userID uuid.UUID, address, phoneNumber string) (*domain.PatronProfile, error)

	// BecomeAuthor registers an author profile for the user and grants the
	// author role. Returns store.ErrAuthorExists if the user already has one.
	BecomeAuthor(ctx context.Context, userID uuid.UUID, birthDate time.Time, nationality string) (*domain.AuthorProfile, error)

	// GetPatronProfile retrieves the user's patron profile.
	GetPatronProfile(ctx context.Context, userID uuid.UUID) (*domain.PatronProfile, error)

	// GetAuthorProfile retrieves the user's author profile.
	GetAuthorProfile(ctx context.Context, userID uuid.UUID) (*domain.AuthorProfile, error)

	// ListAuthors returns all registered author profiles.
	ListAuthors(ctx context.Context) ([]*domain.AuthorProfile, error)
}

// accountServiceImpl implements the AccountService interface
type accountServiceImpl struct {
	userStore   store.UserStore
	patronStore store.PatronStore
	authorStore store.AuthorStore
	db          *sql.DB
	logger      *slog.Logger
}

// NewAccountService creates a new AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	userStore store.UserStore,
	patronStore store.PatronStore,
	authorStore store.AuthorStore,
	db *sql.DB,
	logger *slog.Logger,
) (AccountService, error) {
	if userStore == nil {
		return nil, &AccountServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if patronStore == nil {
		return nil, &AccountServiceError{Operation: "create_service", Message: "patronStore cannot be nil"}
	}
	if authorStore == nil {
		return nil, &AccountServiceError{Operation: "create_service", Message: "authorStore cannot be nil"}
	}
	if db == nil {
		return nil, &AccountServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &accountServiceImpl{
		userStore:   userStore,
		patronStore: patronStore,
		authorStore: authorStore,
		db:          db,
		logger:      logger.With("component", "account_service"),
	}, nil
}

// BecomePatron implements AccountService.BecomePatron
// The profile insert and the role flag update happen in one transaction so
// the role is never granted without a profile backing it.
func (s *accountServiceImpl) BecomePatron(
	ctx context.Context,
	userID uuid.UUID,
	address, phoneNumber string,
) (*domain.PatronProfile, error) {
	profile, err := domain.NewPatronProfile(userID, address, phoneNumber)
	if err != nil {
		s.logger.Warn("invalid patron profile",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.userStore.WithTx(tx)
		txPatrons := s.patronStore.WithTx(tx)

		user, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := txPatrons.Create(ctx, profile); err != nil {
			return err
		}

		user.IsPatron = true
		return txUsers.Update(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrPatronExists) || errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, &AccountServiceError{
			Operation: "become_patron",
			Message:   "failed to register patron profile",
			Err:       err,
		}
	}

	s.logger.Info("patron role granted",
		"user_id", userID,
		"patron_id", profile.ID)
	return profile, nil
}

// BecomeAuthor implements AccountService.BecomeAuthor
func (s *accountServiceImpl) BecomeAuthor(
	ctx context.Context,
	userID uuid.UUID,
	birthDate time.Time,
	nationality string,
) (*domain.AuthorProfile, error) {
	profile, err := domain.NewAuthorProfile(userID, birthDate, nationality)
	if err != nil {
		s.logger.Warn("invalid author profile",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.userStore.WithTx(tx)
		txAuthors := s.authorStore.WithTx(tx)

		user, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := txAuthors.Create(ctx, profile); err != nil {
			return err
		}

		user.IsAuthor = true
		return txUsers.Update(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAuthorExists) || errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, &AccountServiceError{
			Operation: "become_author",
			Message:   "failed to register author profile",
			Err:       err,
		}
	}

	s.logger.Info("author role granted",
		"user_id", userID,
		"author_id", profile.ID)
	return profile, nil
}

// GetPatronProfile implements AccountService.GetPatronProfile
func (s *accountServiceImpl) GetPatronProfile(ctx context.Context, userID uuid.UUID) (*domain.PatronProfile, error) {
	return s.patronStore.GetByUserID(ctx, userID)
}

// GetAuthorProfile implements AccountService.GetAuthorProfile
func (s *accountServiceImpl) GetAuthorProfile(ctx context.Context, userID uuid.UUID) (*domain.AuthorProfile, error) {
	return s.authorStore.GetByUserID(ctx, userID)
}

// ListAuthors implements AccountService.ListAuthors
func (s *accountServiceImpl) ListAuthors(ctx context.Context) ([]*domain.AuthorProfile, error) {
	return s.authorStore.List(ctx)
}
