package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/platform/logger"
	"github.com/openshelf/libra-api/internal/store"
)

// PostgresLoanStore implements the store.LoanStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLoanStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLoanStore creates a new PostgreSQL implementation of the
// LoanStore interface. If logger is nil, a default logger will be used.
func NewPostgresLoanStore(db store.DBTX, logger *slog.Logger) *PostgresLoanStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLoanStore{
		db:     db,
		logger: logger.With(slog.String("component", "loan_store")),
	}
}

// Ensure PostgresLoanStore implements store.LoanStore interface
var _ store.LoanStore = (*PostgresLoanStore)(nil)

// Create implements store.LoanStore.Create
func (s *PostgresLoanStore) Create(ctx context.Context, loan *domain.Loan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := loan.Validate(); err != nil {
		log.Warn("loan validation failed during create",
			slog.String("error", err.Error()),
			slog.String("loan_id", loan.ID.String()))
		return err
	}

	query := `
		INSERT INTO loans (id, book_id, patron_id, checkout_date, due_date,
			fine_amount, fine_paid, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		loan.ID,
		loan.BookID,
		loan.PatronID,
		loan.CheckoutDate,
		loan.DueDate,
		loan.FineAmount,
		loan.FinePaid,
		loan.Status,
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create loan",
			slog.String("error", err.Error()),
			slog.String("loan_id", loan.ID.String()))
		return MapError(err)
	}

	log.Info("loan created",
		slog.String("loan_id", loan.ID.String()),
		slog.String("book_id", loan.BookID.String()),
		slog.String("patron_id", loan.PatronID.String()))
	return nil
}

// GetByID implements store.LoanStore.GetByID
// Returns store.ErrLoanNotFound if the loan does not exist.
func (s *PostgresLoanStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `
		SELECT id, book_id, patron_id, checkout_date, due_date,
			fine_amount, fine_paid, status, created_at, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID,
		&loan.BookID,
		&loan.PatronID,
		&loan.CheckoutDate,
		&loan.DueDate,
		&loan.FineAmount,
		&loan.FinePaid,
		&loan.Status,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLoanNotFound
		}
		return nil, MapError(err)
	}

	return &loan, nil
}

// ListByPatron implements store.LoanStore.ListByPatron
func (s *PostgresLoanStore) ListByPatron(ctx context.Context, patronID uuid.UUID) ([]*domain.Loan, error) {
	query := `
		SELECT id, book_id, patron_id, checkout_date, due_date,
			fine_amount, fine_paid, status, created_at, updated_at
		FROM loans
		WHERE patron_id = $1
		ORDER BY checkout_date DESC
	`
	return s.queryLoans(ctx, query, patronID)
}

// ListOverdue implements store.LoanStore.ListOverdue
// Only active loans without an assessed fine are returned, so the overdue
// scan never charges the same loan twice.
func (s *PostgresLoanStore) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Loan, error) {
	query := `
		SELECT id, book_id, patron_id, checkout_date, due_date,
			fine_amount, fine_paid, status, created_at, updated_at
		FROM loans
		WHERE status = $1 AND due_date < $2 AND fine_amount = 0
		ORDER BY due_date
	`
	return s.queryLoans(ctx, query, domain.LoanStatusCheckedOut, now)
}

// Update implements store.LoanStore.Update
// Returns store.ErrLoanNotFound if the loan does not exist.
func (s *PostgresLoanStore) Update(ctx context.Context, loan *domain.Loan) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := loan.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE loans
		SET due_date = $1, fine_amount = $2, fine_paid = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		loan.DueDate,
		loan.FineAmount,
		loan.FinePaid,
		loan.Status,
		loan.UpdatedAt,
		loan.ID,
	)
	if err != nil {
		log.Error("failed to update loan",
			slog.String("error", err.Error()),
			slog.String("loan_id", loan.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrLoanNotFound)
}

// WithTx implements store.LoanStore.WithTx
func (s *PostgresLoanStore) WithTx(tx *sql.Tx) store.LoanStore {
	return &PostgresLoanStore{db: tx, logger: s.logger}
}

func (s *PostgresLoanStore) queryLoans(ctx context.Context, query string, args ...any) ([]*domain.Loan, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var loans []*domain.Loan
	for rows.Next() {
		var loan domain.Loan
		if err := rows.Scan(
			&loan.ID,
			&loan.BookID,
			&loan.PatronID,
			&loan.CheckoutDate,
			&loan.DueDate,
			&loan.FineAmount,
			&loan.FinePaid,
			&loan.Status,
			&loan.CreatedAt,
			&loan.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		loans = append(loans, &loan)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return loans, nil
}
