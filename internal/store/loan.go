package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libra-api/internal/domain"
)

// LoanStore defines the interface for loan data persistence.
type LoanStore interface {
	// Create saves a new loan.
	// Returns ErrInvalidEntity if the referenced book or patron does not exist.
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByID retrieves a loan by its unique ID.
	// Returns ErrLoanNotFound if the loan does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// ListByPatron returns the patron's loans, most recent first.
	ListByPatron(ctx context.Context, patronID uuid.UUID) ([]*domain.Loan, error)

	// ListOverdue returns loans still checked out whose due date is before
	// the given time and which have no fine assessed yet.
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Loan, error)

	// Update modifies an existing loan (status, fine fields).
	// Returns ErrLoanNotFound if the loan does not exist.
	Update(ctx context.Context, loan *domain.Loan) error

	// WithTx returns a new LoanStore bound to the provided transaction.
	WithTx(tx *sql.Tx) LoanStore
}
