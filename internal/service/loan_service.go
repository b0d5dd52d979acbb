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
	"github.com/openshelf/libra-api/internal/events"
	"github.com/openshelf/libra-api/internal/store"
	"github.com/openshelf/libra-api/internal/task"
)

// LoanServiceError wraps errors from the loan service with context.
type LoanServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for LoanServiceError.
func (e *LoanServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loan service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("loan service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LoanServiceError) Unwrap() error {
	return e.Err
}

// LoanService manages book checkouts and returns for patrons, and assesses
// fines on overdue loans.
type LoanService interface {
	// CheckoutBook creates a loan for the patron and reserves a copy.
	// Returns store.ErrNoCopiesAvailable when every copy is out, and
	// domain.ErrNotPatron if the user has no patron profile.
	CheckoutBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.Loan, error)

	// ReturnBook closes the patron's loan and releases the copy. A late
	// return without an assessed fine is charged the configured amount.
	// Returns ErrNotOwned if the loan belongs to another patron.
	ReturnBook(ctx context.Context, userID, loanID uuid.UUID) (*domain.Loan, error)

	// ListLoans returns the patron's loans, most recent first.
	ListLoans(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)

	// AssessOverdueFines charges the configured fine on every active loan
	// past its due date that has no fine yet. Returns the number of loans
	// fined. Run periodically by the background overdue scan.
	AssessOverdueFines(ctx context.Context, now time.Time) (int, error)
}

// loanServiceImpl implements the LoanService interface
type loanServiceImpl struct {
	loanStore    store.LoanStore
	bookStore    store.BookStore
	patronStore  store.PatronStore
	db           *sql.DB
	loanPeriod   time.Duration
	overdueFine  int
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewLoanService creates a new LoanService.
// It returns an error if any of the required dependencies are nil.
// A nil eventEmitter disables the sweep request on late returns.
func NewLoanService(
	loanStore store.LoanStore,
	bookStore store.BookStore,
	patronStore store.PatronStore,
	db *sql.DB,
	loanPeriod time.Duration,
	overdueFine int,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (LoanService, error) {
	if loanStore == nil {
		return nil, &LoanServiceError{Operation: "create_service", Message: "loanStore cannot be nil"}
	}
	if bookStore == nil {
		return nil, &LoanServiceError{Operation: "create_service", Message: "bookStore cannot be nil"}
	}
	if patronStore == nil {
		return nil, &LoanServiceError{Operation: "create_service", Message: "patronStore cannot be nil"}
	}
	if db == nil {
		return nil, &LoanServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if loanPeriod <= 0 {
		return nil, &LoanServiceError{Operation: "create_service", Message: "loanPeriod must be positive"}
	}
	if overdueFine < 0 {
		return nil, &LoanServiceError{Operation: "create_service", Message: "overdueFine cannot be negative"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &loanServiceImpl{
		loanStore:    loanStore,
		bookStore:    bookStore,
		patronStore:  patronStore,
		db:           db,
		loanPeriod:   loanPeriod,
		overdueFine:  overdueFine,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "loan_service"),
	}, nil
}

// CheckoutBook implements LoanService.CheckoutBook
// The copy decrement and the loan insert share a transaction; the conditional
// decrement in the store keeps two patrons from taking the last copy.
func (s *loanServiceImpl) CheckoutBook(ctx context.Context, userID, bookID uuid.UUID) (*domain.Loan, error) {
	patron, err := s.requirePatron(ctx, userID)
	if err != nil {
		return nil, err
	}

	loan, err := domain.NewLoan(bookID, patron.ID, s.loanPeriod)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.bookStore.WithTx(tx)
		txLoans := s.loanStore.WithTx(tx)

		if err := txBooks.DecrementAvailableCopies(ctx, bookID); err != nil {
			return err
		}
		return txLoans.Create(ctx, loan)
	})
	if err != nil {
		if errors.Is(err, store.ErrNoCopiesAvailable) || errors.Is(err, store.ErrBookNotFound) {
			return nil, err
		}
		return nil, &LoanServiceError{
			Operation: "checkout_book",
			Message:   "failed to create loan",
			Err:       err,
		}
	}

	s.logger.Info("book checked out",
		"loan_id", loan.ID,
		"book_id", bookID,
		"patron_id", patron.ID,
		"due_date", loan.DueDate)
	return loan, nil
}

// ReturnBook implements LoanService.ReturnBook
func (s *loanServiceImpl) ReturnBook(ctx context.Context, userID, loanID uuid.UUID) (*domain.Loan, error) {
	patron, err := s.requirePatron(ctx, userID)
	if err != nil {
		return nil, err
	}

	loan, err := s.loanStore.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.PatronID != patron.ID {
		s.logger.Warn("return denied for foreign loan",
			"loan_id", loanID,
			"patron_id", patron.ID)
		return nil, ErrNotOwned
	}

	if err := loan.Return(time.Now().UTC(), s.overdueFine); err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.bookStore.WithTx(tx)
		txLoans := s.loanStore.WithTx(tx)

		if err := txLoans.Update(ctx, loan); err != nil {
			return err
		}
		return txBooks.IncrementAvailableCopies(ctx, loan.BookID)
	})
	if err != nil {
		return nil, &LoanServiceError{
			Operation: "return_book",
			Message:   "failed to record return",
			Err:       err,
		}
	}

	s.logger.Info("book returned",
		"loan_id", loan.ID,
		"book_id", loan.BookID,
		"fine_amount", loan.FineAmount)

	// A late return means other loans may have gone overdue since the last
	// periodic scan, so request an immediate sweep.
	if loan.FineAmount > 0 {
		s.requestOverdueSweep(ctx)
	}

	return loan, nil
}

// requestOverdueSweep emits a task request for an immediate overdue scan.
// Failures are logged, not returned: the periodic scan will catch up.
func (s *loanServiceImpl) requestOverdueSweep(ctx context.Context) {
	if s.eventEmitter == nil {
		return
	}

	event, err := events.NewTaskRequestEvent(task.TaskTypeOverdueScan, struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	}{ScheduledAt: time.Now().UTC()})
	if err != nil {
		s.logger.Error("failed to build overdue sweep request", "error", err)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit overdue sweep request",
			"error", err,
			"event_id", event.ID)
	}
}

// ListLoans implements LoanService.ListLoans
func (s *loanServiceImpl) ListLoans(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	patron, err := s.requirePatron(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.loanStore.ListByPatron(ctx, patron.ID)
}

// AssessOverdueFines implements LoanService.AssessOverdueFines
// The store only returns loans without a fine, so repeated scans are
// idempotent.
func (s *loanServiceImpl) AssessOverdueFines(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.loanStore.ListOverdue(ctx, now)
	if err != nil {
		return 0, &LoanServiceError{
			Operation: "assess_overdue_fines",
			Message:   "failed to list overdue loans",
			Err:       err,
		}
	}

	fined := 0
	for _, loan := range overdue {
		loan.FineAmount = s.overdueFine
		loan.UpdatedAt = now

		if err := s.loanStore.Update(ctx, loan); err != nil {
			s.logger.Error("failed to assess fine",
				"error", err,
				"loan_id", loan.ID)
			continue
		}

		s.logger.Info("fine assessed on overdue loan",
			"loan_id", loan.ID,
			"patron_id", loan.PatronID,
			"fine_amount", loan.FineAmount,
			"due_date", loan.DueDate)
		fined++
	}

	return fined, nil
}

// requirePatron resolves the caller's patron profile, mapping a missing
// profile to domain.ErrNotPatron.
func (s *loanServiceImpl) requirePatron(ctx context.Context, userID uuid.UUID) (*domain.PatronProfile, error) {
	patron, err := s.patronStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrPatronNotFound) {
			return nil, domain.ErrNotPatron
		}
		return nil, err
	}
	return patron, nil
}
