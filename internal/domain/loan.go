package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

// Possible loan status values
const (
	LoanStatusCheckedOut LoanStatus = "checked_out"
	LoanStatusReturned   LoanStatus = "returned"
	LoanStatusLost       LoanStatus = "lost"
)

// Loan-specific validation errors
var (
	ErrEmptyLoanBookID   = errors.New("loan book ID cannot be empty")
	ErrEmptyLoanPatronID = errors.New("loan patron ID cannot be empty")
	ErrInvalidLoanStatus = errors.New("invalid loan status")
	ErrInvalidDueDate    = errors.New("due date must be after the checkout date")
	ErrNegativeFine      = errors.New("fine amount cannot be negative")
	ErrLoanNotActive     = errors.New("loan is not checked out")
)

// IsValid checks if the loan status is one of the defined values.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusCheckedOut, LoanStatusReturned, LoanStatusLost:
		return true
	}
	return false
}

// Loan represents a patron borrowing a copy of a book. A loan past its due
// date that is still checked out accrues the configured flat fine; the fine
// is owed until marked paid.
type Loan struct {
	ID           uuid.UUID  `json:"id"`
	BookID       uuid.UUID  `json:"book_id"`
	PatronID     uuid.UUID  `json:"patron_id"`
	CheckoutDate time.Time  `json:"checkout_date"`
	DueDate      time.Time  `json:"due_date"`
	FineAmount   int        `json:"fine_amount"`
	FinePaid     bool       `json:"fine_paid"`
	Status       LoanStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewLoan creates a checked-out Loan for the given book and patron.
// The due date is the checkout date plus the loan period.
// Returns an error if validation fails.
func NewLoan(bookID, patronID uuid.UUID, loanPeriod time.Duration) (*Loan, error) {
	now := time.Now().UTC()
	loan := &Loan{
		ID:           uuid.New(),
		BookID:       bookID,
		PatronID:     patronID,
		CheckoutDate: now,
		DueDate:      now.Add(loanPeriod),
		Status:       LoanStatusCheckedOut,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	return loan, nil
}

// Validate checks if the Loan has valid data.
func (l *Loan) Validate() error {
	if l.ID == uuid.Nil {
		return ErrInvalidID
	}
	if l.BookID == uuid.Nil {
		return ErrEmptyLoanBookID
	}
	if l.PatronID == uuid.Nil {
		return ErrEmptyLoanPatronID
	}
	if !l.Status.IsValid() {
		return ErrInvalidLoanStatus
	}
	if !l.DueDate.After(l.CheckoutDate) {
		return ErrInvalidDueDate
	}
	if l.FineAmount < 0 {
		return ErrNegativeFine
	}
	return nil
}

// IsOverdue reports whether the loan is still checked out past its due date.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Status == LoanStatusCheckedOut && now.After(l.DueDate)
}

// Return marks the loan as returned. If the return happens after the due
// date and no fine has been assessed yet, the given fine is applied.
// Returns ErrLoanNotActive if the loan is not currently checked out.
func (l *Loan) Return(now time.Time, overdueFine int) error {
	if l.Status != LoanStatusCheckedOut {
		return ErrLoanNotActive
	}

	if now.After(l.DueDate) && l.FineAmount == 0 {
		l.FineAmount = overdueFine
	}

	l.Status = LoanStatusReturned
	l.UpdatedAt = now
	return nil
}
