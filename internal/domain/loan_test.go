package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewLoan(t *testing.T) {
	bookID := uuid.New()
	patronID := uuid.New()

	loan, err := NewLoan(bookID, patronID, 14*24*time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if loan.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if loan.Status != LoanStatusCheckedOut {
		t.Errorf("Expected status %s, got %s", LoanStatusCheckedOut, loan.Status)
	}
	if got, want := loan.DueDate, loan.CheckoutDate.Add(14*24*time.Hour); !got.Equal(want) {
		t.Errorf("Expected due date %v, got %v", want, got)
	}
	if loan.FineAmount != 0 {
		t.Errorf("Expected no fine on a new loan, got %d", loan.FineAmount)
	}

	_, err = NewLoan(uuid.Nil, patronID, 14*24*time.Hour)
	if err != ErrEmptyLoanBookID {
		t.Errorf("Expected error %v, got %v", ErrEmptyLoanBookID, err)
	}

	_, err = NewLoan(bookID, uuid.Nil, 14*24*time.Hour)
	if err != ErrEmptyLoanPatronID {
		t.Errorf("Expected error %v, got %v", ErrEmptyLoanPatronID, err)
	}

	// A zero loan period puts the due date at the checkout instant
	_, err = NewLoan(bookID, patronID, 0)
	if err != ErrInvalidDueDate {
		t.Errorf("Expected error %v, got %v", ErrInvalidDueDate, err)
	}
}

func TestLoanIsOverdue(t *testing.T) {
	loan, err := NewLoan(uuid.New(), uuid.New(), 14*24*time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if loan.IsOverdue(loan.DueDate.Add(-time.Hour)) {
		t.Error("Expected loan before the due date not to be overdue")
	}
	if !loan.IsOverdue(loan.DueDate.Add(time.Hour)) {
		t.Error("Expected loan past the due date to be overdue")
	}

	loan.Status = LoanStatusReturned
	if loan.IsOverdue(loan.DueDate.Add(time.Hour)) {
		t.Error("Expected returned loan not to be overdue")
	}
}

func TestLoanReturn(t *testing.T) {
	t.Run("on time", func(t *testing.T) {
		loan, err := NewLoan(uuid.New(), uuid.New(), 14*24*time.Hour)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if err := loan.Return(loan.DueDate.Add(-time.Hour), 100); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if loan.Status != LoanStatusReturned {
			t.Errorf("Expected status %s, got %s", LoanStatusReturned, loan.Status)
		}
		if loan.FineAmount != 0 {
			t.Errorf("Expected no fine for an on-time return, got %d", loan.FineAmount)
		}
	})

	t.Run("late", func(t *testing.T) {
		loan, err := NewLoan(uuid.New(), uuid.New(), 14*24*time.Hour)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if err := loan.Return(loan.DueDate.Add(time.Hour), 100); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if loan.FineAmount != 100 {
			t.Errorf("Expected fine 100, got %d", loan.FineAmount)
		}
	})

	t.Run("late with fine already assessed", func(t *testing.T) {
		loan, err := NewLoan(uuid.New(), uuid.New(), 14*24*time.Hour)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		loan.FineAmount = 50

		if err := loan.Return(loan.DueDate.Add(time.Hour), 100); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if loan.FineAmount != 50 {
			t.Errorf("Expected existing fine 50 to be kept, got %d", loan.FineAmount)
		}
	})

	t.Run("already returned", func(t *testing.T) {
		loan, err := NewLoan(uuid.New(), uuid.New(), 14*24*time.Hour)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		loan.Status = LoanStatusReturned

		if err := loan.Return(time.Now().UTC(), 100); err != ErrLoanNotActive {
			t.Errorf("Expected error %v, got %v", ErrLoanNotActive, err)
		}
	})
}
