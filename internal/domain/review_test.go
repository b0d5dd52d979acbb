package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewReview(t *testing.T) {
	review, err := NewReview(uuid.New(), uuid.New(), 4, "Great read.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if review.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if review.Rating != 4 {
		t.Errorf("Expected rating 4, got %d", review.Rating)
	}

	_, err = NewReview(uuid.Nil, uuid.New(), 4, "Great read.")
	if err != ErrEmptyReviewBookID {
		t.Errorf("Expected error %v, got %v", ErrEmptyReviewBookID, err)
	}

	_, err = NewReview(uuid.New(), uuid.Nil, 4, "Great read.")
	if err != ErrEmptyReviewPatronID {
		t.Errorf("Expected error %v, got %v", ErrEmptyReviewPatronID, err)
	}

	_, err = NewReview(uuid.New(), uuid.New(), 6, "Great read.")
	if err != ErrRatingOutOfRange {
		t.Errorf("Expected error %v, got %v", ErrRatingOutOfRange, err)
	}

	_, err = NewReview(uuid.New(), uuid.New(), -1, "Great read.")
	if err != ErrRatingOutOfRange {
		t.Errorf("Expected error %v, got %v", ErrRatingOutOfRange, err)
	}

	_, err = NewReview(uuid.New(), uuid.New(), 4, "   ")
	if err != ErrEmptyReviewComment {
		t.Errorf("Expected error %v, got %v", ErrEmptyReviewComment, err)
	}
}
