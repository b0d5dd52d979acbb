package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Review-specific validation errors
var (
	ErrEmptyReviewBookID   = errors.New("review book ID cannot be empty")
	ErrEmptyReviewPatronID = errors.New("review patron ID cannot be empty")
	ErrEmptyReviewComment  = errors.New("review comment cannot be empty")
	ErrRatingOutOfRange    = errors.New("rating must be between 0 and 5")
)

// Review represents a patron's rating and comment on a book. Ratings are
// whole stars from 0 to 5 inclusive.
type Review struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	PatronID  uuid.UUID `json:"patron_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReview creates a new Review for the given book by the given patron.
// Returns an error if validation fails.
func NewReview(bookID, patronID uuid.UUID, rating int, comment string) (*Review, error) {
	review := &Review{
		ID:        uuid.New(),
		BookID:    bookID,
		PatronID:  patronID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	if r.BookID == uuid.Nil {
		return ErrEmptyReviewBookID
	}
	if r.PatronID == uuid.Nil {
		return ErrEmptyReviewPatronID
	}
	if r.Rating < 0 || r.Rating > 5 {
		return ErrRatingOutOfRange
	}
	if strings.TrimSpace(r.Comment) == "" {
		return ErrEmptyReviewComment
	}
	return nil
}
