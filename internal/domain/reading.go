package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReadingStatus represents how far a user has got through a shelved book.
type ReadingStatus string

// Possible reading status values
const (
	ReadingStatusUnread     ReadingStatus = "unread"
	ReadingStatusInProgress ReadingStatus = "in_progress"
	ReadingStatusFinished   ReadingStatus = "finished"
)

// ReadingProgress-specific validation errors
var (
	ErrEmptyProgressBookID  = errors.New("reading progress book ID cannot be empty")
	ErrEmptyProgressUserID  = errors.New("reading progress user ID cannot be empty")
	ErrInvalidReadingStatus = errors.New("invalid reading status")
	ErrInvalidTotalPages    = errors.New("total pages must be positive")
	ErrPageOutOfRange       = errors.New("current page must be between 0 and total pages")
)

// IsValid checks if the reading status is one of the defined values.
func (s ReadingStatus) IsValid() bool {
	switch s {
	case ReadingStatusUnread, ReadingStatusInProgress, ReadingStatusFinished:
		return true
	}
	return false
}

// ReadingProgress tracks a user's position in a book on their personal
// shelf. TotalPages is copied from the book when the entry is created so
// progress survives later catalog edits.
type ReadingProgress struct {
	ID          uuid.UUID     `json:"id"`
	BookID      uuid.UUID     `json:"book_id"`
	UserID      uuid.UUID     `json:"user_id"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	Status      ReadingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewReadingProgress creates an unread ReadingProgress entry for the given
// book and user. Returns an error if validation fails.
func NewReadingProgress(bookID, userID uuid.UUID, totalPages int) (*ReadingProgress, error) {
	progress := &ReadingProgress{
		ID:         uuid.New(),
		BookID:     bookID,
		UserID:     userID,
		TotalPages: totalPages,
		Status:     ReadingStatusUnread,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the ReadingProgress has valid data.
func (p *ReadingProgress) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}
	if p.BookID == uuid.Nil {
		return ErrEmptyProgressBookID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if !p.Status.IsValid() {
		return ErrInvalidReadingStatus
	}
	if p.TotalPages <= 0 {
		return ErrInvalidTotalPages
	}
	if p.CurrentPage < 0 || p.CurrentPage > p.TotalPages {
		return ErrPageOutOfRange
	}
	return nil
}

// Open marks the book as being read.
func (p *ReadingProgress) Open() {
	if p.Status == ReadingStatusUnread {
		p.Status = ReadingStatusInProgress
		p.UpdatedAt = time.Now().UTC()
	}
}

// Close records the page the reader stopped at. Reaching the last page
// marks the book finished; anything earlier leaves it in progress.
// Returns ErrPageOutOfRange if the page is outside [0, TotalPages].
func (p *ReadingProgress) Close(page int) error {
	if page < 0 || page > p.TotalPages {
		return ErrPageOutOfRange
	}

	p.CurrentPage = page
	if page == p.TotalPages {
		p.Status = ReadingStatusFinished
	} else {
		p.Status = ReadingStatusInProgress
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}
