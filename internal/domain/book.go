package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book-specific validation errors
var (
	ErrEmptyBookTitle       = errors.New("book title cannot be empty")
	ErrBookTitleTooLong     = errors.New("book title must be at most 256 characters long")
	ErrEmptyBookISBN        = errors.New("book ISBN cannot be empty")
	ErrEmptyBookDescription = errors.New("book description cannot be empty")
	ErrEmptyPublishYear     = errors.New("publish date cannot be empty")
	ErrNegativeCopies       = errors.New("available copies cannot be negative")
	ErrInvalidPageCount     = errors.New("page count must be positive")
)

// Book represents a title in the library catalog. A book is written by one
// or more authors and belongs to zero or more genres. Rating and ReviewCount
// are derived from reviews and recomputed whenever a review is added.
type Book struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	ISBN            string      `json:"isbn"`
	Description     string      `json:"description"`
	AuthorIDs       []uuid.UUID `json:"author_ids"`
	GenreIDs        []uuid.UUID `json:"genre_ids"`
	Rating          float64     `json:"rating"`
	PublishedOn     time.Time   `json:"published_on"`
	AvailableCopies int         `json:"available_copies"`
	ReviewCount     int         `json:"review_count"`
	PageCount       int         `json:"page_count"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewBook creates a new Book with the given catalog data.
// It generates a new UUID for the book ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewBook(
	title, isbn, description string,
	publishedOn time.Time,
	availableCopies, pageCount int,
) (*Book, error) {
	book := &Book{
		ID:              uuid.New(),
		Title:           title,
		ISBN:            isbn,
		Description:     description,
		PublishedOn:     publishedOn,
		AvailableCopies: availableCopies,
		PageCount:       pageCount,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
// Returns an error if any field fails validation.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyBookTitle
	}
	if len(b.Title) > 256 {
		return ErrBookTitleTooLong
	}
	if strings.TrimSpace(b.ISBN) == "" {
		return ErrEmptyBookISBN
	}
	if strings.TrimSpace(b.Description) == "" {
		return ErrEmptyBookDescription
	}
	if b.PublishedOn.IsZero() {
		return ErrEmptyPublishYear
	}
	if b.AvailableCopies < 0 {
		return ErrNegativeCopies
	}
	if b.PageCount <= 0 {
		return ErrInvalidPageCount
	}
	return nil
}

// BookUpdate describes a partial edit to a book. Nil fields are left
// unchanged.
type BookUpdate struct {
	Title           *string
	ISBN            *string
	Description     *string
	PublishedOn     *time.Time
	AvailableCopies *int
	PageCount       *int
}

// Apply merges the update into the book and refreshes the UpdatedAt
// timestamp. The merged result is validated; on failure the book is left
// unmodified.
func (b *Book) Apply(update BookUpdate) error {
	merged := *b
	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.ISBN != nil {
		merged.ISBN = *update.ISBN
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.PublishedOn != nil {
		merged.PublishedOn = *update.PublishedOn
	}
	if update.AvailableCopies != nil {
		merged.AvailableCopies = *update.AvailableCopies
	}
	if update.PageCount != nil {
		merged.PageCount = *update.PageCount
	}

	if err := merged.Validate(); err != nil {
		return err
	}

	merged.UpdatedAt = time.Now().UTC()
	*b = merged
	return nil
}

// HasAuthor reports whether the given author profile ID is among the book's
// authors.
func (b *Book) HasAuthor(authorID uuid.UUID) bool {
	for _, id := range b.AuthorIDs {
		if id == authorID {
			return true
		}
	}
	return false
}

// HasGenre reports whether the given genre ID is among the book's genres.
func (b *Book) HasGenre(genreID uuid.UUID) bool {
	for _, id := range b.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}
