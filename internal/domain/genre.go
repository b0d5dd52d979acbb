package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Genre-specific validation errors
var (
	ErrEmptyGenreName       = errors.New("genre name cannot be empty")
	ErrGenreNameTooLong     = errors.New("genre name must be at most 50 characters long")
	ErrEmptyGenreDescription = errors.New("genre description cannot be empty")
)

// Genre represents a book category such as "Mystery" or "Science Fiction".
type Genre struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// NewGenre creates a new Genre with the given name and description.
// Returns an error if validation fails.
func NewGenre(name, description string) (*Genre, error) {
	genre := &Genre{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}

	if err := genre.Validate(); err != nil {
		return nil, err
	}

	return genre, nil
}

// Validate checks if the Genre has valid data.
func (g *Genre) Validate() error {
	if g.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGenreName
	}
	if len(g.Name) > 50 {
		return ErrGenreNameTooLong
	}
	if strings.TrimSpace(g.Description) == "" {
		return ErrEmptyGenreDescription
	}
	return nil
}
