package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile-specific validation errors
var (
	ErrEmptyProfileUserID = errors.New("profile user ID cannot be empty")
	ErrEmptyAddress       = errors.New("address cannot be empty")
	ErrEmptyPhoneNumber   = errors.New("phone number cannot be empty")
	ErrInvalidPhoneNumber = errors.New("phone number must be in international format")
	ErrEmptyBirthDate     = errors.New("birth date cannot be empty")
	ErrBirthDateInFuture  = errors.New("birth date cannot be in the future")
	ErrEmptyNationality   = errors.New("nationality cannot be empty")
)

// PatronProfile holds the extra details a user provides when becoming a
// patron. Patrons may borrow books and leave reviews.
type PatronProfile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPatronProfile creates a PatronProfile for the given user.
// Returns an error if validation fails.
func NewPatronProfile(userID uuid.UUID, address, phoneNumber string) (*PatronProfile, error) {
	profile := &PatronProfile{
		ID:          uuid.New(),
		UserID:      userID,
		Address:     address,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the PatronProfile has valid data.
func (p *PatronProfile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if strings.TrimSpace(p.Address) == "" {
		return ErrEmptyAddress
	}
	if strings.TrimSpace(p.PhoneNumber) == "" {
		return ErrEmptyPhoneNumber
	}
	if !validatePhoneNumber(p.PhoneNumber) {
		return ErrInvalidPhoneNumber
	}
	return nil
}

// AuthorProfile holds the extra details a user provides when becoming an
// author. Authors may publish books and edit the books they wrote.
type AuthorProfile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	BirthDate   time.Time `json:"birth_date"`
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAuthorProfile creates an AuthorProfile for the given user.
// Returns an error if validation fails.
func NewAuthorProfile(userID uuid.UUID, birthDate time.Time, nationality string) (*AuthorProfile, error) {
	profile := &AuthorProfile{
		ID:          uuid.New(),
		UserID:      userID,
		BirthDate:   birthDate,
		Nationality: nationality,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the AuthorProfile has valid data.
func (p *AuthorProfile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if p.BirthDate.IsZero() {
		return ErrEmptyBirthDate
	}
	if p.BirthDate.After(time.Now().UTC()) {
		return ErrBirthDateInFuture
	}
	if strings.TrimSpace(p.Nationality) == "" {
		return ErrEmptyNationality
	}
	return nil
}

// validatePhoneNumber accepts E.164-style numbers: an optional leading +
// followed by 7 to 15 digits. Spaces and dashes are tolerated.
func validatePhoneNumber(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	cleaned = strings.TrimPrefix(cleaned, "+")
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
