package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooLong     = errors.New("username must be at most 50 characters long")
	ErrEmptyName           = errors.New("first and last name cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered library user. A user starts as a plain
// reader and can additionally become a patron (may borrow and review books)
// or an author (may publish and edit books). The role flags mirror the
// attached profile records.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	IsPatron       bool      `json:"is_patron"`
	IsAuthor       bool      `json:"is_author"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given identity fields and password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(email, username, firstName, lastName, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > 50 {
		return ErrUsernameTooLong
	}

	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return ErrEmptyName
	}

	// During user creation/update we need to validate the provided password
	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		// bcrypt truncates input beyond 72 bytes
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else {
		// When no plaintext password is provided, the user must have a hashed
		// password (the case for existing users loaded from the database).
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if len(domain) < 3 { // minimum would be "a.b"
		return false
	}

	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
