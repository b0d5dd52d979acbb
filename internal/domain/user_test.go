package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("reader@shelf.example", "bookworm", "Ada", "Page", "correcthorse")
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("new user has nil ID")
	}
	if user.Email != "reader@shelf.example" {
		t.Errorf("email = %q, want reader@shelf.example", user.Email)
	}
	if user.Username != "bookworm" {
		t.Errorf("username = %q, want bookworm", user.Username)
	}
	if user.IsPatron || user.IsAuthor || user.IsAdmin {
		t.Error("new user should start with no roles")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("timestamps not set on new user")
	}
}

func TestNewUserRejectsBadInput(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		username string
		first    string
		password string
		wantErr  error
	}{
		{"empty email", "", "bookworm", "Ada", "correcthorse", ErrEmptyEmail},
		{"email without domain", "not-an-email", "bookworm", "Ada", "correcthorse", ErrInvalidEmail},
		{"empty username", "reader@shelf.example", "", "Ada", "correcthorse", ErrEmptyUsername},
		{"username over limit", "reader@shelf.example", strings.Repeat("a", 51), "Ada", "correcthorse", ErrUsernameTooLong},
		{"empty first name", "reader@shelf.example", "bookworm", "", "correcthorse", ErrEmptyName},
		{"password too short", "reader@shelf.example", "bookworm", "Ada", "short", ErrPasswordTooShort},
		{"password over bcrypt limit", "reader@shelf.example", "bookworm", "Ada", strings.Repeat("p", 73), ErrPasswordTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.email, tc.username, tc.first, "Page", tc.password)
			if err != tc.wantErr {
				t.Errorf("NewUser error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUserValidate(t *testing.T) {
	valid := User{
		ID:             uuid.New(),
		Email:          "reader@shelf.example",
		Username:       "bookworm",
		FirstName:      "Ada",
		LastName:       "Page",
		HashedPassword: "$2a$10$notarealhashbutlongenough",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("valid user failed validation: %v", err)
	}

	noID := valid
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrEmptyUserID {
		t.Errorf("nil ID: error = %v, want %v", err, ErrEmptyUserID)
	}

	badEmail := valid
	badEmail.Email = "not-an-email"
	if err := badEmail.Validate(); err != ErrInvalidEmail {
		t.Errorf("bad email: error = %v, want %v", err, ErrInvalidEmail)
	}

	// A stored user must carry a hashed password when no plaintext is set.
	noHash := valid
	noHash.HashedPassword = ""
	if err := noHash.Validate(); err != ErrEmptyPassword {
		t.Errorf("missing hash: error = %v, want %v", err, ErrEmptyPassword)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"reader@shelf.example", true},
		{"first.last@shelf.example", true},
		{"reader+loans@shelf.example", true},
		{"reader@mail.shelf.example", true},
		{"", false},
		{"readershelf.example", false},
		{"reader@", false},
		{"@shelf.example", false},
		{"reader@.example", false},
		{"reader@shelf", false},
	}

	for _, tc := range cases {
		if got := validateEmailFormat(tc.email); got != tc.want {
			t.Errorf("validateEmailFormat(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
