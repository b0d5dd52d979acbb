package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/service"
	"github.com/openshelf/libra-api/internal/service/auth"
	"github.com/openshelf/libra-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"revoked token", auth.ErrRevokedToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"not a patron", domain.ErrNotPatron, http.StatusForbidden},
		{"not an author", domain.ErrNotAuthor, http.StatusForbidden},
		{"not the book's author", domain.ErrNotBookAuthor, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"book not found", store.ErrBookNotFound, http.StatusNotFound},
		{"loan not found", store.ErrLoanNotFound, http.StatusNotFound},
		{"shelf entry not found", store.ErrProgressNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"genre name exists", store.ErrGenreNameExists, http.StatusConflict},
		{"already shelved", store.ErrAlreadyShelved, http.StatusConflict},
		{"already reviewed", store.ErrAlreadyReviewed, http.StatusConflict},
		{"no copies available", store.ErrNoCopiesAvailable, http.StatusConflict},
		{"loan not active", domain.ErrLoanNotActive, http.StatusConflict},
		{"unknown genre", service.ErrUnknownGenre, http.StatusBadRequest},
		{"page out of range", domain.ErrPageOutOfRange, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	t.Parallel()

	// Errors wrapped by services keep their mapping
	wrapped := fmt.Errorf("checkout failed: %w", store.ErrNoCopiesAvailable)
	assert.Equal(t, http.StatusConflict, MapErrorToStatusCode(wrapped))

	svcErr := &service.LoanServiceError{
		Operation: "checkout_book",
		Message:   "failed",
		Err:       store.ErrBookNotFound,
	}
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(svcErr))

	validationErr := domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID)
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(validationErr))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"username exists", store.ErrUsernameExists, "Username already exists"},
		{"book not found", store.ErrBookNotFound, "Book not found"},
		{"no copies", store.ErrNoCopiesAvailable, "No copies available"},
		{"not a patron", domain.ErrNotPatron, "Patron registration required"},
		{"already reviewed", store.ErrAlreadyReviewed, "You have already reviewed this book"},
		{"internal detail hidden", errors.New("pq: connection refused"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
