package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openshelf/libra-api/internal/api/shared"
	"github.com/openshelf/libra-api/internal/domain"
	"github.com/openshelf/libra-api/internal/service"
	"github.com/openshelf/libra-api/internal/service/auth"
	"github.com/openshelf/libra-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, domain.ErrNotPatron),
		errors.Is(err, domain.ErrNotAuthor),
		errors.Is(err, domain.ErrNotBookAuthor):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrNoCopiesAvailable),
		errors.Is(err, domain.ErrLoanNotActive):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrPageOutOfRange),
		errors.Is(err, service.ErrUnknownGenre),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrRevokedToken):
		return "Token revoked"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "Resource belongs to another user"

	case errors.Is(err, domain.ErrNotPatron):
		return "Patron registration required"

	case errors.Is(err, domain.ErrNotAuthor):
		return "Author registration required"

	case errors.Is(err, domain.ErrNotBookAuthor):
		return "You are not an author of this book"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrPatronNotFound):
		return "Patron profile not found"

	case errors.Is(err, store.ErrAuthorNotFound):
		return "Author profile not found"

	case errors.Is(err, store.ErrGenreNotFound):
		return "Genre not found"

	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"

	case errors.Is(err, store.ErrLoanNotFound):
		return "Loan not found"

	case errors.Is(err, store.ErrProgressNotFound):
		return "Book is not on your shelf"

	case errors.Is(err, store.ErrReviewNotFound):
		return "Review not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, store.ErrGenreNameExists):
		return "Genre name already exists"

	case errors.Is(err, store.ErrPatronExists):
		return "Patron profile already registered"

	case errors.Is(err, store.ErrAuthorExists):
		return "Author profile already registered"

	case errors.Is(err, store.ErrAlreadyShelved):
		return "Book is already on your shelf"

	case errors.Is(err, store.ErrAlreadyReviewed):
		return "You have already reviewed this book"

	case errors.Is(err, store.ErrNoCopiesAvailable):
		return "No copies available"

	case errors.Is(err, domain.ErrLoanNotActive):
		return "Loan is not active"

	// Bad request errors
	case errors.Is(err, service.ErrUnknownGenre):
		return "Unknown genre"

	case errors.Is(err, domain.ErrPageOutOfRange):
		return "Page is out of range"

	case isDomainValidationError(err),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and writes a sanitized
// response, logging the full error. An empty userMessage falls back to the
// mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// isDomainValidationError reports whether the error chain contains a
// domain.ValidationError.
func isDomainValidationError(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
