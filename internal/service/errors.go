package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrUnknownGenre indicates a book referenced a genre name that does not
	// exist in the catalog.
	ErrUnknownGenre = errors.New("unknown genre")
)
