package store

import (
	"errors"
	"fmt"
)

// Base sentinels. Entity-specific errors below wrap one of these so
// callers can match either the broad class or the exact entity.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a
	// uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// database constraint before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction fails to commit
	// or an operation inside one fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrNoCopiesAvailable is returned when a checkout is attempted on a
	// book with no available copies.
	ErrNoCopiesAvailable = errors.New("no copies available")
)

// Not-found errors per entity.
var (
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
	ErrPatronNotFound   = fmt.Errorf("%w: patron profile", ErrNotFound)
	ErrAuthorNotFound   = fmt.Errorf("%w: author profile", ErrNotFound)
	ErrGenreNotFound    = fmt.Errorf("%w: genre", ErrNotFound)
	ErrBookNotFound     = fmt.Errorf("%w: book", ErrNotFound)
	ErrLoanNotFound     = fmt.Errorf("%w: loan", ErrNotFound)
	ErrProgressNotFound = fmt.Errorf("%w: reading progress", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("%w: review", ErrNotFound)
)

// Duplicate errors per constraint.
var (
	ErrEmailExists     = fmt.Errorf("%w: email", ErrDuplicate)
	ErrUsernameExists  = fmt.Errorf("%w: username", ErrDuplicate)
	ErrGenreNameExists = fmt.Errorf("%w: genre name", ErrDuplicate)
	ErrPatronExists    = fmt.Errorf("%w: patron profile", ErrDuplicate)
	ErrAuthorExists    = fmt.Errorf("%w: author profile", ErrDuplicate)
	ErrAlreadyShelved  = fmt.Errorf("%w: shelf entry", ErrDuplicate)
	ErrAlreadyReviewed = fmt.Errorf("%w: review", ErrDuplicate)
)

// IsNotFoundError reports whether err wraps any not-found sentinel.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err wraps any duplicate sentinel.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
