package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/openshelf/libra-api/internal/store"
)

// PostgreSQL error codes the stores care about.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

// MapError translates driver-level failures into the store sentinel
// errors, wrapping the original so callers keep the full chain. Every
// query path in this package funnels its errors through here.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	if pgErr := pgError(err); pgErr != nil {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		}
	}

	return err
}

// pgError extracts the underlying *pgconn.PgError, or nil when the error
// did not originate from PostgreSQL.
func pgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	pgErr := pgError(err)
	return pgErr != nil && pgErr.Code == uniqueViolationCode
}

// MapUniqueViolation swaps a unique violation for specificError (falling
// back to store.ErrDuplicate). Any other error passes through untouched.
func MapUniqueViolation(err error, specificError error) error {
	if !IsUniqueViolation(err) {
		return err
	}
	if specificError == nil {
		specificError = store.ErrDuplicate
	}
	return fmt.Errorf("%w: %v", specificError, err)
}

// CheckRowsAffected returns notFoundErr when an UPDATE or DELETE touched
// zero rows, so those operations can report a missing target record.
func CheckRowsAffected(result sql.Result, notFoundErr error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		if notFoundErr == nil {
			return store.ErrNotFound
		}
		return notFoundErr
	}
	return nil
}
