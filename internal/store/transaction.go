// Package store defines the persistence interfaces the services depend on,
// their shared sentinel errors, and the transaction helper.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/openshelf/libra-api/internal/platform/logger"
)

// TxFn runs inside a transaction. Returning nil commits; returning an
// error rolls back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction wraps fn in a transaction, rolling back on error or
// panic and committing otherwise. Panics are re-raised after rollback.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("rollback failed after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback failed",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
