package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface common to *sql.DB and *sql.Tx. Store
// implementations run against it so the same code serves both direct
// calls and transactional ones via WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
