package shared

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the querying surface shared by *pgxpool.Pool and pgx.Tx, so a
// repository method can run either standalone or inside a transaction the
// caller controls.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxRunner runs a function inside a database transaction. Commands that
// must apply several writes atomically depend on this port rather than on
// a concrete pool, so unit tests can substitute a pass-through runner.
type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}
