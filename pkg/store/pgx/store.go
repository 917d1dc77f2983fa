package pgx

import (
	"context"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// MultiplierStore implements store.TableStore on PostgreSQL. Builds land in
// model_builds, per-sector rows in sector_multipliers; at most one build is
// current at a time, enforced by a partial unique index.
type MultiplierStore struct {
	conn pgxIConn
}

// NewMultiplierStore creates a store using an existing connection or pool.
func NewMultiplierStore(conn pgxIConn) *MultiplierStore {
	return &MultiplierStore{conn: conn}
}
