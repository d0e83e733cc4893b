package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/kmadrilejo/atelier/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth ExecContext issued inside the
// transaction, counting from 1. Reads pass through untouched. Used to prove
// that multi-write use cases roll back as a unit when a write fails partway.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	counting := &countingExecTx{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, counting); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type countingExecTx struct {
	db.DBTX
	calls  atomic.Int32
	failOn int32
	err    error
}

func (c *countingExecTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.calls.Add(1) == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
