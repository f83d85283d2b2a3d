package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner starts transactions. Satisfied by *pgxpool.Pool and pgx.Tx.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx runs fn inside a transaction and commits when fn returns nil.
// On error or panic the transaction is rolled back; a panic is re-raised.
// Commit failures keep the driver error, so IsUniqueViolation still matches
// constraints checked at commit time.
func WithTx(ctx context.Context, db TxBeginner, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Join(ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("%w: %w", ErrRollbackTx, rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrCommitTx, err)
	}
	return nil
}
