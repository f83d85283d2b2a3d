package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Shutdown returns a hook that closes the pool. pgxpool waits for acquired
// connections to be released; the hook gives up when ctx ends and returns
// ErrShutdownTimeout while the close finishes in the background.
//
//	app.Run(ctx, addr, web.ShutdownHook(db.Shutdown(pool)))
func Shutdown(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() {
			pool.Close()
			close(done)
		}()

		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return errors.Join(ErrShutdownTimeout, ctx.Err())
		}
	}
}
