package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Healthcheck returns a readiness check that runs SELECT 1 on a pooled connection.
// An exhausted pool also fails the check since the acquire does not return in time.
func Healthcheck(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		var one int
		if err := pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// PoolStats summarizes pool usage for log lines.
func PoolStats(pool *pgxpool.Pool) map[string]any {
	s := pool.Stat()
	return map[string]any{
		"total":        s.TotalConns(),
		"idle":         s.IdleConns(),
		"acquired":     s.AcquiredConns(),
		"max":          s.MaxConns(),
		"acquire_wait": s.AcquireDuration().Round(time.Millisecond).String(),
	}
}
