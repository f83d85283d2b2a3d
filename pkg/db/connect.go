package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/microblog/pkg/logger"
)

// Connect opens and pings a pool. Failed attempts are retried with a linear
// backoff, which lets the blog start alongside its database container.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*pgxpool.Pool, error) {
	if log == nil {
		log = logger.NewNope()
	}

	poolCfg, err := cfg.poolConfig()
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		pool, err := open(ctx, poolCfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		log.WarnContext(ctx, "database not ready",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err),
		)

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// open fails on the first ping so bad credentials surface as a connect error.
func open(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
