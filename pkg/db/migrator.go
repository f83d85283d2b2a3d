package db

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/microblog/pkg/logger"
)

// DefaultMigrationsTable is used when Migrate gets an empty table name.
const DefaultMigrationsTable = "schema_migrations"

// Migrate applies the pending goose migrations at the root of migrations and
// logs one line per applied file.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS, table string, log *slog.Logger) error {
	if log == nil {
		log = logger.NewNope()
	}
	if table == "" {
		table = DefaultMigrationsTable
	}

	store, err := database.NewStore(database.DialectPostgres, table)
	if err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	// The *sql.DB borrows pool connections. It stays open: closing it would close the pool.
	provider, err := goose.NewProvider("", stdlib.OpenDBFromPool(pool), migrations, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		if r.Source == nil {
			continue
		}
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	if len(results) == 0 {
		log.InfoContext(ctx, "database schema is up to date", slog.String("table", table))
	}
	return nil
}
