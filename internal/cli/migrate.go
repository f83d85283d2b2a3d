package cli

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/microblog/internal/config"
	"github.com/dmitrymomot/microblog/migrations"
	"github.com/dmitrymomot/microblog/pkg/db"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := rootOpts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = rt.flush(context.Background()) }()

			pool, dbCfg, err := connect(cmd.Context(), rt.log)
			if err != nil {
				return err
			}
			defer pool.Close()

			return db.Migrate(cmd.Context(), pool, migrations.FS, dbCfg.MigrationsTable, rt.log)
		},
	}
}

// connect opens the pool described by the DATABASE_* variables.
func connect(ctx context.Context, log *slog.Logger) (*pgxpool.Pool, db.Config, error) {
	dbCfg, err := config.LoadDatabase()
	if err != nil {
		return nil, db.Config{}, err
	}
	pool, err := db.Connect(ctx, dbCfg, log)
	if err != nil {
		return nil, db.Config{}, err
	}
	log.InfoContext(ctx, "database connected", slog.Any("pool", db.PoolStats(pool)))
	return pool, dbCfg, nil
}
