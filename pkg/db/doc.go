// Package db is the PostgreSQL plumbing behind the blog: a pgxpool with
// startup retries, goose migrations, WithTx, a readiness check and helpers that
// classify driver errors.
//
// Config is filled by caarlos0/env from DATABASE_* variables; only
// DATABASE_URL is required. Connect retries with linear backoff, waiting
// attempt*DATABASE_RETRY_INTERVAL between tries, so the blog can start
// alongside its database.
//
//	pool, err := db.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// Slug assignment relies on telling a unique violation apart from any other
// failure, including ones raised at commit:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := q.WithTx(tx).CreatePost(ctx, params)
//		return err
//	})
//	if db.IsUniqueViolation(err) && db.ConstraintName(err) == "posts_slug_key" {
//		// pick another slug and try again
//	}
package db
