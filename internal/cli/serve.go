package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/internal/handlers"
	"github.com/dmitrymomot/microblog/internal/repository"
	"github.com/dmitrymomot/microblog/internal/views"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/middlewares"
	"github.com/dmitrymomot/microblog/migrations"
	"github.com/dmitrymomot/microblog/pkg/db"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Address        string
	SkipMigrations bool
}

// NewServeCommand creates the serve command running the blog.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog HTTP server",
		Long: `Run the blog HTTP server.

Pending migrations are applied on startup unless --skip-migrations is set.
The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Address, "addr", "", "listen address, overrides HTTP_ADDRESS")
	cmd.Flags().BoolVar(&opts.SkipMigrations, "skip-migrations", false, "do not apply migrations on startup")

	return cmd
}

func serve(cmd *cobra.Command, opts *ServeOptions) error {
	ctx := cmd.Context()

	rt, err := opts.setup()
	if err != nil {
		return err
	}
	cfg, log := rt.cfg, rt.log
	if opts.Address != "" {
		cfg.HTTPAddress = opts.Address
	}

	pool, dbCfg, err := connect(ctx, log)
	if err != nil {
		return err
	}

	if !opts.SkipMigrations {
		if err := db.Migrate(ctx, pool, migrations.FS, dbCfg.MigrationsTable, log); err != nil {
			pool.Close()
			return err
		}
	}

	store := blog.NewPostgresStore(repository.New(pool))
	users := blog.NewUserService(store, blog.WithUserLogger(log))
	posts := blog.NewPostService(pool, store,
		blog.WithSlugGenerator(slugGenerator(cfg)),
		blog.WithCommitAttempts(cfg.PostSaveAttempts),
		blog.WithPostLogger(log),
	)

	set, err := views.NewBlog()
	if err != nil {
		pool.Close()
		return err
	}

	app := web.New(
		web.WithLogger(log),
		web.WithCookieManager(cookieManager(cfg)),
		web.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
			middlewares.CSRF(),
		),
		web.WithStaticFiles("/static/", views.Static()),
		web.WithHealthChecks(
			web.WithReadinessCheck("postgres", db.Healthcheck(pool)),
		),
		web.WithErrorHandler(handlers.ErrorHandler(set)),
		web.WithNotFoundHandler(handlers.NotFound),
		web.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		web.WithHandlers(handlers.NewBlog(users, posts, set)),
	)

	return app.Run(ctx, cfg.HTTPAddress,
		web.ShutdownTimeout(cfg.ShutdownTimeout),
		web.ShutdownHook(db.Shutdown(pool)),
		web.ShutdownHook(rt.flush),
	)
}
