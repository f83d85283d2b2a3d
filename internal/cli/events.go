package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/microblog/internal/events"
	"github.com/dmitrymomot/microblog/internal/handlers"
	"github.com/dmitrymomot/microblog/internal/views"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/middlewares"
)

// EventsOptions holds flags for the events command.
type EventsOptions struct {
	*RootOptions
	Address  string
	SeedFile string
}

// NewEventsCommand creates the command running the events prototype.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Run the events prototype (in-memory, no database)",
		Long: `Run the events prototype.

Events live in memory and are lost on exit. The store starts with the
built-in seed, or with the YAML file given by --seed or EVENTS_SEED_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvents(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Address, "addr", "", "listen address, overrides EVENTS_ADDRESS")
	cmd.Flags().StringVar(&opts.SeedFile, "seed", "", "YAML seed file, overrides EVENTS_SEED_FILE")

	return cmd
}

func runEvents(cmd *cobra.Command, opts *EventsOptions) error {
	ctx := cmd.Context()

	rt, err := opts.setup()
	if err != nil {
		return err
	}
	cfg, log := rt.cfg, rt.log
	if opts.Address != "" {
		cfg.EventsAddress = opts.Address
	}
	if opts.SeedFile != "" {
		cfg.EventsSeedFile = opts.SeedFile
	}

	store := events.NewStore(
		events.WithSlugGenerator(slugGenerator(cfg)),
		events.WithLogger(log),
	)
	if err := seed(cmd, store, cfg.EventsSeedFile); err != nil {
		return err
	}

	set, err := views.NewEvents()
	if err != nil {
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
		web.WithHealthChecks(),
		web.WithErrorHandler(handlers.ErrorHandler(set)),
		web.WithNotFoundHandler(handlers.NotFound),
		web.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		web.WithHandlers(handlers.NewEvents(store, set)),
	)

	return app.Run(ctx, cfg.EventsAddress,
		web.ShutdownTimeout(cfg.ShutdownTimeout),
		web.ShutdownHook(rt.flush),
	)
}

func seed(cmd *cobra.Command, store *events.Store, path string) error {
	if path == "" {
		return store.Seed(cmd.Context(), nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return store.Seed(cmd.Context(), f)
}
