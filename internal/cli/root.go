// Package cli wires configuration, storage and HTTP apps into cobra commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/microblog/internal/config"
	"github.com/dmitrymomot/microblog/middlewares"
	"github.com/dmitrymomot/microblog/pkg/cookie"
	"github.com/dmitrymomot/microblog/pkg/logger"
	"github.com/dmitrymomot/microblog/pkg/slug"
)

// RootOptions holds flags shared by all commands.
type RootOptions struct {
	LogLevel string
}

// NewRootCommand creates the microblog command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "microblog",
		Short:         "Blog with collision-free post slugs, plus an events prototype",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides LOG_LEVEL")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewEventsCommand(opts))

	return cmd
}

// deps is what every command needs before doing its work.
type deps struct {
	log   *slog.Logger
	flush logger.Flush
	cfg   config.App
}

// setup loads the app config and builds the process logger.
func (o *RootOptions) setup() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	log, flush, err := logger.NewWithSentry(os.Stdout, logger.ParseLevel(cfg.LogLevel), cfg.Sentry,
		middlewares.RequestIDExtractor())
	if err != nil {
		return nil, err
	}
	slog.SetDefault(log)
	return &deps{cfg: cfg, log: log, flush: flush}, nil
}

func cookieManager(cfg config.App) *cookie.Manager {
	return cookie.New(
		cookie.WithSecret(cfg.CookieSecret),
		cookie.WithSecure(cfg.CookieSecure),
	)
}

func slugGenerator(cfg config.App) *slug.Generator {
	return slug.NewGenerator(
		slug.WithMaxLength(cfg.SlugMaxLength),
		slug.WithMaxAttempts(cfg.SlugMaxAttempts),
	)
}
