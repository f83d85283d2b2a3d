package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	shutdownHooks   []func(context.Context) error
	shutdownTimeout time.Duration
}

// ShutdownTimeout bounds the graceful shutdown, hooks included. Defaults to 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// ShutdownHook registers cleanup that runs once the server stopped accepting
// requests. Hooks run in registration order and share the shutdown deadline.
//
//	web.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// Run serves the app on addr (":8080" when empty) until ctx is canceled, the
// process gets SIGINT or SIGTERM, or the server fails. Shutdown hooks run in
// every case.
func (a *App) Run(ctx context.Context, addr string, opts ...RunOption) error {
	cfg := &runConfig{shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	if addr == "" {
		addr = defaultAddress
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("web: listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           a,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(a.log.Handler(), slog.LevelWarn),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown(srv, cfg)
	})
	return g.Wait()
}

func (a *App) shutdown(srv *http.Server, cfg *runConfig) error {
	a.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	errs := []error{srv.Shutdown(ctx)}
	for _, hook := range cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			a.log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.log.Info("shutdown completed")
	return nil
}
