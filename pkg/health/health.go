package health

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/microblog/pkg/logger"
)

const defaultTimeout = 5 * time.Second

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency. db.Healthcheck returns one.
type CheckFunc func(ctx context.Context) error

type Checks map[string]CheckFunc

// Response is the JSON body of a probe. Status is unhealthy if any check is.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

type Check struct {
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

type Option func(*config)

// WithTimeout bounds the whole round of checks. Defaults to 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger receives a warning for every failed check.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes checks concurrently under the configured timeout.
// A check that ignores ctx is abandoned at the deadline and reported as ErrCheckTimeout.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return runChecks(ctx, checks, newConfig(opts...))
}

func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	resp := &Response{Status: StatusHealthy}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	type outcome struct {
		name  string
		check Check
	}
	outcomes := make(chan outcome, len(checks))

	var g errgroup.Group
	for name, fn := range checks {
		g.Go(func() error {
			start := time.Now()
			c := Check{Status: StatusHealthy}
			if err := runCheck(ctx, fn); err != nil {
				c.Status, c.Error = StatusUnhealthy, err.Error()
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.Any("error", err),
				)
			}
			c.DurationMS = time.Since(start).Milliseconds()
			outcomes <- outcome{name: name, check: c}
			return nil
		})
	}
	_ = g.Wait()
	close(outcomes)

	resp.Checks = make(map[string]Check, len(checks))
	for o := range outcomes {
		resp.Checks[o.name] = o.check
		if o.check.Status != StatusHealthy {
			resp.Status = StatusUnhealthy
		}
	}
	return resp
}

func runCheck(ctx context.Context, fn CheckFunc) error {
	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()

	select {
	case err := <-done:
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrCheckTimeout
		}
		return err
	case <-ctx.Done():
		return ErrCheckTimeout
	}
}
