package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

var ErrSentryFlush = errors.New("logger: sentry events not delivered before shutdown")

// defaultFlushTimeout bounds Flush when ctx carries no deadline.
const defaultFlushTimeout = 2 * time.Second

// SentryConfig enables error reporting. An empty DSN disables it.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"development"`
	Release     string `env:"SENTRY_RELEASE"`
}

// Flush delivers buffered events. Use it as a shutdown hook.
type Flush func(ctx context.Context) error

func noFlush(context.Context) error { return nil }

// NewWithSentry is NewWithWriter that also forwards records to Sentry:
// errors become issues, warnings and errors are kept as breadcrumb logs.
// Without a DSN the logger writes to w only and Flush does nothing.
func NewWithSentry(w io.Writer, level slog.Level, cfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, Flush, error) {
	local := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(local, extractors...)), noFlush, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	})
	if err != nil {
		return nil, nil, errors.Join(errors.New("logger: sentry init failed"), err)
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	h := fanout{local, remote}
	return slog.New(NewLogHandlerDecorator(h, extractors...)), flushSentry, nil
}

func flushSentry(ctx context.Context) error {
	timeout := defaultFlushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !sentry.Flush(timeout) {
		return ErrSentryFlush
	}
	return nil
}

// fanout hands every record to each handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle keeps going after a failing handler and reports all failures.
func (f fanout) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, rec.Level) {
			errs = append(errs, h.Handle(ctx, rec.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanout) each(fn func(slog.Handler) slog.Handler) fanout {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}
