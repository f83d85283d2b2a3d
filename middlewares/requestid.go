package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/pkg/logger"
)

type requestIDKey struct{}

// maxRequestIDLength caps ids accepted from clients.
const maxRequestIDLength = 128

// DefaultRequestIDHeaders are checked in order for an incoming id.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

type requestIDConfig struct {
	generate       func() string
	responseHeader string
	headers        []string
}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders sets the headers checked for an incoming id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.headers = headers
	}
}

// WithRequestIDGenerator replaces the UUIDv4 generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generate = gen
		}
	}
}

// WithRequestIDResponseHeader sets the response header name.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if header != "" {
			cfg.responseHeader = header
		}
	}
}

// RequestID reuses an incoming request id or generates one, stores it in the
// request context and echoes it in the response.
//
// Pair it with RequestIDExtractor so every log line of the request carries the id:
//
//	log := logger.New(slog.LevelInfo, middlewares.RequestIDExtractor())
func RequestID(opts ...RequestIDOption) web.Middleware {
	cfg := &requestIDConfig{
		headers:        DefaultRequestIDHeaders,
		generate:       uuid.NewString,
		responseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			reqID := cfg.incoming(c)
			if reqID == "" {
				reqID = cfg.generate()
			}

			c.Set(requestIDKey{}, reqID)
			c.SetHeader(cfg.responseHeader, reqID)

			return next(c)
		}
	}
}

func (cfg *requestIDConfig) incoming(c web.Context) string {
	for _, header := range cfg.headers {
		if v := c.Header(header); validRequestID(v) {
			return v
		}
	}
	return ""
}

// validRequestID accepts non-empty printable ASCII up to maxRequestIDLength.
func validRequestID(v string) bool {
	if v == "" || len(v) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < 0x21 || v[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the request id stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor adds request_id to log records.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetRequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
