package web

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/microblog/pkg/cookie"
	"github.com/dmitrymomot/microblog/pkg/health"
)

// Option configures the App.
type Option func(*App)

// WithMiddleware adds global middleware. The first one given is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mw...) }
}

func WithHandlers(h ...Handler) Option {
	return func(a *App) { a.handlers = append(a.handlers, h...) }
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.onError = h }
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFound = h }
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.notAllowed = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithCookieManager sets the manager behind sessions and flash messages.
// Both need a manager with a secret.
func WithCookieManager(m *cookie.Manager) Option {
	return func(a *App) {
		if m != nil {
			a.cookies = m
		}
	}
}

// WithStaticFiles serves fsys under prefix, e.g. "/static/" with views.Static().
// Directory paths answer 404.
func WithStaticFiles(prefix string, fsys fs.FS) Option {
	return func(a *App) {
		prefix = "/" + strings.Trim(prefix, "/")
		a.mounts = append(a.mounts, mount{prefix: prefix, handler: staticHandler(prefix, fsys)})
	}
}

func staticHandler(prefix string, fsys fs.FS) http.Handler {
	files := http.StripPrefix(prefix, http.FileServerFS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

// HealthOption configures WithHealthChecks.
type HealthOption func(health.Checks)

// WithHealthChecks serves LivenessPath and ReadinessPath. Readiness fails with
// 503 while any registered check fails.
//
//	web.WithHealthChecks(web.WithReadinessCheck("postgres", db.Healthcheck(pool)))
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		a.readiness = make(health.Checks)
		for _, opt := range opts {
			opt(a.readiness)
		}
	}
}

func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(checks health.Checks) {
		if fn != nil {
			checks[name] = fn
		}
	}
}
