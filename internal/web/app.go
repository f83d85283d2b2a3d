package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/microblog/pkg/cookie"
	"github.com/dmitrymomot/microblog/pkg/health"
	"github.com/dmitrymomot/microblog/pkg/logger"
)

// Health endpoints registered by WithHealthChecks.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// App wires routing, middleware and error handling around a chi router.
// It is immutable after New.
type App struct {
	router      chi.Router
	log         *slog.Logger
	cookies     *cookie.Manager
	onError     ErrorHandler
	notFound    HandlerFunc
	notAllowed  HandlerFunc
	readiness   health.Checks // nil leaves the health endpoints off
	middlewares []Middleware
	handlers    []Handler
	mounts      []mount
}

type mount struct {
	handler http.Handler
	prefix  string
}

// New creates an application with the given options.
//
// Example:
//
//	app := web.New(
//	    web.WithLogger(log),
//	    web.WithCookieManager(cookie.New(cookie.WithSecret(secret))),
//	    web.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    web.WithHandlers(handlers.NewBlog(users, posts, views)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:  chi.NewRouter(),
		log:     logger.NewNope(),
		cookies: cookie.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// setupRoutes registers everything on the root router. chi requires global
// middleware before the first route, so the order below matters.
func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.notFound != nil {
		a.router.NotFound(a.wrapHandler(a.notFound))
	}
	if a.notAllowed != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.notAllowed))
	}

	for _, m := range a.mounts {
		a.router.Mount(m.prefix, m.handler)
	}

	if a.readiness != nil {
		a.router.Get(LivenessPath, health.LivenessHandler())
		a.router.Get(ReadinessPath, health.ReadinessHandler(a.readiness, health.WithLogger(a.log)))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError answers a failed request. Once the response has started only a
// log line is left to write.
func (a *App) handleError(c Context, err error) {
	switch {
	case c.Written():
		c.LogError("handler failed after response was written", slog.Any("error", err))
	case a.onError != nil:
		if herr := a.onError(c, err); herr != nil {
			c.LogError("error handler failed", slog.Any("error", herr), slog.Any("cause", err))
			plainError(c, http.StatusInternalServerError, "")
		}
	default:
		httpErr := AsHTTPError(err)
		if httpErr == nil || httpErr.Code >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Any("error", err))
			plainError(c, StatusCode(err), "")
			return
		}
		plainError(c, httpErr.Code, httpErr.Message)
	}
}

func plainError(c Context, code int, msg string) {
	if c.Written() {
		return
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	http.Error(c.Response(), msg, code)
}
