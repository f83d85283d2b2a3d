package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is what handlers see while declaring routes.
type Router interface {
	// Handle registers h for one method. Route middleware wraps h in the order given.
	Handle(method, path string, h HandlerFunc, mw ...Middleware)
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)

	// Form serves show on GET and submit on POST of the same path.
	Form(path string, show, submit HandlerFunc, mw ...Middleware)

	// Group shares middleware without a path prefix. Use inside a group does
	// not leak to routes declared outside of it.
	Group(fn func(r Router))
	Route(prefix string, fn func(r Router))

	// Use must be called before any route of the same router is declared.
	Use(mw ...Middleware)
}

type routerAdapter struct {
	router chi.Router
	app    *App
}

func (r *routerAdapter) Handle(method, path string, h HandlerFunc, mw ...Middleware) {
	r.router.Method(method, path, r.app.wrapHandler(chain(h, mw)))
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodGet, path, h, mw...)
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPost, path, h, mw...)
}

func (r *routerAdapter) Form(path string, show, submit HandlerFunc, mw ...Middleware) {
	r.GET(path, show, mw...)
	r.POST(path, submit, mw...)
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(r.with(cr))
	})
}

func (r *routerAdapter) Route(prefix string, fn func(Router)) {
	r.router.Route(prefix, func(cr chi.Router) {
		fn(r.with(cr))
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.router.Use(r.app.adaptMiddleware(m))
	}
}

func (r *routerAdapter) with(cr chi.Router) *routerAdapter {
	return &routerAdapter{router: cr, app: r.app}
}

// chain applies mw so that mw[0] is the outermost layer.
func chain(h HandlerFunc, mw []Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// adaptMiddleware lifts a Middleware onto chi's http.Handler stack. Values the
// middleware stores with Context.Set travel downstream on the request.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.wrapHandler(mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		}))
	}
}
