package web

// Handler is a group of routes, typically one per application area.
//
//	func (h *Events) Routes(r web.Router) {
//		r.GET("/event/{slug}", h.show)
//		r.Form("/event/{slug}/register/", h.registerForm, h.register)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves one route. A non-nil error is answered by the app error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc. It may answer the request itself, for
// example with a redirect, instead of calling next.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders a failed request. If it fails as well, a plain 500 is sent.
type ErrorHandler func(Context, error) error
