// Package web is the small HTTP layer both applications are built on.
//
// An App wraps a chi router. Handlers declare routes through the Router
// interface and receive a Context instead of the usual (w, r) pair:
//
//	func (h *Blog) Routes(r web.Router) {
//		r.GET("/", h.index)
//		r.GET("/post/{slug}/", h.showPost)
//	}
//
//	func (h *Blog) showPost(c web.Context) error {
//		post, err := h.posts.BySlug(c, c.Param("slug"))
//		if err != nil {
//			return err
//		}
//		return c.Render(http.StatusOK, h.views.Post(post))
//	}
//
// A returned error goes to the ErrorHandler set with WithErrorHandler.
// HTTPError values carry a status code and a user-facing message.
//
// # Sessions
//
// The session is a signed cookie holding the user id. AuthenticateSession
// sets it, DestroySession removes it and UserID reads it (0 when anonymous).
// Flash messages travel in an encrypted cookie and are consumed by Flash.
// Both need a cookie manager with a secret, see WithCookieManager.
//
// # Running
//
// Run listens on the address and shuts down gracefully on SIGINT, SIGTERM or
// when the context is canceled. Shutdown hooks run after the server stops.
//
//	err := app.Run(ctx, ":8080",
//		web.ShutdownTimeout(10*time.Second),
//		web.ShutdownHook(db.Shutdown(pool)),
//	)
package web
