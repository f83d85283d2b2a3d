// Package middlewares provides the HTTP middleware shared by the blog and events apps.
//
// # Request ID
//
// RequestID assigns each request an id, reusing X-Request-ID or X-Correlation-ID
// when the client sent a sane one and generating a UUID otherwise.
// RequestIDExtractor puts the id on every log record:
//
//	log := logger.New(slog.LevelInfo, middlewares.RequestIDExtractor())
//	app := web.New(
//	    web.WithLogger(log),
//	    web.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.AccessLog(),
//	        middlewares.Recover(),
//	    ),
//	)
//
// # Access log
//
// AccessLog writes one "request completed" record per request with the
// status, size and duration. 5xx responses are logged at WARN.
//
// # Recover
//
// Recover converts panics into *PanicError so the app error handler renders
// the 500 page. Up to DefaultStackSize bytes of stack are captured; WithStackSize changes that
// and 0 turns it off:
//
//	if pe, ok := middlewares.AsPanicError(err); ok {
//	    log.Error("panic", "value", pe.Value)
//	}
//
// # Cross-origin protection
//
// CSRF rejects POST and other unsafe requests that a browser marks as coming
// from another origin, same-site subdomains included, with a 403. It relies on
// Sec-Fetch-Site and Origin, so forms need no hidden token:
//
//	web.WithMiddleware(middlewares.RequestID(), middlewares.Recover(), middlewares.CSRF())
//
// # Authentication
//
// RequireAuth guards routes that need a signed-in user. Anonymous visitors are
// redirected to /login?next=<requested path>. RedirectAuthenticated does the
// opposite for the login and signup pages.
//
//	r.GET("/admin/post/", h.newPost, middlewares.RequireAuth())
package middlewares
