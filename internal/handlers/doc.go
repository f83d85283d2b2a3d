// Package handlers holds the HTTP handlers of the blog and events apps.
//
// Both apps share the error pages and the flash helpers defined here. The
// blog handler expects LoadUser in front of its routes, which it installs
// itself:
//
//	set, _ := views.NewBlog()
//	app := web.New(
//		web.WithErrorHandler(handlers.ErrorHandler(set)),
//		web.WithNotFoundHandler(handlers.NotFound),
//		web.WithHandlers(handlers.NewBlog(users, posts, set)),
//	)
//
// Services are consumed through the small interfaces in services.go so
// tests can swap them for in-memory fakes.
package handlers
