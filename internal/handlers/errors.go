package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/internal/events"
	"github.com/dmitrymomot/microblog/internal/views"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/middlewares"
)

func isNotFound(err error) bool {
	return errors.Is(err, blog.ErrNotFound) || errors.Is(err, events.ErrNotFound)
}

// ErrorHandler renders the error page of set for a failed request.
// HTTPError codes are kept, not-found and forbidden domain errors map to
// 404 and 403, and anything else is logged and answered with a 500.
func ErrorHandler(set *views.Set) web.ErrorHandler {
	return func(c web.Context, err error) error {
		code := http.StatusInternalServerError
		message := defaultMessage(code)

		if httpErr := web.AsHTTPError(err); httpErr != nil {
			code = httpErr.Code
			message = httpErr.Message
		} else {
			switch {
			case isNotFound(err):
				code = http.StatusNotFound
			case errors.Is(err, blog.ErrForbidden):
				code = http.StatusForbidden
			}
			message = defaultMessage(code)
		}

		reqID := middlewares.GetRequestID(c)
		if code >= http.StatusInternalServerError {
			c.LogError("request failed",
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
				slog.Bool("panic", middlewares.IsPanicError(err)))
		}

		return c.Render(code, set.Error(views.ErrorPage{
			Code:      code,
			Heading:   http.StatusText(code),
			Message:   message,
			RequestID: reqID,
			Page:      views.Page{Title: http.StatusText(code), CurrentUser: currentUser(c)},
		}))
	}
}

// NotFound renders the 404 page through the error handler.
func NotFound(c web.Context) error {
	return web.ErrNotFound(defaultMessage(http.StatusNotFound))
}

// MethodNotAllowed renders the 405 page through the error handler.
func MethodNotAllowed(c web.Context) error {
	return web.ErrMethodNotAllowed(defaultMessage(http.StatusMethodNotAllowed))
}

func defaultMessage(code int) string {
	switch code {
	case http.StatusNotFound:
		return "The page you are looking for does not exist."
	case http.StatusForbidden:
		return "You are not allowed to do that."
	case http.StatusMethodNotAllowed:
		return "This method is not allowed here."
	case http.StatusBadRequest:
		return "The request could not be understood."
	}
	return "Something went wrong on our side. Please try again later."
}
