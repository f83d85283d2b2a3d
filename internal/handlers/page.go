package handlers

import (
	"log/slog"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/internal/views"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/pkg/validator"
)

// Flash categories understood by the layout.
const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashDanger  = "danger"
)

type currentUserKey struct{}

// LoadUser resolves the session user id into a *blog.User for later layers.
// A session pointing at a deleted user is destroyed.
func LoadUser(users UserService) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			id := c.UserID()
			if id == 0 {
				return next(c)
			}

			u, err := users.ByID(c, id)
			switch {
			case err == nil:
				c.Set(currentUserKey{}, u)
			case isNotFound(err):
				c.LogWarn("session user no longer exists", slog.Int64("user_id", id))
				c.DestroySession()
			default:
				return err
			}
			return next(c)
		}
	}
}

// currentUser returns the user loaded by LoadUser, or nil.
func currentUser(c web.Context) *blog.User {
	return web.ContextValue[*blog.User](c, currentUserKey{})
}

// page builds the layout data and consumes pending flash messages.
func page(c web.Context, title string) views.Page {
	return views.Page{
		Title:       title,
		CurrentUser: currentUser(c),
		Flashes:     c.Flash(),
	}
}

// flash queues a message, logging instead of failing the request.
func flash(c web.Context, category, message string) {
	if err := c.SetFlash(category, message); err != nil {
		c.LogWarn("failed to set flash", slog.Any("error", err))
	}
}

// formValues collects the named fields from the submitted form.
func formValues(c web.Context, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = c.Form(f)
	}
	return values
}

// fieldError builds a single-field ValidationErrors for errors found after validation.
func fieldError(field, message string) validator.ValidationErrors {
	return validator.ValidationErrors{{Field: field, Message: message}}
}
