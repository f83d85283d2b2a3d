package middlewares

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/microblog/internal/web"
)

// DefaultLoginURL is where RequireAuth sends anonymous visitors.
const DefaultLoginURL = "/login"

// AuthOption configures RequireAuth.
type AuthOption func(*authConfig)

type authConfig struct {
	loginURL string
}

// WithLoginURL overrides DefaultLoginURL.
func WithLoginURL(u string) AuthOption {
	return func(cfg *authConfig) {
		if u != "" {
			cfg.loginURL = u
		}
	}
}

// RequireAuth redirects anonymous requests to the login page with the
// requested path in the next query parameter.
func RequireAuth(opts ...AuthOption) web.Middleware {
	cfg := &authConfig{loginURL: DefaultLoginURL}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			if c.IsAuthenticated() {
				return next(c)
			}
			target := cfg.loginURL + "?" + url.Values{"next": {c.Request().URL.RequestURI()}}.Encode()
			if err := c.SetFlash("info", "Please log in to access this page."); err != nil {
				c.LogWarn("flash unavailable", "error", err)
			}
			return c.Redirect(http.StatusSeeOther, target)
		}
	}
}

// RedirectAuthenticated sends signed-in users to target. Used on the login
// and signup pages.
func RedirectAuthenticated(target string) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			if c.IsAuthenticated() {
				return c.Redirect(http.StatusSeeOther, target)
			}
			return next(c)
		}
	}
}
