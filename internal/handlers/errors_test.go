package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/microblog/internal/blog"
	"github.com/dmitrymomot/microblog/internal/handlers"
	"github.com/dmitrymomot/microblog/internal/views"
	"github.com/dmitrymomot/microblog/internal/web"
	"github.com/dmitrymomot/microblog/middlewares"
)

type routes func(r web.Router)

func (f routes) Routes(r web.Router) { f(r) }

func TestErrorHandler(t *testing.T) {
	set, err := views.NewBlog()
	require.NoError(t, err)

	app := web.New(
		web.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
		web.WithErrorHandler(handlers.ErrorHandler(set)),
		web.WithHandlers(routes(func(r web.Router) {
			r.GET("/boom", func(web.Context) error { return errors.New("db password is hunter2") })
			r.GET("/panic", func(web.Context) error { panic("kaboom") })
			r.GET("/forbidden", func(web.Context) error { return blog.ErrForbidden })
			r.GET("/missing", func(web.Context) error { return blog.ErrNotFound })
			r.GET("/teapot", func(web.Context) error {
				return web.NewHTTPError(http.StatusTeapot, "short and stout")
			})
		})),
	)

	tests := []struct {
		path    string
		code    int
		message string
	}{
		{"/boom", http.StatusInternalServerError, "Something went wrong on our side."},
		{"/panic", http.StatusInternalServerError, "Something went wrong on our side."},
		{"/forbidden", http.StatusForbidden, "You are not allowed to do that."},
		{"/missing", http.StatusNotFound, "The page you are looking for does not exist."},
		{"/teapot", http.StatusTeapot, "short and stout"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := newClient(t, app).get(tt.path)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.NotContains(t, w.Body.String(), "hunter2")
			assert.NotContains(t, w.Body.String(), "kaboom")

			reqID := w.Header().Get("X-Request-ID")
			require.NotEmpty(t, reqID)
			assert.Contains(t, w.Body.String(), reqID)
		})
	}
}
