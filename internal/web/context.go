package web

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/microblog/pkg/cookie"
)

// Context is handed to every HandlerFunc and Middleware. It is a
// context.Context bound to the request, so it can be passed to services.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// Param is a chi URL parameter such as {slug}.
	Param(name string) string
	Query(name string) string
	// Form is the trimmed value from the POST body, falling back to the query.
	Form(name string) string
	// FormBool treats "", "0", "false", "off", "n" and "no" as unchecked.
	FormBool(name string) bool
	Header(name string) string
	SetHeader(name, value string)

	String(code int, s string) error
	NoContent(code int) error
	Redirect(code int, url string) error
	// Render buffers component and writes nothing if it fails, so the error
	// handler can still answer with its own page.
	Render(code int, component templ.Component) error
	// Written reports whether the status line has gone out.
	Written() bool

	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value on the request context; later layers see it with Get.
	Set(key, value any)
	Get(key any) any

	// UserID is the signed-in user id, or 0.
	UserID() int64
	IsAuthenticated() bool
	// AuthenticateSession signs userID in. With remember the cookie lasts
	// RememberMaxAge instead of the browser session.
	AuthenticateSession(userID int64, remember bool) error
	DestroySession()

	// Flash returns the messages queued by the previous response and clears them.
	Flash() []FlashMessage
	SetFlash(category, message string) error
}

type requestContext struct {
	request     *http.Request
	response    *ResponseWriter
	logger      *slog.Logger
	cookies     *cookie.Manager
	flashes     []FlashMessage
	flashHooked bool
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	return &requestContext{
		request:  r,
		response: NewResponseWriter(w),
		logger:   app.log,
		cookies:  app.cookies,
	}
}

func (c *requestContext) Request() *http.Request        { return c.request }
func (c *requestContext) Response() http.ResponseWriter { return c.response }

func (c *requestContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *requestContext) Err() error                  { return c.request.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.request.Context().Value(key) }

func (c *requestContext) Param(name string) string { return chi.URLParam(c.request, name) }
func (c *requestContext) Query(name string) string { return c.request.URL.Query().Get(name) }

func (c *requestContext) Form(name string) string {
	return strings.TrimSpace(c.request.FormValue(name))
}

func (c *requestContext) FormBool(name string) bool {
	switch strings.ToLower(c.Form(name)) {
	case "", "0", "false", "off", "n", "no":
		return false
	}
	return true
}

func (c *requestContext) Header(name string) string { return c.request.Header.Get(name) }

func (c *requestContext) SetHeader(name, value string) { c.response.Header().Set(name, value) }

func (c *requestContext) String(code int, s string) error {
	return c.write(code, "text/plain; charset=utf-8", []byte(s))
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Render(code int, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(c, &buf); err != nil {
		return err
	}
	return c.write(code, "text/html; charset=utf-8", buf.Bytes())
}

func (c *requestContext) write(code int, contentType string, body []byte) error {
	c.response.Header().Set("Content-Type", contentType)
	c.response.WriteHeader(code)
	_, err := c.response.Write(body)
	return err
}

func (c *requestContext) Written() bool { return c.response.Written() }

func (c *requestContext) LogInfo(msg string, attrs ...any)  { c.log(slog.LevelInfo, msg, attrs) }
func (c *requestContext) LogWarn(msg string, attrs ...any)  { c.log(slog.LevelWarn, msg, attrs) }
func (c *requestContext) LogError(msg string, attrs ...any) { c.log(slog.LevelError, msg, attrs) }

func (c *requestContext) log(level slog.Level, msg string, attrs []any) {
	c.logger.Log(c.request.Context(), level, msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.request.Context().Value(key) }
