package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/microblog/internal/web"
)

// AccessLog writes one "request completed" line per request with the final
// status, body size and duration. Server errors are logged at warn level; the
// error handler has already logged their cause.
//
// Register it after RequestID and before Recover.
func AccessLog() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			start := time.Now()
			err := next(c)

			status, size := http.StatusOK, int64(0)
			if rw, ok := c.Response().(*web.ResponseWriter); ok {
				status, size = rw.Status(), rw.Size()
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", size),
				slog.Duration("duration", time.Since(start)),
			}
			if status >= http.StatusInternalServerError {
				c.LogWarn("request completed", attrs...)
			} else {
				c.LogInfo("request completed", attrs...)
			}
			return err
		}
	}
}
