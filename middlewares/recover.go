package middlewares

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/microblog/internal/web"
)

// DefaultStackSize caps the captured stack trace, in bytes.
const DefaultStackSize = 4 << 10

// PanicError replaces a recovered panic on its way to the app error handler.
type PanicError struct {
	Value  any
	Method string
	Path   string
	Stack  []byte // nil when stack capture is off
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s %s: %v", e.Method, e.Path, e.Value)
}

// Unwrap exposes the panic value when it was an error, so errors.Is sees through it.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// IsPanicError reports whether err wraps a PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// AsPanicError extracts the PanicError from err's chain.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	ok := errors.As(err, &pe)
	return pe, ok
}

// RecoverOption configures Recover.
type RecoverOption func(*int)

// WithStackSize sets the maximum captured stack size. Zero turns capture off.
func WithStackSize(n int) RecoverOption {
	return func(size *int) {
		if n >= 0 {
			*size = n
		}
	}
}

// Recover turns a panic further down the chain into a *PanicError.
// It should sit after RequestID so the log line carries the id.
func Recover(opts ...RecoverOption) web.Middleware {
	stackSize := DefaultStackSize
	for _, opt := range opts {
		opt(&stackSize)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}

				pe := &PanicError{Value: v, Method: c.Request().Method, Path: c.Request().URL.Path}
				attrs := []any{slog.Any("panic", v), slog.String("path", pe.Path)}
				if stackSize > 0 {
					pe.Stack = make([]byte, stackSize)
					pe.Stack = pe.Stack[:runtime.Stack(pe.Stack, false)]
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				c.LogError("panic recovered", attrs...)
				err = pe
			}()

			return next(c)
		}
	}
}
