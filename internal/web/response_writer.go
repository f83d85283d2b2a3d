package web

import "net/http"

// ResponseWriter records the status and body size of a response and runs
// hooks right before the status line is sent. The flash cookie is written
// from such a hook. Like any http.ResponseWriter it is not safe for
// concurrent use.
type ResponseWriter struct {
	http.ResponseWriter
	hooks   []func()
	size    int64
	status  int
	started bool
}

// NewResponseWriter wraps w. An existing *ResponseWriter is returned as is,
// so every middleware layer of a request shares one set of hooks.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// OnBeforeWrite registers fn to run once, before the headers go out.
// Hooks registered after that point never run.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	if !w.started {
		w.hooks = append(w.hooks, fn)
	}
}

func (w *ResponseWriter) start(code int) {
	w.started = true
	w.status = code
	hooks := w.hooks
	w.hooks = nil
	for _, fn := range hooks {
		fn()
	}
	w.ResponseWriter.WriteHeader(code)
}

// WriteHeader sends the status once; later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	if !w.started {
		w.start(code)
	}
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.started {
		w.start(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

func (w *ResponseWriter) Status() int   { return w.status }
func (w *ResponseWriter) Size() int64   { return w.size }
func (w *ResponseWriter) Written() bool { return w.started }

// Unwrap lets http.ResponseController reach Flush and Hijack of the wrapped writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
