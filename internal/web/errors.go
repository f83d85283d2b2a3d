package web

import (
	"errors"
	"net/http"
)

// HTTPError is an error with a status code and a message safe to show users.
// The cause in Err is logged but never rendered.
type HTTPError struct {
	Err     error
	Message string
	Code    int
}

// NewHTTPError creates an HTTPError. An empty message falls back to the status text.
func NewHTTPError(code int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

// Wrap returns a copy of e carrying cause.
func (e *HTTPError) Wrap(cause error) *HTTPError {
	cp := *e
	cp.Err = cause
	return &cp
}

func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func ErrForbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func ErrMethodNotAllowed(message string) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message)
}

// AsHTTPError returns the first HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// StatusCode is the code of the HTTPError in err's chain, or 500.
func StatusCode(err error) int {
	if httpErr := AsHTTPError(err); httpErr != nil {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
