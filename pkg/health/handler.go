package health

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"
)

// LivenessHandler reports that the process is up. It never runs checks.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks on every request and answers 503 when any of them fails.
// Plain text bodies name the failing checks; pass ?format=json or Accept: application/json
// for the full report.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)

		code := http.StatusOK
		if resp.Status != StatusHealthy {
			code = http.StatusServiceUnavailable
		}
		respond(w, r, code, resp)
	}
}

func respond(w http.ResponseWriter, r *http.Request, code int, resp *Response) {
	w.Header().Set("Cache-Control", "no-store")

	if acceptsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if r.Method != http.MethodHead {
			_ = json.NewEncoder(w).Encode(resp)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_, _ = w.Write([]byte(plainBody(resp)))
	}
}

func plainBody(resp *Response) string {
	if resp.Status == StatusHealthy {
		return "OK"
	}

	failed := make([]string, 0, len(resp.Checks))
	for name, c := range resp.Checks {
		if c.Status != StatusHealthy {
			failed = append(failed, name)
		}
	}
	if len(failed) == 0 {
		return "Service Unavailable"
	}
	slices.Sort(failed)
	return "Service Unavailable: " + strings.Join(failed, ", ")
}

func acceptsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
