package handlers

import (
	"net/url"
	"strings"
)

// isSafeRedirect reports whether target stays on host. Relative paths are
// accepted, absolute URLs only with an http(s) scheme and the same host.
func isSafeRedirect(target, host string) bool {
	if target == "" || strings.ContainsAny(target, "\\\r\n\t") {
		return false
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}

	switch u.Scheme {
	case "":
		if u.Host == "" {
			// Browsers treat "///host" like "//host".
			return strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(target, "//")
		}
	case "http", "https":
	default:
		return false
	}
	return u.Host != "" && strings.EqualFold(u.Host, host)
}

// redirectTarget returns next when it is safe and fallback otherwise.
func redirectTarget(next, host, fallback string) string {
	if isSafeRedirect(next, host) {
		return next
	}
	return fallback
}
