package cookie

import (
	"errors"
	"net/http"
)

// MinSecretLength is the shortest secret WithSecret accepts.
const MinSecretLength = 32

// Manager writes cookies from one attribute template. Signed, encrypted and
// flash cookies need a secret; plain ones do not.
type Manager struct {
	template http.Cookie
	secret   []byte
}

// Option configures a Manager.
type Option func(*Manager)

// New returns a Manager issuing Path=/, HttpOnly, SameSite=Lax cookies by default.
func New(opts ...Option) *Manager {
	m := &Manager{template: http.Cookie{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithSecret enables signing and encryption. Secrets shorter than
// MinSecretLength are ignored and the manager stays without one.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) >= MinSecretLength {
			m.secret = []byte(secret)
		}
	}
}

func WithDomain(domain string) Option {
	return func(m *Manager) { m.template.Domain = domain }
}

func WithPath(path string) Option {
	return func(m *Manager) { m.template.Path = path }
}

// WithSecure marks cookies HTTPS only. Production deployments should set it.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.template.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.template.HttpOnly = httpOnly }
}

func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.template.SameSite = ss }
}

// HasSecret reports whether signed and encrypted cookies are available.
func (m *Manager) HasSecret() bool {
	return m.secret != nil
}

// Get returns the raw value of a cookie, or ErrNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie. maxAge 0 makes it a browser-session cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	c := m.template
	c.Name, c.Value, c.MaxAge = name, value, maxAge
	http.SetCookie(w, &c)
}

// Delete expires the cookie with the same attributes it was written with.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	m.Set(w, name, "", -1)
}
