package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
)

var b64 = base64.RawURLEncoding

// mac authenticates value for the cookie called name, so a signature cannot
// be replayed under another cookie.
func (m *Manager) mac(name string, value []byte) []byte {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(value)
	return h.Sum(nil)
}

// SetSigned writes value in the clear next to its HMAC-SHA256, both base64url
// encoded and joined by a dot.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	v := []byte(value)
	m.Set(w, name, b64.EncodeToString(v)+"."+b64.EncodeToString(m.mac(name, v)), maxAge)
	return nil
}

// GetSigned returns the value written by SetSigned, or ErrBadSig when the
// cookie was altered.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	encValue, encSig, _ := strings.Cut(raw, ".")
	value, errValue := b64.DecodeString(encValue)
	sig, errSig := b64.DecodeString(encSig)
	if errValue != nil || errSig != nil || !hmac.Equal(sig, m.mac(name, value)) {
		return "", ErrBadSig
	}
	return string(value), nil
}
