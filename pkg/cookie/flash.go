package cookie

import (
	"encoding/json"
	"errors"
	"net/http"
)

func flashName(key string) string { return "flash_" + key }

// SetFlash stores value as JSON in an encrypted browser-session cookie. The
// cookie is named "flash_" + key.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.SetEncrypted(w, flashName(key), string(data), 0)
}

// Flash reads the flash stored under key into dest and consumes it. A flash
// that fails to decrypt is consumed as well; a missing one returns ErrNotFound
// and writes nothing.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashName(key)
	raw, err := m.GetEncrypted(r, name)
	switch {
	case err == nil, errors.Is(err, ErrDecrypt):
		m.Delete(w, name)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}
