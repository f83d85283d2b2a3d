package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
)

// newAEAD keys AES-256-GCM with the SHA-256 digest of secret.
func newAEAD(secret []byte) (cipher.AEAD, error) {
	key := sha256.Sum256(secret)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// SetEncrypted seals value with AES-GCM under a fresh nonce.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}
	aead, err := newAEAD(m.secret)
	if err != nil {
		return err
	}

	sealed := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(sealed); err != nil {
		return err
	}
	sealed = aead.Seal(sealed, sealed, []byte(value), []byte(name))

	m.Set(w, name, base64.RawURLEncoding.EncodeToString(sealed), maxAge)
	return nil
}

// GetEncrypted opens a value written by SetEncrypted. The cookie name is
// authenticated data, so a value moved to another cookie fails with ErrDecrypt
// like any tampered one.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	plain, err := m.open(name, raw)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

func (m *Manager) open(name, raw string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	aead, err := newAEAD(m.secret)
	if err != nil {
		return nil, err
	}

	n := aead.NonceSize()
	if len(data) < n+aead.Overhead() {
		return nil, errShortCiphertext
	}
	return aead.Open(nil, data[:n], data[n:], []byte(name))
}
