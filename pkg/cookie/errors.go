package cookie

import "errors"

var (
	ErrNotFound = errors.New("cookie: not found")
	ErrNoSecret = errors.New("cookie: secret required")
	ErrBadSig   = errors.New("cookie: invalid signature")
	ErrDecrypt  = errors.New("cookie: decryption failed")

	errShortCiphertext = errors.New("cookie: ciphertext too short")
)
