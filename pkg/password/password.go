// Package password hashes and verifies user passwords with bcrypt.
//
// Passwords are pre-hashed with SHA-256 before bcrypt so inputs longer than
// bcrypt's 72-byte limit are neither rejected nor silently truncated.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinCost     = bcrypt.MinCost
	DefaultCost = bcrypt.DefaultCost
)

var (
	ErrMismatch    = errors.New("password: hash does not match")
	ErrHashFailure = errors.New("password: failed to hash")
)

// Hasher hashes passwords at a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher. Costs outside bcrypt's range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(plain), h.cost)
	if err != nil {
		return "", errors.Join(ErrHashFailure, err)
	}
	return string(hash), nil
}

// Compare returns ErrMismatch when plain does not produce hash.
func (h *Hasher) Compare(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain)); err != nil {
		return errors.Join(ErrMismatch, err)
	}
	return nil
}

func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
