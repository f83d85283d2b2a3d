package slug

import "errors"

var (
	// ErrExhausted is returned when every candidate up to the attempt limit is taken.
	ErrExhausted = errors.New("slug: no free candidate within attempt limit")

	// ErrOracle wraps a failure of the uniqueness check.
	ErrOracle = errors.New("slug: uniqueness check failed")
)
