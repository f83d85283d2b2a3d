package slug

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"slices"
	"strconv"
)

const (
	// DefaultMaxLength is the rune limit applied to the base candidate before suffixing.
	DefaultMaxLength = 200

	// DefaultMaxAttempts bounds the number of candidates checked by Unique.
	DefaultMaxAttempts = 1000

	fallbackLength   = 8
	fallbackAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Oracle reports whether a record with the candidate slug already exists.
type Oracle func(ctx context.Context, candidate string) (bool, error)

// Generator derives unique slugs by probing an Oracle with numbered candidates.
// It is safe for concurrent use and never persists anything itself.
type Generator struct {
	fallback    func() string
	makeOpts    []Option
	maxLength   int
	maxAttempts int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMaxLength sets the rune limit of the base candidate. Defaults to 200.
func WithMaxLength(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxLength = n
		}
	}
}

// WithMaxAttempts sets how many candidates Unique checks before giving up
// with ErrExhausted. Defaults to 1000.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithFallback sets the token source used when the text normalizes to nothing
// (e.g. "!!!" or a title written entirely in a non-Latin script).
// The token itself goes through normalization.
func WithFallback(fn func() string) GeneratorOption {
	return func(g *Generator) {
		if fn != nil {
			g.fallback = fn
		}
	}
}

// WithMakeOptions passes normalization options through to Make.
// MaxLength is always overridden by the generator's own limit.
func WithMakeOptions(opts ...Option) GeneratorOption {
	return func(g *Generator) {
		g.makeOpts = append(g.makeOpts, opts...)
	}
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		fallback:    RandomToken,
		maxLength:   DefaultMaxLength,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Base returns the normalized, length-bounded candidate for text.
// It is deterministic unless the fallback token kicks in.
func (g *Generator) Base(text string) string {
	opts := append(slices.Clone(g.makeOpts), MaxLength(g.maxLength))
	if base := Make(text, opts...); base != "" {
		return base
	}
	if base := Make(g.fallback(), opts...); base != "" {
		return base
	}
	return truncate(RandomToken(), g.maxLength, "")
}

// Unique returns the first candidate the oracle reports as unused:
// the base itself, then base-1, base-2 and so on.
//
// The answer holds only at query time. Concurrent writers can still race
// to the same slug, so callers must rely on the storage unique constraint
// and regenerate on conflict.
func (g *Generator) Unique(ctx context.Context, text string, exists Oracle) (string, error) {
	base := g.Base(text)
	sep := newOptions(g.makeOpts...).separator
	if sep == "" {
		sep = DefaultSeparator
	}

	candidate := base
	for attempt := range g.maxAttempts {
		if attempt > 0 {
			candidate = base + sep + strconv.Itoa(attempt)
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", errors.Join(ErrOracle, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q after %d candidates", ErrExhausted, base, g.maxAttempts)
}

// RandomToken returns 8 random characters from [a-z0-9].
func RandomToken() string {
	b := make([]byte, fallbackLength)
	// crypto/rand.Read never returns an error since Go 1.24.
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = fallbackAlphabet[int(b[i])%len(fallbackAlphabet)]
	}
	return string(b)
}
