package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/microblog/pkg/password"
)

func TestHasher(t *testing.T) {
	t.Parallel()
	h := password.NewHasher(password.MinCost)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		hash, err := h.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", hash)
		assert.NoError(t, h.Compare(hash, "secret123"))
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		hash, err := h.Hash("secret123")
		require.NoError(t, err)
		assert.ErrorIs(t, h.Compare(hash, "secret124"), password.ErrMismatch)
	})

	t.Run("long passwords keep every byte", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("a", 100)
		hash, err := h.Hash(long)
		require.NoError(t, err)
		assert.NoError(t, h.Compare(hash, long))
		assert.ErrorIs(t, h.Compare(hash, long[:80]), password.ErrMismatch)
	})

	t.Run("garbage hash", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, h.Compare("not-a-hash", "x"), password.ErrMismatch)
	})

	t.Run("salted", func(t *testing.T) {
		t.Parallel()
		a, err := h.Hash("same")
		require.NoError(t, err)
		b, err := h.Hash("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
