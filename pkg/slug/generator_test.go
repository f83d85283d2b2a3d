package slug_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/microblog/pkg/slug"
)

// takenSet is an oracle backed by a fixed set of existing slugs.
type takenSet struct {
	existing map[string]bool
	queries  []string
	mu       sync.Mutex
}

func newTakenSet(existing ...string) *takenSet {
	s := &takenSet{existing: make(map[string]bool)}
	for _, e := range existing {
		s.existing[e] = true
	}
	return s
}

func (s *takenSet) exists(_ context.Context, candidate string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, candidate)
	return s.existing[candidate], nil
}

func noneTaken(context.Context, string) (bool, error) { return false, nil }

func TestGeneratorUnique(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		existing []string
		expected string
	}{
		{
			name:     "free base candidate",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "base taken",
			input:    "Hello World",
			existing: []string{"hello-world"},
			expected: "hello-world-1",
		},
		{
			name:     "several taken",
			input:    "Hello World",
			existing: []string{"hello-world", "hello-world-1", "hello-world-2"},
			expected: "hello-world-3",
		},
		{
			name:     "gap in sequence is reused",
			input:    "Hello World",
			existing: []string{"hello-world", "hello-world-2"},
			expected: "hello-world-1",
		},
		{
			name:     "unrelated slugs ignored",
			input:    "Hello World",
			existing: []string{"hello", "world", "hello-world-1"},
			expected: "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := slug.NewGenerator()
			oracle := newTakenSet(tt.existing...)

			result, err := gen.Unique(context.Background(), tt.input, oracle.exists)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGeneratorUniqueQueryOrder(t *testing.T) {
	gen := slug.NewGenerator()
	oracle := newTakenSet("post", "post-1", "post-2")

	result, err := gen.Unique(context.Background(), "Post", oracle.exists)
	require.NoError(t, err)
	assert.Equal(t, "post-3", result)
	assert.Equal(t, []string{"post", "post-1", "post-2", "post-3"}, oracle.queries)
}

func TestGeneratorUniqueShape(t *testing.T) {
	inputs := []string{
		"Hello World",
		"  Leading and trailing whitespace  ",
		"MiXeD CaSe & Punctuation!!!",
		"Crème brûlée: a how-to",
		strings.Repeat("very long title ", 40),
	}

	gen := slug.NewGenerator()
	for _, input := range inputs {
		t.Run(input[:min(len(input), 20)], func(t *testing.T) {
			result, err := gen.Unique(context.Background(), input, noneTaken)
			require.NoError(t, err)
			assert.Regexp(t, "^[a-z0-9]+(?:-[a-z0-9]+)*$", result)
			assert.LessOrEqual(t, len(result), slug.DefaultMaxLength)

			again, err := gen.Unique(context.Background(), input, noneTaken)
			require.NoError(t, err)
			assert.Equal(t, result, again)
		})
	}
}

func TestGeneratorTruncatesBeforeSuffix(t *testing.T) {
	input := strings.Repeat("abcdefghij", 30)
	gen := slug.NewGenerator()

	base := gen.Base(input)
	require.Len(t, base, 200)

	oracle := newTakenSet(base)
	result, err := gen.Unique(context.Background(), input, oracle.exists)
	require.NoError(t, err)
	assert.Equal(t, base+"-1", result)
}

func TestGeneratorSeparatorAtLimit(t *testing.T) {
	input := strings.Repeat("x", 199) + " tail"
	gen := slug.NewGenerator()

	base := gen.Base(input)
	assert.Equal(t, strings.Repeat("x", 199), base)

	result, err := gen.Unique(context.Background(), input, newTakenSet(base).exists)
	require.NoError(t, err)
	assert.Equal(t, base+"-1", result)
}

func TestGeneratorMaxLength(t *testing.T) {
	gen := slug.NewGenerator(slug.WithMaxLength(11))

	result, err := gen.Unique(context.Background(), "Hello World Again", noneTaken)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", result)
}

func TestGeneratorShortLimitBoundsFallback(t *testing.T) {
	gen := slug.NewGenerator(slug.WithMaxLength(5))

	assert.Regexp(t, "^[a-z0-9]{5}$", gen.Base("!!!"))

	result, err := gen.Unique(context.Background(), "日本語", noneTaken)
	require.NoError(t, err)
	assert.Regexp(t, "^[a-z0-9]{5}$", result)

	blank := slug.NewGenerator(slug.WithMaxLength(3), slug.WithFallback(func() string { return "???" }))
	assert.Regexp(t, "^[a-z0-9]{3}$", blank.Base(""))
}

func TestGeneratorExhausted(t *testing.T) {
	gen := slug.NewGenerator(slug.WithMaxAttempts(5))

	var calls int
	alwaysTaken := func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	}

	result, err := gen.Unique(context.Background(), "Hello World", alwaysTaken)
	require.Error(t, err)
	assert.ErrorIs(t, err, slug.ErrExhausted)
	assert.Empty(t, result)
	assert.Equal(t, 5, calls)
}

func TestGeneratorOracleFailure(t *testing.T) {
	gen := slug.NewGenerator()
	errDown := errors.New("connection refused")

	var calls int
	failing := func(context.Context, string) (bool, error) {
		calls++
		return false, errDown
	}

	result, err := gen.Unique(context.Background(), "Hello World", failing)
	require.Error(t, err)
	assert.ErrorIs(t, err, slug.ErrOracle)
	assert.ErrorIs(t, err, errDown)
	assert.Empty(t, result)
	assert.Equal(t, 1, calls, "no retry after oracle failure")
}

func TestGeneratorFallback(t *testing.T) {
	t.Run("custom fallback", func(t *testing.T) {
		gen := slug.NewGenerator(slug.WithFallback(func() string { return "Untitled" }))

		result, err := gen.Unique(context.Background(), "!!!", noneTaken)
		require.NoError(t, err)
		assert.Equal(t, "untitled", result)
	})

	t.Run("custom fallback collides", func(t *testing.T) {
		gen := slug.NewGenerator(slug.WithFallback(func() string { return "untitled" }))
		oracle := newTakenSet("untitled")

		result, err := gen.Unique(context.Background(), "", oracle.exists)
		require.NoError(t, err)
		assert.Equal(t, "untitled-1", result)
	})

	t.Run("default random token", func(t *testing.T) {
		gen := slug.NewGenerator()

		result, err := gen.Unique(context.Background(), "日本語のタイトル", noneTaken)
		require.NoError(t, err)
		assert.Regexp(t, "^[a-z0-9]{8}$", result)
	})

	t.Run("fallback that normalizes to nothing", func(t *testing.T) {
		gen := slug.NewGenerator(slug.WithFallback(func() string { return "???" }))
		assert.Regexp(t, "^[a-z0-9]{8}$", gen.Base(""))
	})
}

func TestGeneratorSeparator(t *testing.T) {
	gen := slug.NewGenerator(slug.WithMakeOptions(slug.Separator("_")))
	oracle := newTakenSet("hello_world")

	result, err := gen.Unique(context.Background(), "Hello World", oracle.exists)
	require.NoError(t, err)
	assert.Equal(t, "hello_world_1", result)
}

func TestGeneratorContextPassedToOracle(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	gen := slug.NewGenerator()
	_, err := gen.Unique(ctx, "Hello", func(ctx context.Context, _ string) (bool, error) {
		assert.Equal(t, "marker", ctx.Value(ctxKey{}))
		return false, nil
	})
	require.NoError(t, err)
}

func TestRandomToken(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		token := slug.RandomToken()
		assert.Regexp(t, "^[a-z0-9]{8}$", token)
		seen[token] = true
	}
	assert.Greater(t, len(seen), 1)
}
