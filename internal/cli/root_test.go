package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/microblog/internal/events"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "events"}, names)

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("skip-migrations"))
	assert.NotNil(t, serve.Flags().Lookup("addr"))
	assert.NotNil(t, serve.InheritedFlags().Lookup("log-level"))

	ev, _, err := root.Find([]string{"events"})
	require.NoError(t, err)
	assert.NotNil(t, ev.Flags().Lookup("seed"))
}

func TestSetupOverridesLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("COOKIE_SECRET", "")
	t.Setenv("SENTRY_DSN", "")

	opts := &RootOptions{LogLevel: "debug"}
	rt, err := opts.setup()
	require.NoError(t, err)
	assert.Equal(t, "debug", rt.cfg.LogLevel)
	assert.True(t, rt.log.Enabled(context.Background(), slog.LevelDebug))
	assert.NoError(t, rt.flush(context.Background()))
}

func TestSeed(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	t.Run("built-in", func(t *testing.T) {
		store := events.NewStore()
		require.NoError(t, seed(cmd, store, ""))

		_, err := store.BySlug(context.Background(), "conferencia-python")
		assert.NoError(t, err)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`events:
  - title: Hackatón
    description: Dos días de código
    date: "2025-12-01"
    time: "09:00"
    location: Laboratorio 4
    category: Tecnología
`), 0o600))

		store := events.NewStore()
		require.NoError(t, seed(cmd, store, path))

		list := store.List(context.Background())
		require.Len(t, list, 1)
		assert.Equal(t, "hackaton", list[0].Slug)
	})

	t.Run("missing file", func(t *testing.T) {
		err := seed(cmd, events.NewStore(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
