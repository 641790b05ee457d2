package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

func TestSettingsStore(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		store, err := NewSettingsStore(t.TempDir())
		require.NoError(t, err)

		settings, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultAppSettings(), settings)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		store, err := NewSettingsStore(t.TempDir())
		require.NoError(t, err)

		want := domain.DefaultAppSettings()
		want.Embedding.Provider = domain.AIProviderOpenAI
		want.Embedding.Model = "text-embedding-3-large"
		want.Chunking.MaxLen = 900
		want.Chunking.Overlap = 100
		want.Index.Metric = domain.MetricDot
		want.Retrieval.TopK = 3
		require.NoError(t, store.Save(want))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("partial file keeps defaults for unset fields", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewSettingsStore(dir)
		require.NoError(t, err)

		partial := "[retrieval]\ntop_k = 3\n"
		require.NoError(t, os.WriteFile(store.Path(), []byte(partial), 0600))

		settings, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, 3, settings.Retrieval.TopK)
		assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
		assert.Equal(t, 1800, settings.Chunking.MaxLen)
	})

	t.Run("corrupt file fails and falls back to defaults", func(t *testing.T) {
		store, err := NewSettingsStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(store.Path(), []byte("not [valid toml"), 0600))

		settings, err := store.Load()
		require.Error(t, err)
		assert.Equal(t, domain.DefaultAppSettings(), settings)
	})

	t.Run("settings file has restricted permissions", func(t *testing.T) {
		store, err := NewSettingsStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, store.Save(domain.DefaultAppSettings()))

		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("path is inside the config directory", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewSettingsStore(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	})
}
