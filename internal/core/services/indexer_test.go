package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

func ingestTestDocs(n int) []domain.Document {
	docs := make([]domain.Document, n)
	for i := range docs {
		docs[i] = domain.Document{
			ID:      fmt.Sprintf("doc-%d", i),
			Content: strings.Repeat("finance text ", 10),
			Metadata: domain.SourceMetadata{
				Source:      "test",
				ContentType: "text/plain",
			},
		}
	}
	return docs
}

func newTestIndexer(t *testing.T, cfg IndexerConfig) *Indexer {
	t.Helper()
	if cfg.Chunker == nil {
		chunker, err := NewChunker(50, 10)
		require.NoError(t, err)
		cfg.Chunker = chunker
	}
	if cfg.DocStore == nil {
		cfg.DocStore = newMockDocStore()
	}
	if cfg.Embedder == nil {
		cfg.Embedder = &mockEmbedder{}
	}
	if cfg.Builder == nil {
		cfg.Builder = &mockBuilder{}
	}
	if cfg.Manager == nil {
		cfg.Manager = NewIndexManager(nil)
	}
	return NewIndexer(cfg)
}

func TestIndexer_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("loads, persists corpus, builds and swaps", func(t *testing.T) {
		store := newMockDocStore()
		builder := &mockBuilder{index: &mockIndex{dims: 3}}
		manager := NewIndexManager(nil)
		ix := newTestIndexer(t, IndexerConfig{
			Loader:   &mockLoader{docs: ingestTestDocs(2)},
			DocStore: store,
			Builder:  builder,
			Manager:  manager,
		})

		stats, err := ix.Ingest(ctx, "/corpus")
		require.NoError(t, err)

		assert.Equal(t, 2, stats.Documents)
		assert.Positive(t, stats.Chunks)
		assert.Equal(t, 3, stats.Dimensions)

		docs, err := store.ListDocuments(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, 2)

		assert.Len(t, builder.built, stats.Chunks)
		assert.Same(t, builder.index, manager.Current())
	})

	t.Run("entries keep chunk order", func(t *testing.T) {
		builder := &mockBuilder{}
		ix := newTestIndexer(t, IndexerConfig{
			Loader:  &mockLoader{docs: ingestTestDocs(1)},
			Builder: builder,
			Workers: 4,
		})

		_, err := ix.Ingest(ctx, "/corpus")
		require.NoError(t, err)

		for i, entry := range builder.built {
			assert.Equal(t, domain.ChunkID("doc-0", i), entry.ChunkID)
			assert.Equal(t, i, entry.Position)
		}
	})

	t.Run("persists the index when a path is set", func(t *testing.T) {
		index := &mockIndex{}
		ix := newTestIndexer(t, IndexerConfig{
			Loader:    &mockLoader{docs: ingestTestDocs(1)},
			Builder:   &mockBuilder{index: index},
			IndexPath: "/tmp/index.db",
		})

		_, err := ix.Ingest(ctx, "/corpus")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/index.db", index.persistedTo)
	})

	t.Run("empty corpus fails", func(t *testing.T) {
		ix := newTestIndexer(t, IndexerConfig{Loader: &mockLoader{}})

		_, err := ix.Ingest(ctx, "/corpus")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("loader failure is surfaced", func(t *testing.T) {
		ix := newTestIndexer(t, IndexerConfig{
			Loader: &mockLoader{err: errors.New("permission denied")},
		})

		_, err := ix.Ingest(ctx, "/corpus")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("embedding failure names the chunk and keeps the old index", func(t *testing.T) {
		previous := &mockIndex{}
		manager := NewIndexManager(previous)
		embedder := &mockEmbedder{
			embedFn: func(string) ([]float32, error) {
				return nil, errors.New("model not loaded")
			},
		}
		ix := newTestIndexer(t, IndexerConfig{
			Loader:   &mockLoader{docs: ingestTestDocs(1)},
			Embedder: embedder,
			Manager:  manager,
		})

		_, err := ix.Ingest(ctx, "/corpus")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
		assert.Contains(t, err.Error(), "doc-0:")

		// The live index must survive a failed build.
		assert.Same(t, previous, manager.Current())
	})

	t.Run("build failure keeps the old index", func(t *testing.T) {
		previous := &mockIndex{}
		manager := NewIndexManager(previous)
		ix := newTestIndexer(t, IndexerConfig{
			Loader:  &mockLoader{docs: ingestTestDocs(1)},
			Builder: &mockBuilder{buildErr: domain.ErrDimensionMismatch},
			Manager: manager,
		})

		_, err := ix.Ingest(ctx, "/corpus")
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
		assert.Same(t, previous, manager.Current())
	})

	t.Run("persist failure keeps the old index", func(t *testing.T) {
		previous := &mockIndex{}
		manager := NewIndexManager(previous)
		ix := newTestIndexer(t, IndexerConfig{
			Loader:    &mockLoader{docs: ingestTestDocs(1)},
			Builder:   &mockBuilder{index: &mockIndex{persistErr: errors.New("disk full")}},
			Manager:   manager,
			IndexPath: "/tmp/index.db",
		})

		_, err := ix.Ingest(ctx, "/corpus")
		require.Error(t, err)
		assert.Same(t, previous, manager.Current())
	})
}

func TestIndexer_Rebuild(t *testing.T) {
	ctx := context.Background()

	t.Run("rebuilds from the stored corpus", func(t *testing.T) {
		store := newMockDocStore()
		for _, doc := range ingestTestDocs(2) {
			require.NoError(t, store.SaveDocument(ctx, &doc))
		}

		builder := &mockBuilder{index: &mockIndex{dims: 3}}
		manager := NewIndexManager(nil)
		ix := newTestIndexer(t, IndexerConfig{
			DocStore: store,
			Builder:  builder,
			Manager:  manager,
		})

		stats, err := ix.Rebuild(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Documents)
		assert.Same(t, builder.index, manager.Current())
	})

	t.Run("empty stored corpus fails", func(t *testing.T) {
		ix := newTestIndexer(t, IndexerConfig{DocStore: newMockDocStore()})

		_, err := ix.Rebuild(ctx)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
