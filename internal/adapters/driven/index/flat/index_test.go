package flat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
)

func testEntries() []driven.IndexEntry {
	return []driven.IndexEntry{
		{ChunkID: "doc-a:0", DocumentID: "doc-a", Content: "alpha", Position: 0, Vector: []float32{1, 0, 0}},
		{ChunkID: "doc-a:1", DocumentID: "doc-a", Content: "beta", Position: 1, Vector: []float32{0, 1, 0}},
		{ChunkID: "doc-b:0", DocumentID: "doc-b", Content: "gamma", Position: 0, Vector: []float32{0, 0, 1}},
	}
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder()

	t.Run("builds index from uniform entries", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricCosine)
		require.NoError(t, err)
		assert.Equal(t, 3, idx.Size())
		assert.Equal(t, 3, idx.Dimensions())
		assert.Equal(t, domain.MetricCosine, idx.Metric())
	})

	t.Run("empty entries build an empty index", func(t *testing.T) {
		idx, err := b.Build(nil, domain.MetricCosine)
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Size())
		assert.Equal(t, 0, idx.Dimensions())
	})

	t.Run("mixed dimensions fail", func(t *testing.T) {
		entries := testEntries()
		entries[2].Vector = []float32{1, 2}

		_, err := b.Build(entries, domain.MetricCosine)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
		assert.Contains(t, err.Error(), "doc-b:0")
	})

	t.Run("duplicate chunk IDs fail", func(t *testing.T) {
		entries := testEntries()
		entries[1].ChunkID = entries[0].ChunkID

		_, err := b.Build(entries, domain.MetricCosine)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown metric fails", func(t *testing.T) {
		_, err := b.Build(testEntries(), domain.SimilarityMetric("euclidean"))
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	})

	t.Run("empty vector fails", func(t *testing.T) {
		entries := testEntries()
		entries[0].Vector = nil

		_, err := b.Build(entries, domain.MetricCosine)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestIndex_Search(t *testing.T) {
	ctx := context.Background()
	b := NewBuilder()

	t.Run("returns hits sorted by non-increasing similarity", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricCosine)
		require.NoError(t, err)

		hits, err := idx.Search(ctx, []float32{0.9, 0.4, 0.1}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)

		assert.Equal(t, "doc-a:0", hits[0].Entry.ChunkID)
		for i := 1; i < len(hits); i++ {
			assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
		}
	})

	t.Run("returns at most min(k, size) hits", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricCosine)
		require.NoError(t, err)

		hits, err := idx.Search(ctx, []float32{1, 0, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, hits, 3)

		hits, err = idx.Search(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, hits, 2)
	})

	t.Run("hits carry no duplicate chunk IDs", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricCosine)
		require.NoError(t, err)

		hits, err := idx.Search(ctx, []float32{1, 1, 1}, 3)
		require.NoError(t, err)

		seen := make(map[string]bool)
		for _, hit := range hits {
			assert.False(t, seen[hit.Entry.ChunkID], "duplicate chunk %s", hit.Entry.ChunkID)
			seen[hit.Entry.ChunkID] = true
		}
	})

	t.Run("empty index yields empty result", func(t *testing.T) {
		idx, err := b.Build(nil, domain.MetricCosine)
		require.NoError(t, err)

		hits, err := idx.Search(ctx, []float32{1, 0, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("query dimension mismatch fails", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricCosine)
		require.NoError(t, err)

		_, err = idx.Search(ctx, []float32{1, 0}, 3)
		assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	})

	t.Run("non-positive k fails", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricCosine)
		require.NoError(t, err)

		_, err = idx.Search(ctx, []float32{1, 0, 0}, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("cosine similarity is scale invariant", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricCosine)
		require.NoError(t, err)

		a, err := idx.Search(ctx, []float32{1, 0.5, 0}, 3)
		require.NoError(t, err)
		scaled, err := idx.Search(ctx, []float32{10, 5, 0}, 3)
		require.NoError(t, err)

		for i := range a {
			assert.InDelta(t, a[i].Similarity, scaled[i].Similarity, 1e-9)
		}
	})

	t.Run("dot metric scales with query magnitude", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricDot)
		require.NoError(t, err)

		hits, err := idx.Search(ctx, []float32{2, 0, 0}, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.InDelta(t, 2.0, hits[0].Similarity, 1e-9)
	})

	t.Run("zero query vector yields zero cosine similarity", func(t *testing.T) {
		idx, err := b.Build(testEntries(), domain.MetricCosine)
		require.NoError(t, err)

		hits, err := idx.Search(ctx, []float32{0, 0, 0}, 3)
		require.NoError(t, err)
		for _, hit := range hits {
			assert.Zero(t, hit.Similarity)
		}
	})

	t.Run("equal similarities keep build order", func(t *testing.T) {
		entries := []driven.IndexEntry{}
		for i := 0; i < 4; i++ {
			entries = append(entries, driven.IndexEntry{
				ChunkID:    fmt.Sprintf("doc-t:%d", i),
				DocumentID: "doc-t",
				Position:   i,
				Vector:     []float32{1, 0, 0},
			})
		}
		idx, err := b.Build(entries, domain.MetricCosine)
		require.NoError(t, err)

		hits, err := idx.Search(ctx, []float32{1, 0, 0}, 4)
		require.NoError(t, err)
		for i, hit := range hits {
			assert.Equal(t, fmt.Sprintf("doc-t:%d", i), hit.Entry.ChunkID)
		}
	})
}
