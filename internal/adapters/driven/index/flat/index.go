package flat

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
)

// Ensure the adapter satisfies its ports.
var (
	_ driven.IndexBuilder = (*Builder)(nil)
	_ driven.VectorIndex  = (*Index)(nil)
)

// Builder constructs and loads flat indexes.
type Builder struct{}

// NewBuilder creates a flat index builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Index is an immutable flat vector index. All mutation happens in Build;
// after that the index is read-only and safe for concurrent searches.
type Index struct {
	entries []driven.IndexEntry
	dims    int
	metric  domain.SimilarityMetric
	builtAt time.Time

	// Cosine similarity divides by vector norms, so they are computed
	// once at build time instead of on every search.
	norms []float64
}

// Build creates an index from entries. All vectors must share one
// dimension and chunk IDs must be unique.
func (b *Builder) Build(entries []driven.IndexEntry, metric domain.SimilarityMetric) (driven.VectorIndex, error) {
	if !metric.IsValid() {
		return nil, fmt.Errorf("%w: unknown similarity metric %q", domain.ErrInvalidConfig, metric)
	}

	idx := &Index{
		entries: make([]driven.IndexEntry, len(entries)),
		metric:  metric,
		builtAt: time.Now().UTC(),
		norms:   make([]float64, len(entries)),
	}

	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		if entry.ChunkID == "" {
			return nil, fmt.Errorf("%w: entry %d has no chunk ID", domain.ErrInvalidInput, i)
		}
		if seen[entry.ChunkID] {
			return nil, fmt.Errorf("%w: duplicate chunk ID %s", domain.ErrInvalidInput, entry.ChunkID)
		}
		seen[entry.ChunkID] = true

		if len(entry.Vector) == 0 {
			return nil, fmt.Errorf("%w: chunk %s has an empty vector", domain.ErrInvalidInput, entry.ChunkID)
		}
		if idx.dims == 0 {
			idx.dims = len(entry.Vector)
		}
		if len(entry.Vector) != idx.dims {
			return nil, fmt.Errorf("%w: chunk %s has %d dimensions, index has %d",
				domain.ErrDimensionMismatch, entry.ChunkID, len(entry.Vector), idx.dims)
		}

		idx.entries[i] = entry
		idx.norms[i] = norm(entry.Vector)
	}

	return idx, nil
}

// Search scans all entries and returns the top-k by similarity.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}
	if len(idx.entries) == 0 {
		return []driven.VectorHit{}, nil
	}
	if len(query) != idx.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(query), idx.dims)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	queryNorm := norm(query)

	hits := make([]driven.VectorHit, len(idx.entries))
	for i, entry := range idx.entries {
		sim := dot(query, entry.Vector)
		if idx.metric == domain.MetricCosine {
			if queryNorm == 0 || idx.norms[i] == 0 {
				sim = 0
			} else {
				sim /= queryNorm * idx.norms[i]
			}
		}
		hits[i] = driven.VectorHit{
			Entry: driven.IndexEntry{
				ChunkID:    entry.ChunkID,
				DocumentID: entry.DocumentID,
				Content:    entry.Content,
				Position:   entry.Position,
			},
			Similarity: sim,
		}
	}

	// Stable sort keeps build order for equal similarities, which makes
	// ties reproducible across runs.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Size returns the number of entries.
func (idx *Index) Size() int {
	return len(idx.entries)
}

// Dimensions returns the embedding dimension the index was built with.
func (idx *Index) Dimensions() int {
	return idx.dims
}

// Metric returns the similarity metric fixed at build time.
func (idx *Index) Metric() domain.SimilarityMetric {
	return idx.metric
}

func dot(a []float32, b []float32) float64 {
	sum := 0.0
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	sum := 0.0
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
