package driven

import (
	"context"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

// IndexEntry is the unit stored in the vector index: a chunk's embedding
// plus the metadata needed to present a hit without a second lookup.
// Entries are immutable after the index is built.
type IndexEntry struct {
	// ChunkID identifies the chunk.
	ChunkID string

	// DocumentID links to the parent document.
	DocumentID string

	// Content is the chunk text.
	Content string

	// Position is the chunk's ordinal position in the document.
	Position int

	// Vector is the chunk's embedding.
	Vector []float32
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Entry is the matched index entry (vector omitted).
	Entry IndexEntry

	// Similarity is the similarity score under the index's metric.
	Similarity float64
}

// VectorSearcher is the read side of a built vector index.
// A built index is immutable, so Search is safe for concurrent use.
type VectorSearcher interface {
	// Search finds the k nearest entries to the query vector.
	// Returns at most min(k, Size()) hits, sorted by non-increasing
	// similarity, with no duplicate chunk IDs. An empty index yields
	// an empty result, not an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Size returns the number of entries in the index.
	Size() int

	// Dimensions returns the embedding dimension the index was built with.
	Dimensions() int

	// Metric returns the similarity metric fixed at build time.
	Metric() domain.SimilarityMetric
}
