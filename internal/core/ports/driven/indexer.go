package driven

import "github.com/meridian-labs/leadscope/internal/core/domain"

// VectorIndex is a built, immutable index that can also persist itself.
type VectorIndex interface {
	VectorSearcher

	// Persist writes the index to the given path. The write is atomic:
	// an existing index file is only replaced once the new one is
	// completely written.
	Persist(path string) error
}

// IndexBuilder constructs and loads vector indexes.
type IndexBuilder interface {
	// Build creates an index from entries in one bulk operation.
	// All entry vectors must share one dimension; violation fails with
	// domain.ErrDimensionMismatch and leaves any persisted index alone.
	Build(entries []IndexEntry, metric domain.SimilarityMetric) (VectorIndex, error)

	// Load reads a persisted index, validating its header first.
	// A missing or corrupt file fails with domain.ErrIndexNotFound.
	Load(path string) (VectorIndex, error)
}
