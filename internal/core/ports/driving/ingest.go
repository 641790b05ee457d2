package driving

import "context"

// IngestStats summarises an ingest or rebuild run.
type IngestStats struct {
	// Documents is the number of documents ingested.
	Documents int

	// Chunks is the number of chunks produced.
	Chunks int

	// Dimensions is the embedding dimension of the built index.
	Dimensions int
}

// IngestService builds the corpus and the vector index.
type IngestService interface {
	// Ingest loads documents from the given directory, persists the
	// corpus, builds a fresh index, persists it, and swaps it in for
	// queries. The previous index stays live until the swap.
	Ingest(ctx context.Context, dir string) (*IngestStats, error)

	// Rebuild re-chunks and re-embeds the stored corpus into a new
	// index using copy-then-swap semantics.
	Rebuild(ctx context.Context) (*IngestStats, error)
}
