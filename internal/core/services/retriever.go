package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
	"github.com/meridian-labs/leadscope/internal/core/ports/driving"
	"github.com/meridian-labs/leadscope/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.RetrievalService = (*Retriever)(nil)

// Retriever embeds queries and searches the live index.
// It is read-only against the index and safe for concurrent use.
type Retriever struct {
	manager  *IndexManager
	embedder driven.EmbeddingService
}

// NewRetriever creates a retriever over the managed index.
func NewRetriever(manager *IndexManager, embedder driven.EmbeddingService) *Retriever {
	return &Retriever{manager: manager, embedder: embedder}
}

// Retrieve embeds the query and returns the top-k chunks by similarity.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (domain.RetrievalResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q, k=%d", query, k)

	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidArgument, k)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return domain.RetrievalResult{}, nil
	}

	index := r.manager.Current()
	if index == nil {
		return nil, fmt.Errorf("%w: no index loaded; run ingest first", domain.ErrIndexNotFound)
	}

	if r.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		// Capability failures are surfaced to the caller, not retried here.
		return nil, fmt.Errorf("%w: embed query: %w", domain.ErrEmbeddingUnavailable, err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	hits, err := index.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}
	logger.Debug("Index search: %d hits (index size %d)", len(hits), index.Size())

	result := make(domain.RetrievalResult, len(hits))
	for i, hit := range hits {
		result[i] = domain.RetrievedChunk{
			Chunk: domain.Chunk{
				ID:         hit.Entry.ChunkID,
				DocumentID: hit.Entry.DocumentID,
				Content:    hit.Entry.Content,
				Position:   hit.Entry.Position,
			},
			Similarity: hit.Similarity,
		}
	}

	return result, nil
}
