package driving

import (
	"context"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

// RetrievalService turns a query into a ranked set of candidate chunks.
type RetrievalService interface {
	// Retrieve embeds the query and searches the current index.
	// k must be > 0 (domain.ErrInvalidArgument otherwise). The result
	// is sorted by non-increasing similarity. Read-only: retrieval
	// never mutates the index.
	Retrieve(ctx context.Context, query string, k int) (domain.RetrievalResult, error)
}
