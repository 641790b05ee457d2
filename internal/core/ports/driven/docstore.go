package driven

import (
	"context"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

// DocumentStore persists the ingested corpus: documents and their chunks.
// The store owns corpus storage; documents are read-only once saved and
// replaced wholesale on re-ingestion.
type DocumentStore interface {
	// SaveDocument stores or replaces a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores the chunks derived from a document.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunk retrieves a chunk by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all documents in the corpus.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteAll removes every document and chunk. Used before re-ingestion.
	DeleteAll(ctx context.Context) error

	// Close releases resources.
	Close() error
}
