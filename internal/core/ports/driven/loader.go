package driven

import (
	"context"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

// DocumentLoader is the ingestion boundary: it produces Documents from
// an external location. The core never generates documents itself.
type DocumentLoader interface {
	// Load reads all documents under dir. Every returned document has
	// passed domain validation (ID, content, required metadata).
	Load(ctx context.Context, dir string) ([]domain.Document, error)
}
