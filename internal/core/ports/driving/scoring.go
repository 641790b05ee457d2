package driving

import (
	"context"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

// ScoringService aggregates retrieved evidence into a lead score.
type ScoringService interface {
	// Score applies the deterministic aggregation policy to an already
	// ranked retrieval result. Pure: identical input yields an identical
	// score and rationale. An empty result scores zero with an empty
	// rationale, not an error.
	Score(result domain.RetrievalResult) domain.LeadScore

	// ScoreQuery retrieves evidence for the query and scores it,
	// returning the full structured response for presentation.
	ScoreQuery(ctx context.Context, query string, k int) (*domain.QueryResponse, error)

	// Explain renders a prose explanation of a computed score via the
	// generative capability. The score is an input, never an output:
	// generation happens strictly after the number is fixed.
	Explain(ctx context.Context, query string, score domain.LeadScore) (string, error)

	// ScoreDocuments ranks every corpus document by its intrinsic lead
	// signal, independent of any query.
	ScoreDocuments(ctx context.Context) ([]domain.DocumentScore, error)
}
