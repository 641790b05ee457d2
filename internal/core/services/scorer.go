package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
	"github.com/meridian-labs/leadscope/internal/core/ports/driving"
	"github.com/meridian-labs/leadscope/internal/logger"
)

// Ensure Scorer implements the interface.
var _ driving.ScoringService = (*Scorer)(nil)

// SignalFunc derives a per-chunk signal value in [0, 1] plus the matched
// indicator names. Must be deterministic.
type SignalFunc func(text string) (float64, []string)

// Scorer aggregates retrieved evidence into a bounded lead score.
//
// Policy: similarities are clamped at zero, chunks with no positive
// similarity are discarded as unusable, and the remaining similarities
// are normalised into weights summing to 1. The score is the weighted
// sum of per-chunk signals, clamped to [0, 1]. The whole computation is
// pure; the optional generative step only ever renders prose afterwards.
type Scorer struct {
	retriever driving.RetrievalService
	docStore  driven.DocumentStore
	llm       driven.LLMService
	signal    SignalFunc
}

// NewScorer creates a scorer. The LLM service may be nil; Explain then
// fails with domain.ErrLLMUnavailable while scoring works normally.
func NewScorer(
	retriever driving.RetrievalService,
	docStore driven.DocumentStore,
	llm driven.LLMService,
) *Scorer {
	return &Scorer{
		retriever: retriever,
		docStore:  docStore,
		llm:       llm,
		signal:    NewSignalExtractor().Extract,
	}
}

// WithSignalFunc overrides the signal rule. Used by tests and callers
// experimenting with alternative indicator sets.
func (s *Scorer) WithSignalFunc(fn SignalFunc) *Scorer {
	s.signal = fn
	return s
}

// Score applies the aggregation policy to a ranked retrieval result.
func (s *Scorer) Score(result domain.RetrievalResult) domain.LeadScore {
	logger.Section("Lead Scoring")
	logger.Debug("Scoring %d retrieved chunks", len(result))

	// Keep only chunks with positive similarity. Retrieval order is
	// preserved, which also settles ties deterministically.
	usable := make([]domain.RetrievedChunk, 0, len(result))
	total := 0.0
	for _, rc := range result {
		if rc.Similarity > 0 {
			usable = append(usable, rc)
			total += rc.Similarity
		}
	}

	if len(usable) == 0 {
		logger.Debug("No usable chunks, score is zero")
		return domain.LeadScore{Value: 0, Rationale: []domain.RationaleEntry{}}
	}

	rationale := make([]domain.RationaleEntry, len(usable))
	value := 0.0
	for i, rc := range usable {
		weight := rc.Similarity / total
		signal, indicators := s.signal(rc.Chunk.Content)
		value += weight * signal
		rationale[i] = domain.RationaleEntry{
			ChunkID:    rc.Chunk.ID,
			Weight:     weight,
			Signal:     signal,
			Indicators: indicators,
		}
		logger.Debug("Chunk %s: weight=%.4f signal=%.4f", rc.Chunk.ID, weight, signal)
	}

	logger.Info("Lead score: %.4f from %d chunks", clamp01(value), len(usable))
	return domain.LeadScore{Value: clamp01(value), Rationale: rationale}
}

// ScoreQuery retrieves evidence for the query and scores it.
func (s *Scorer) ScoreQuery(ctx context.Context, query string, k int) (*domain.QueryResponse, error) {
	result, err := s.retriever.Retrieve(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	return &domain.QueryResponse{
		Query:   query,
		Results: result,
		Score:   s.Score(result),
	}, nil
}

// Explain renders a prose explanation of an already computed score.
// The numeric result is fixed before this runs and is never revised.
func (s *Scorer) Explain(ctx context.Context, query string, score domain.LeadScore) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	prompt := buildExplainPrompt(query, score)
	logger.Debug("Explanation prompt: %d chars", len(prompt))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   512,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("%w: generate explanation: %w", domain.ErrLLMUnavailable, err)
	}
	return strings.TrimSpace(text), nil
}

// ScoreDocuments ranks every corpus document by its intrinsic signal:
// the mean signal across the document's chunks. No query is involved.
func (s *Scorer) ScoreDocuments(ctx context.Context) ([]domain.DocumentScore, error) {
	if s.docStore == nil {
		return nil, fmt.Errorf("%w: no document store configured", domain.ErrInvalidConfig)
	}

	docs, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	scores := make([]domain.DocumentScore, 0, len(docs))
	for i := range docs {
		chunks, err := s.docStore.GetChunks(ctx, docs[i].ID)
		if err != nil {
			return nil, fmt.Errorf("get chunks for %s: %w", docs[i].ID, err)
		}
		if len(chunks) == 0 {
			continue
		}

		sum := 0.0
		seen := make(map[string]bool)
		var indicators []string
		for _, ch := range chunks {
			signal, matched := s.signal(ch.Content)
			sum += signal
			for _, ind := range matched {
				if !seen[ind] {
					seen[ind] = true
					indicators = append(indicators, ind)
				}
			}
		}

		scores = append(scores, domain.DocumentScore{
			DocumentID: docs[i].ID,
			Title:      docs[i].Title,
			Value:      sum / float64(len(chunks)),
			Indicators: indicators,
		})
	}

	// Highest signal first; equal scores keep document ID order so the
	// ranking is reproducible.
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Value != scores[j].Value {
			return scores[i].Value > scores[j].Value
		}
		return scores[i].DocumentID < scores[j].DocumentID
	})

	return scores, nil
}

// buildExplainPrompt turns a rationale into a generation prompt.
func buildExplainPrompt(query string, score domain.LeadScore) string {
	var b strings.Builder
	b.WriteString("You are a financial analyst. Explain in plain prose why the ")
	fmt.Fprintf(&b, "query %q received a lead score of %.2f (scale 0 to 1).\n\n", query, score.Value)
	b.WriteString("The score was computed deterministically from these contributions:\n")
	for _, entry := range score.Rationale {
		fmt.Fprintf(&b, "- chunk %s: weight %.3f, signal %.3f", entry.ChunkID, entry.Weight, entry.Signal)
		if len(entry.Indicators) > 0 {
			fmt.Fprintf(&b, ", indicators: %s", strings.Join(entry.Indicators, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nDo not change or re-estimate the score; explain it.")
	return b.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
