package domain

// RetrievedChunk is a chunk returned by similarity search, paired with
// its similarity to the query.
type RetrievedChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the similarity score. For the cosine metric this is
	// in [-1, 1]; for dot product it is unbounded.
	Similarity float64
}

// RetrievalResult is an ordered sequence of retrieved chunks.
// Invariant: similarity is non-increasing; chunks with equal similarity
// keep their index order (stable ranking).
type RetrievalResult []RetrievedChunk

// Sorted reports whether the result satisfies the ordering invariant.
func (r RetrievalResult) Sorted() bool {
	for i := 1; i < len(r); i++ {
		if r[i].Similarity > r[i-1].Similarity {
			return false
		}
	}
	return true
}

// RationaleEntry explains one chunk's contribution to a lead score.
type RationaleEntry struct {
	// ChunkID identifies the contributing chunk.
	ChunkID string `json:"chunk_id"`

	// Weight is the normalised similarity weight in [0, 1].
	// Weights across a rationale sum to 1.
	Weight float64 `json:"weight"`

	// Signal is the deterministic per-chunk signal value in [0, 1].
	Signal float64 `json:"signal"`

	// Indicators lists the lead indicator categories matched in the chunk.
	Indicators []string `json:"indicators,omitempty"`
}

// LeadScore is the bounded numeric summary of how strongly retrieved
// evidence supports a query, plus the rationale that produced it.
// It is recomputed on every query and never persisted.
type LeadScore struct {
	// Value is the aggregate score, clamped to [0, 1].
	Value float64 `json:"value"`

	// Rationale lists contributing chunks in retrieval order.
	// Empty retrieval yields a zero score with an empty rationale.
	Rationale []RationaleEntry `json:"rationale"`
}

// QueryResponse is the structured result returned to the presentation
// layer for a single query: the ranked chunks, the lead score, and
// optionally a generated prose explanation.
type QueryResponse struct {
	// Query is the original query text.
	Query string `json:"query"`

	// Results are the ranked retrieved chunks.
	Results RetrievalResult `json:"results"`

	// Score is the aggregated lead score with rationale.
	Score LeadScore `json:"score"`

	// Explanation is optional LLM-generated prose derived from the
	// rationale. It never influences the numeric score.
	Explanation string `json:"explanation,omitempty"`
}

// DocumentScore ranks a whole document by its intrinsic lead signal.
type DocumentScore struct {
	// DocumentID identifies the scored document.
	DocumentID string `json:"document_id"`

	// Title is the document title for display.
	Title string `json:"title"`

	// Value is the aggregate signal across the document's chunks, in [0, 1].
	Value float64 `json:"value"`

	// Indicators lists the distinct indicator categories found.
	Indicators []string `json:"indicators,omitempty"`
}
