package services

import (
	"fmt"
	"strings"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

// Chunker splits document content into bounded-size overlapping chunks.
// Lengths are measured in runes, not bytes, so a chunk boundary can never
// split a multi-byte character. Chunking is deterministic: the same
// document and configuration always produce identical chunks with
// identical IDs.
type Chunker struct {
	maxLen  int
	overlap int
}

// NewChunker creates a chunker with the given limits.
// Returns domain.ErrInvalidConfig if maxLen <= 0 or overlap is outside
// [0, maxLen). Validation happens here, before any document is touched.
func NewChunker(maxLen, overlap int) (*Chunker, error) {
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: max length must be positive, got %d",
			domain.ErrInvalidConfig, maxLen)
	}
	if overlap < 0 || overlap >= maxLen {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)",
			domain.ErrInvalidConfig, overlap, maxLen)
	}
	return &Chunker{maxLen: maxLen, overlap: overlap}, nil
}

// MaxLen returns the configured maximum chunk length.
func (c *Chunker) MaxLen() int { return c.maxLen }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits a document into an ordered sequence of chunks.
// A document no longer than maxLen yields exactly one chunk equal to its
// content. Concatenating chunk contents minus the overlap reconstructs
// the document. Empty content yields no chunks.
func (c *Chunker) Chunk(doc *domain.Document) []domain.Chunk {
	if doc.Content == "" {
		return nil
	}

	content := []rune(doc.Content)
	contentLen := len(content)
	step := c.maxLen - c.overlap

	chunks := make([]domain.Chunk, 0, contentLen/step+1)
	position := 0

	for start := 0; start < contentLen; start += step {
		end := start + c.maxLen
		if end > contentLen {
			end = contentLen
		}

		text := string(content[start:end])
		chunks = append(chunks, domain.Chunk{
			ID:         domain.ChunkID(doc.ID, position),
			DocumentID: doc.ID,
			Content:    text,
			Position:   position,
			TokenCount: approxTokens(text),
		})
		position++

		if end == contentLen {
			break
		}
	}

	return chunks
}

// approxTokens estimates the token count as the whitespace word count.
func approxTokens(text string) int {
	return len(strings.Fields(text))
}
