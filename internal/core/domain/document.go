package domain

import (
	"fmt"
	"time"
)

// Document represents a single corpus document.
// Documents are immutable once ingested; re-ingesting a corpus replaces
// them wholesale rather than mutating individual records.
type Document struct {
	// ID is the unique identifier for the document.
	// Assigned at the ingestion boundary if the source did not provide one.
	ID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full raw text of the document.
	Content string

	// Metadata holds the source metadata captured at ingestion.
	Metadata SourceMetadata

	// IngestedAt is when the document entered the corpus.
	IngestedAt time.Time
}

// SourceMetadata is the typed metadata attached to a document at ingestion.
// Required fields are validated up front so bad records are rejected at the
// ingestion boundary instead of failing deep inside scoring.
type SourceMetadata struct {
	// Source identifies where the document came from (required).
	Source string

	// ContentType is the media type of the raw content (required).
	ContentType string

	// SizeBytes is the raw content size.
	SizeBytes int64

	// ModifiedAt is the source-reported modification time, if known.
	ModifiedAt time.Time
}

// Validate checks that required metadata fields are present.
func (m SourceMetadata) Validate() error {
	if m.Source == "" {
		return fmt.Errorf("%w: metadata source is required", ErrInvalidInput)
	}
	if m.ContentType == "" {
		return fmt.Errorf("%w: metadata content type is required", ErrInvalidInput)
	}
	return nil
}

// Validate checks that a document is well formed for ingestion.
func (d Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	if d.Content == "" {
		return fmt.Errorf("%w: document %s has no content", ErrInvalidInput, d.ID)
	}
	return d.Metadata.Validate()
}

// Chunk is the atomic retrieval unit: a bounded-length slice of a document.
// Chunks are derived deterministically from their document; the ID is
// always "<documentID>:<position>" so identical input produces identical
// chunks.
type Chunk struct {
	// ID is the deterministic chunk identifier.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// TokenCount is the approximate token count of the content.
	TokenCount int
}

// ChunkID builds the deterministic chunk identifier for a document position.
func ChunkID(documentID string, position int) string {
	return fmt.Sprintf("%s:%d", documentID, position)
}
