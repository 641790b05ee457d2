package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates bad chunking or search parameters.
	// Configuration is rejected before any work begins.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidArgument indicates an out-of-range call argument,
	// such as a non-positive result count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch indicates embedding vectors of differing
	// dimensions were offered to a single index build. The build fails;
	// any previously persisted index is left untouched.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexNotFound indicates the persisted index is missing or corrupt.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or not reachable. Retrieval cannot proceed without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generative service is not configured.
	// Prose explanations are disabled; scoring itself never needs it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUnsupportedProvider indicates an unknown AI provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)
