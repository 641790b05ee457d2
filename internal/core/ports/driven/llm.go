package driven

import "context"

// GenerateOptions configures a text generation request.
type GenerateOptions struct {
	// MaxTokens limits the response length. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness. Explanations use a low value,
	// but the numeric lead score never depends on generated text at all.
	Temperature float64
}

// LLMService produces free text from a prompt.
//
// This is an optional capability: it is used strictly downstream of
// scoring, to turn an already-computed rationale into prose. When nil,
// explanations are simply unavailable.
type LLMService interface {
	// Generate produces a text completion for the prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
