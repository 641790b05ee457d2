package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API (or a compatible endpoint).
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// SimilarityMetric identifies the similarity function an index was built
// with. The metric is fixed at build time and recorded in the persisted
// header so mismatched queries are detectable.
type SimilarityMetric string

// Supported similarity metrics.
const (
	// MetricCosine is cosine similarity, recommended for normalised
	// text embeddings.
	MetricCosine SimilarityMetric = "cosine"

	// MetricDot is the raw dot product.
	MetricDot SimilarityMetric = "dot"
)

// IsValid returns true if the metric is recognised.
func (m SimilarityMetric) IsValid() bool {
	switch m {
	case MetricCosine, MetricDot:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SimilarityMetric) String() string {
	return string(m)
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint (mainly for Ollama or compatible APIs).
	BaseURL string `toml:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	// The key itself is never written to the settings file.
	APIKeyEnv string `toml:"api_key_env,omitempty"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.Provider.IsValid() && e.Model != ""
}

// LLMSettings holds generative provider configuration.
// The LLM is optional: it only renders prose explanations after scoring.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider `toml:"provider"`

	// Model is the chat model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint.
	BaseURL string `toml:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env,omitempty"`
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid() && l.Model != ""
}

// ChunkingSettings configures how documents are split.
type ChunkingSettings struct {
	// MaxLen is the maximum chunk length in characters. Must be > 0.
	MaxLen int `toml:"max_len"`

	// Overlap is the number of characters shared between consecutive
	// chunks. Must satisfy 0 <= overlap < max_len.
	Overlap int `toml:"overlap"`
}

// IndexSettings configures the vector index.
type IndexSettings struct {
	// Metric is the similarity metric fixed at build time.
	Metric SimilarityMetric `toml:"metric"`

	// Path is the location of the persisted index file.
	Path string `toml:"path"`
}

// RetrievalSettings configures the retrieval step.
type RetrievalSettings struct {
	// TopK is the default number of chunks retrieved per query.
	TopK int `toml:"top_k"`
}

// BuildSettings configures the index build pipeline.
type BuildSettings struct {
	// Workers is the number of parallel embedding workers.
	Workers int `toml:"workers"`

	// EmbedRateLimit caps embedding calls per second. Zero disables
	// rate limiting.
	EmbedRateLimit float64 `toml:"embed_rate_limit"`
}

// AppSettings is the root application configuration.
type AppSettings struct {
	Embedding EmbeddingSettings `toml:"embedding"`
	LLM       LLMSettings       `toml:"llm"`
	Chunking  ChunkingSettings  `toml:"chunking"`
	Index     IndexSettings     `toml:"index"`
	Retrieval RetrievalSettings `toml:"retrieval"`
	Build     BuildSettings     `toml:"build"`
}

// DefaultAppSettings returns settings with sensible defaults.
// Chunk sizing follows the corpus this system was designed for:
// medium-length financial documents.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:  AIProviderOllama,
			Model:     "nomic-embed-text",
			BaseURL:   "http://localhost:11434",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		LLM: LLMSettings{
			Provider:  AIProviderOpenAI,
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Chunking: ChunkingSettings{
			MaxLen:  1800,
			Overlap: 200,
		},
		Index: IndexSettings{
			Metric: MetricCosine,
		},
		Retrieval: RetrievalSettings{
			TopK: 5,
		},
		Build: BuildSettings{
			Workers:        8,
			EmbedRateLimit: 10,
		},
	}
}

// AllEmbeddingProviders returns the providers usable for embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI}
}

// AllLLMProviders returns the providers usable for the generative step.
func AllLLMProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI}
}
