package services

// Hand-written mocks for the driven and driving ports used across the
// service tests in this package.

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
	"github.com/meridian-labs/leadscope/internal/core/ports/driving"
)

// mockEmbedder implements driven.EmbeddingService.
type mockEmbedder struct {
	mu         sync.Mutex
	embedFn    func(text string) ([]float32, error)
	dimensions int
	calls      int
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.embedFn != nil {
		return m.embedFn(text)
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int {
	if m.dimensions > 0 {
		return m.dimensions
	}
	return 3
}

func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockIndex implements driven.VectorIndex.
type mockIndex struct {
	hits        []driven.VectorHit
	searchErr   error
	persistErr  error
	persistedTo string
	dims        int
}

var _ driven.VectorIndex = (*mockIndex)(nil)

func (m *mockIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		k = len(m.hits)
	}
	return m.hits[:k], nil
}

func (m *mockIndex) Size() int { return len(m.hits) }

func (m *mockIndex) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 3
}

func (m *mockIndex) Metric() domain.SimilarityMetric { return domain.MetricCosine }

func (m *mockIndex) Persist(path string) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	m.persistedTo = path
	return nil
}

// mockBuilder implements driven.IndexBuilder.
type mockBuilder struct {
	buildErr error
	built    []driven.IndexEntry
	index    *mockIndex
}

var _ driven.IndexBuilder = (*mockBuilder)(nil)

func (m *mockBuilder) Build(entries []driven.IndexEntry, _ domain.SimilarityMetric) (driven.VectorIndex, error) {
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	m.built = entries
	if m.index == nil {
		m.index = &mockIndex{}
	}
	return m.index, nil
}

func (m *mockBuilder) Load(path string) (driven.VectorIndex, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, path)
}

// mockDocStore implements driven.DocumentStore in memory.
type mockDocStore struct {
	mu     sync.Mutex
	docs   map[string]domain.Document
	chunks map[string]domain.Chunk

	saveDocErr   error
	saveChunkErr error
	listErr      error
}

var _ driven.DocumentStore = (*mockDocStore)(nil)

func newMockDocStore() *mockDocStore {
	return &mockDocStore{
		docs:   make(map[string]domain.Document),
		chunks: make(map[string]domain.Chunk),
	}
}

func (m *mockDocStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if m.saveDocErr != nil {
		return m.saveDocErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = *doc
	return nil
}

func (m *mockDocStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if m.saveChunkErr != nil {
		return m.saveChunkErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chunk := range chunks {
		m.chunks[chunk.ID] = chunk
	}
	return nil
}

func (m *mockDocStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (m *mockDocStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	chunk, ok := m.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

func (m *mockDocStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Chunk
	for _, chunk := range m.chunks {
		if chunk.DocumentID == documentID {
			out = append(out, chunk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *mockDocStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockDocStore) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = make(map[string]domain.Document)
	m.chunks = make(map[string]domain.Chunk)
	return nil
}

func (m *mockDocStore) Close() error { return nil }

// mockLoader implements driven.DocumentLoader.
type mockLoader struct {
	docs []domain.Document
	err  error
}

var _ driven.DocumentLoader = (*mockLoader)(nil)

func (m *mockLoader) Load(_ context.Context, _ string) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

// mockLLM implements driven.LLMService.
type mockLLM struct {
	response   string
	err        error
	lastPrompt string
}

var _ driven.LLMService = (*mockLLM)(nil)

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockRetrieval implements driving.RetrievalService.
type mockRetrieval struct {
	result domain.RetrievalResult
	err    error
}

var _ driving.RetrievalService = (*mockRetrieval)(nil)

func (m *mockRetrieval) Retrieve(_ context.Context, _ string, _ int) (domain.RetrievalResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}
