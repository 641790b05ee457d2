package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
	"github.com/meridian-labs/leadscope/internal/core/ports/driving"
	"github.com/meridian-labs/leadscope/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.IngestService = (*Indexer)(nil)

// DefaultWorkers is the default embedding concurrency during builds.
const DefaultWorkers = 8

// Indexer runs the build pipeline: documents are chunked, embedded on
// parallel workers, assembled into a fresh index, persisted, and swapped
// in for queries. Workers share no mutable state; each writes its own
// slot in the output slice and results are joined before the build.
type Indexer struct {
	loader   driven.DocumentLoader
	docStore driven.DocumentStore
	chunker  *Chunker
	embedder driven.EmbeddingService
	builder  driven.IndexBuilder
	manager  *IndexManager

	indexPath string
	metric    domain.SimilarityMetric
	workers   int
	limiter   *rate.Limiter
}

// IndexerConfig wires an Indexer.
type IndexerConfig struct {
	Loader   driven.DocumentLoader
	DocStore driven.DocumentStore
	Chunker  *Chunker
	Embedder driven.EmbeddingService
	Builder  driven.IndexBuilder
	Manager  *IndexManager

	// IndexPath is where the built index is persisted.
	IndexPath string

	// Metric is the similarity metric fixed at build time.
	Metric domain.SimilarityMetric

	// Workers is the embedding concurrency (default DefaultWorkers).
	Workers int

	// EmbedRateLimit caps embedding calls per second; zero means unlimited.
	EmbedRateLimit float64
}

// NewIndexer creates the build pipeline.
func NewIndexer(cfg IndexerConfig) *Indexer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.EmbedRateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.EmbedRateLimit), 1)
	}

	metric := cfg.Metric
	if !metric.IsValid() {
		metric = domain.MetricCosine
	}

	return &Indexer{
		loader:    cfg.Loader,
		docStore:  cfg.DocStore,
		chunker:   cfg.Chunker,
		embedder:  cfg.Embedder,
		builder:   cfg.Builder,
		manager:   cfg.Manager,
		indexPath: cfg.IndexPath,
		metric:    metric,
		workers:   workers,
		limiter:   limiter,
	}
}

// Ingest loads a corpus directory, persists it, and builds the index.
func (ix *Indexer) Ingest(ctx context.Context, dir string) (*driving.IngestStats, error) {
	logger.Section("Ingest")
	logger.Debug("Corpus directory: %s", dir)

	docs, err := ix.loader.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents found in %s", domain.ErrInvalidInput, dir)
	}
	logger.Info("Loaded %d documents", len(docs))

	// Replace the stored corpus wholesale. The live index is untouched
	// until the new one is fully built.
	if err := ix.docStore.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear corpus: %w", err)
	}
	for i := range docs {
		if err := ix.docStore.SaveDocument(ctx, &docs[i]); err != nil {
			return nil, fmt.Errorf("save document %s: %w", docs[i].ID, err)
		}
	}

	return ix.buildFrom(ctx, docs)
}

// Rebuild re-chunks and re-embeds the stored corpus into a new index.
func (ix *Indexer) Rebuild(ctx context.Context) (*driving.IngestStats, error) {
	logger.Section("Rebuild")

	docs, err := ix.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: corpus is empty", domain.ErrInvalidInput)
	}

	return ix.buildFrom(ctx, docs)
}

// buildFrom chunks and embeds documents, builds the index, persists it,
// and swaps it in. Copy-then-swap: queries keep hitting the previous
// index until the new one is complete.
func (ix *Indexer) buildFrom(ctx context.Context, docs []domain.Document) (*driving.IngestStats, error) {
	var chunks []domain.Chunk
	for i := range docs {
		docChunks := ix.chunker.Chunk(&docs[i])
		if err := ix.docStore.SaveChunks(ctx, docChunks); err != nil {
			return nil, fmt.Errorf("save chunks for %s: %w", docs[i].ID, err)
		}
		chunks = append(chunks, docChunks...)
	}
	logger.Info("Chunked into %d chunks", len(chunks))

	entries, err := ix.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	index, err := ix.builder.Build(entries, ix.metric)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	if ix.indexPath != "" {
		if err := index.Persist(ix.indexPath); err != nil {
			return nil, fmt.Errorf("persist index: %w", err)
		}
		logger.Info("Index persisted to %s", ix.indexPath)
	}

	ix.manager.Swap(index)
	logger.Info("Index live: %d entries, %d dimensions, metric %s",
		index.Size(), index.Dimensions(), index.Metric())

	return &driving.IngestStats{
		Documents:  len(docs),
		Chunks:     len(chunks),
		Dimensions: index.Dimensions(),
	}, nil
}

// embedChunks embeds all chunks on parallel workers. Each worker writes
// only its own output slot; the function returns after the join, so the
// caller always sees a complete, ordered entry list.
func (ix *Indexer) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]driven.IndexEntry, error) {
	if ix.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Debug("Embedding %d chunks with %d workers", len(chunks), ix.workers)

	entries := make([]driven.IndexEntry, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	sem := make(chan struct{}, ix.workers)

	for i := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := ix.limiter.Wait(ctx); err != nil {
				errs[i] = err
				return
			}

			vector, err := ix.embedder.Embed(ctx, chunks[i].Content)
			if err != nil {
				// Keep the chunk ID so the caller can retry or skip.
				errs[i] = fmt.Errorf("%w: chunk %s: %w",
					domain.ErrEmbeddingUnavailable, chunks[i].ID, err)
				return
			}

			entries[i] = driven.IndexEntry{
				ChunkID:    chunks[i].ID,
				DocumentID: chunks[i].DocumentID,
				Content:    chunks[i].Content,
				Position:   chunks[i].Position,
				Vector:     vector,
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return entries, nil
}
