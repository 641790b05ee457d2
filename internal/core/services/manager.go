package services

import (
	"sync"

	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
)

// IndexManager holds the live vector index behind a lock so rebuilds can
// swap in a fully built replacement atomically. In-flight retrievals keep
// using the snapshot they obtained; they never observe a partial index.
type IndexManager struct {
	mu    sync.RWMutex
	index driven.VectorIndex
}

// NewIndexManager creates a manager, optionally seeded with an index.
func NewIndexManager(index driven.VectorIndex) *IndexManager {
	return &IndexManager{index: index}
}

// Current returns the live index, or nil if none has been loaded.
func (m *IndexManager) Current() driven.VectorIndex {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index
}

// Swap replaces the live index with a fully built one.
func (m *IndexManager) Swap(next driven.VectorIndex) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.index = next
}
