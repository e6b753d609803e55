package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is an in-memory implementation of driven.LibraryStore.
// Documents survive only as long as the process.
type LibraryStore struct {
	mu    sync.RWMutex
	docs  []domain.Document
	saves int
	err   error
}

// NewLibraryStore creates a new in-memory library store.
func NewLibraryStore(docs ...domain.Document) *LibraryStore {
	return &LibraryStore{docs: docs}
}

// Load returns a copy of the stored documents.
func (s *LibraryStore) Load(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	docs := make([]domain.Document, len(s.docs))
	copy(docs, s.docs)
	return docs, nil
}

// Save replaces the stored documents.
func (s *LibraryStore) Save(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.docs = make([]domain.Document, len(docs))
	copy(s.docs, docs)
	s.saves++
	return nil
}

// Close is a no-op.
func (s *LibraryStore) Close() error {
	return nil
}

// SaveCount returns how many times Save succeeded.
func (s *LibraryStore) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// FailWith makes every subsequent Load and Save return err. Nil restores
// normal behaviour.
func (s *LibraryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
