package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/juju/clock"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService holds the ordered set of uploaded documents.
//
// The list lives in memory. After every mutation the whole list is written
// to the persistence slot; write failures are logged and otherwise ignored.
type LibraryService struct {
	mu    sync.RWMutex
	docs  []domain.Document
	store driven.LibraryStore
	clock clock.Clock
}

// OpenLibrary creates a library and loads any persisted documents.
// A nil store keeps documents for the process lifetime only. A nil clock
// uses the wall clock. A failed load is logged and starts empty.
func OpenLibrary(ctx context.Context, store driven.LibraryStore, clk clock.Clock) *LibraryService {
	if clk == nil {
		clk = clock.WallClock
	}
	s := &LibraryService{
		store: store,
		clock: clk,
	}

	if store == nil {
		return s
	}

	docs, err := store.Load(ctx)
	if err != nil {
		logger.Warn("failed to load documents, starting empty: %v", err)
		return s
	}

	// Drop duplicate IDs from a corrupted slot, keeping the first.
	seen := make(map[string]struct{}, len(docs))
	for i := range docs {
		if _, dup := seen[docs[i].ID]; dup || docs[i].ID == "" {
			logger.Warn("skipping persisted document with duplicate or empty id %q", docs[i].ID)
			continue
		}
		seen[docs[i].ID] = struct{}{}
		s.docs = append(s.docs, docs[i])
	}
	logger.Debug("Loaded %d documents", len(s.docs))

	return s
}

// Add appends a document, assigning an ID and upload date when empty.
func (s *LibraryService) Add(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = s.clock.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(doc.ID) >= 0 {
		return nil, fmt.Errorf("document %s: %w", doc.ID, domain.ErrAlreadyExists)
	}
	s.docs = append(s.docs, doc)
	s.persist(ctx)

	logger.Debug("Added document %s (%s)", doc.ID, doc.Name)
	return &doc, nil
}

// Remove deletes the document with id. Unknown IDs are ignored.
func (s *LibraryService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.docs = append(s.docs[:i:i], s.docs[i+1:]...)
	s.persist(ctx)

	logger.Debug("Removed document %s", id)
	return nil
}

// Clear removes every document.
func (s *LibraryService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = nil
	s.persist(ctx)
	return nil
}

// List returns a copy of all documents in insertion order.
func (s *LibraryService) List(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, len(s.docs))
	copy(docs, s.docs)
	return docs, nil
}

// Get retrieves a document by ID.
func (s *LibraryService) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	doc := s.docs[i]
	return &doc, nil
}

// Count returns the number of documents.
func (s *LibraryService) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Close closes the persistence store.
func (s *LibraryService) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// indexOf returns the position of id, or -1. Caller holds the lock.
func (s *LibraryService) indexOf(id string) int {
	for i := range s.docs {
		if s.docs[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the current list. Caller holds the write lock.
func (s *LibraryService) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	docs := make([]domain.Document, len(s.docs))
	copy(docs, s.docs)
	if err := s.store.Save(ctx, docs); err != nil {
		logger.Warn("failed to save documents: %v", err)
	}
}
