// Package file provides a JSON file implementation of driven.LibraryStore.
// The whole library is kept as a single JSON array, written atomically.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// DefaultFileName is the slot file name inside the data directory.
const DefaultFileName = "documents.json"

// LibraryStore keeps the library in a JSON file.
type LibraryStore struct {
	mu   sync.Mutex
	path string
}

// NewLibraryStore creates a store writing to dataDir/documents.json.
// If dataDir is empty, defaults to ~/.docsift/data.
func NewLibraryStore(dataDir string) (*LibraryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docsift", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &LibraryStore{path: filepath.Join(dataDir, DefaultFileName)}, nil
}

// Path returns the slot file path.
func (s *LibraryStore) Path() string {
	return s.path
}

// Load reads the slot. A missing or empty file is an empty library.
func (s *LibraryStore) Load(_ context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return []domain.Document{}, nil
	}

	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

// Save writes docs to a temporary file and renames it over the slot.
// An empty list removes the slot.
func (s *LibraryStore) Save(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(docs) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", s.path, err)
		}
		return nil
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encoding documents: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".documents-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; every Save is already on disk.
func (s *LibraryStore) Close() error {
	return nil
}
