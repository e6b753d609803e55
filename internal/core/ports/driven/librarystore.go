package driven

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// LibraryStore persists the full document list as a single slot.
// The library writes the whole list after every mutation and reads it once
// at startup. Implementations give no durability guarantee beyond that.
type LibraryStore interface {
	// Load returns the persisted documents in insertion order.
	// An empty or missing slot returns an empty slice and no error.
	Load(ctx context.Context) ([]domain.Document, error)

	// Save replaces the persisted slot with docs.
	Save(ctx context.Context, docs []domain.Document) error

	// Close releases any resources held by the store.
	Close() error
}
