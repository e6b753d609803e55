package driving

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// LibraryService manages the set of uploaded documents.
type LibraryService interface {
	// Add appends a document. An empty ID or UploadDate is assigned.
	// Returns the stored document.
	Add(ctx context.Context, doc domain.Document) (*domain.Document, error)

	// Remove deletes a document by ID. Removing an unknown ID is a no-op.
	Remove(ctx context.Context, id string) error

	// Clear removes every document.
	Clear(ctx context.Context) error

	// List returns a copy of all documents in insertion order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Count returns the number of documents.
	Count(ctx context.Context) int
}
