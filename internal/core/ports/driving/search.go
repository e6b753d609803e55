package driving

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search performs a case-insensitive substring search across the library.
	// Results are ranked by match count, highest first.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
