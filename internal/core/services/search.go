package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/juju/clock"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks library documents by substring match count.
type SearchService struct {
	library  driving.LibraryService
	snippets SnippetOptions
	delay    time.Duration
	clock    clock.Clock
}

// NewSearchService creates a new search service over library.
func NewSearchService(library driving.LibraryService, snippets SnippetOptions) *SearchService {
	return &SearchService{
		library:  library,
		snippets: snippets,
		clock:    clock.WallClock,
	}
}

// SetDelay sets a pause waited before every search. Interactive frontends
// use it so a "searching" state is visible; results are unaffected.
func (s *SearchService) SetDelay(d time.Duration, clk clock.Clock) {
	s.delay = d
	if clk != nil {
		s.clock = clk
	}
}

// Search finds every document containing query, case-insensitively.
//
// A whitespace-only query returns no results. Documents are ranked by the
// number of non-overlapping occurrences, highest first, ties keeping
// library order. Snippets list every occurrence, overlapping ones included,
// so a result may carry more snippets than its MatchCount.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, type: %q", query, opts.Type)

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	docs, err := s.library.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	snippetOpts := s.snippets
	if opts.Highlight != nil {
		snippetOpts.Highlighter = opts.Highlight
	}

	results := make([]domain.SearchResult, 0)
	for i := range docs {
		if !opts.MatchesType(docs[i].Type) {
			continue
		}
		count := CountMatches(docs[i].Content, query)
		if count == 0 {
			continue
		}
		results = append(results, domain.SearchResult{
			Document:   docs[i],
			Snippets:   ExtractSnippets(docs[i].Content, query, snippetOpts),
			MatchCount: count,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchCount > results[j].MatchCount
	})
	logger.Debug("Matched %d of %d documents", len(results), len(docs))

	return paginate(results, opts), nil
}

// wait blocks for the configured delay or until ctx is done.
func (s *SearchService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.clock.After(s.delay):
		return nil
	}
}

// paginate applies offset, limit and the per-result snippet cap.
func paginate(results []domain.SearchResult, opts domain.SearchOptions) []domain.SearchResult {
	if opts.Offset > 0 {
		if opts.Offset >= len(results) {
			return []domain.SearchResult{}
		}
		results = results[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(results) {
		results = results[:opts.Limit]
	}
	if opts.MaxSnippets > 0 {
		for i := range results {
			if len(results[i].Snippets) > opts.MaxSnippets {
				results[i].Snippets = results[i].Snippets[:opts.MaxSnippets]
			}
		}
	}
	return results
}
