package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Type restricts results to one document type. Empty or TypeAll
	// matches every document.
	Type string

	// Limit is the maximum number of results. Zero returns all.
	Limit int

	// Offset is the number of ranked results to skip.
	Offset int

	// MaxSnippets caps the snippets returned per result. Zero returns all.
	// MatchCount is unaffected.
	MaxSnippets int

	// Highlight wraps each matched substring in a snippet. Nil uses the
	// search service's configured highlighter.
	Highlight func(match string) string
}

// MatchesType reports whether a document of type docType passes the filter.
func (o SearchOptions) MatchesType(docType string) bool {
	return o.Type == "" || o.Type == TypeAll || o.Type == docType
}

// Snippet is a window of document text around one occurrence of the query.
type Snippet struct {
	// Text is the highlighted, ellipsis-padded window.
	Text string `json:"snippet"`

	// Page is the estimated page number, starting at 1.
	// It is derived from the character offset, not from the source layout.
	Page int `json:"page,omitempty"`
}

// SearchResult represents a single matching document.
type SearchResult struct {
	// Document is the matched document.
	Document Document `json:"document"`

	// Snippets lists every occurrence, overlapping ones included.
	Snippets []Snippet `json:"snippets"`

	// MatchCount is the number of non-overlapping matches, used for ranking.
	MatchCount int `json:"matchCount"`
}
