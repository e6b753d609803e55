package services

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// DocumentSorter orders documents for display.
type DocumentSorter struct {
	tag language.Tag
}

// NewDocumentSorter creates a sorter that collates names for locale.
// An unparseable locale falls back to English.
func NewDocumentSorter(locale string) *DocumentSorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &DocumentSorter{tag: tag}
}

// Sort returns a sorted copy of docs. Name sorts ascending by collation,
// date and size sort descending. An unknown key keeps the input order.
func (s *DocumentSorter) Sort(docs []domain.Document, key domain.SortKey) []domain.Document {
	sorted := make([]domain.Document, len(docs))
	copy(sorted, docs)

	switch key {
	case domain.SortByName:
		// Collators carry buffers and are not safe for concurrent use.
		c := collate.New(s.tag)
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	case domain.SortBySize:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Size > sorted[j].Size
		})
	case domain.SortByDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UploadDate.After(sorted[j].UploadDate)
		})
	}

	return sorted
}

// SortDocuments sorts docs using English collation for names.
func SortDocuments(docs []domain.Document, key domain.SortKey) []domain.Document {
	return NewDocumentSorter(domain.DefaultLocale).Sort(docs, key)
}

// FilterDocuments returns the documents of type typ.
// An empty type or domain.TypeAll returns every document.
func FilterDocuments(docs []domain.Document, typ string) []domain.Document {
	opts := domain.SearchOptions{Type: typ}
	filtered := make([]domain.Document, 0, len(docs))
	for i := range docs {
		if opts.MatchesType(docs[i].Type) {
			filtered = append(filtered, docs[i])
		}
	}
	return filtered
}

// ParseSortKey parses a sort key name.
func ParseSortKey(s string) (domain.SortKey, error) {
	key := domain.SortKey(s)
	if !key.IsValid() {
		return "", fmt.Errorf("%w: unknown sort key %q (want name, date or size)", domain.ErrInvalidInput, s)
	}
	return key, nil
}

// ParseTypeFilter maps a short type name or MIME type to a filter value.
func ParseTypeFilter(s string) (string, error) {
	switch s {
	case "", domain.TypeAll:
		return domain.TypeAll, nil
	case "pdf", domain.TypePDF:
		return domain.TypePDF, nil
	case "docx", domain.TypeDOCX:
		return domain.TypeDOCX, nil
	case "txt", "text", domain.TypePlainText:
		return domain.TypePlainText, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q (want all, pdf, docx or txt)", domain.ErrInvalidInput, s)
	}
}

// NextTypeFilter returns the filter after current in the order
// all, PDF, DOCX, plain text, wrapping back to all.
func NextTypeFilter(current string) string {
	filters := append([]string{domain.TypeAll}, domain.SupportedTypes()...)
	for i, f := range filters {
		if f == current {
			return filters[(i+1)%len(filters)]
		}
	}
	return domain.TypeAll
}
