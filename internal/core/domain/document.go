package domain

import "time"

// Known document types. The values are MIME types as reported by the
// uploader; other values are accepted and stored but never match a filter
// offered in the UI.
const (
	// TypePDF is the MIME type of PDF documents.
	TypePDF = "application/pdf"

	// TypeDOCX is the MIME type of Word (OOXML) documents.
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// TypePlainText is the MIME type of plain text documents.
	TypePlainText = "text/plain"

	// TypeAll is the wildcard type filter.
	TypeAll = "all"
)

// Document is an uploaded file after text extraction.
// Documents are never mutated once added to the library.
type Document struct {
	// ID is the unique identifier, assigned by the library on add.
	ID string `json:"id"`

	// Name is the original filename, for display only.
	Name string `json:"name"`

	// Content is the full extracted plain text.
	Content string `json:"content"`

	// Type is the MIME type reported for the original file.
	Type string `json:"type"`

	// Size is the byte length of the original file.
	Size int64 `json:"size"`

	// UploadDate is when the document was added.
	UploadDate time.Time `json:"uploadDate"`

	// PageCount is set only when extraction reported a page count.
	PageCount *int `json:"pageCount,omitempty"`
}

// HasPageCount reports whether extraction recorded a page count.
func (d *Document) HasPageCount() bool {
	return d.PageCount != nil && *d.PageCount > 0
}

// TypeLabel returns a short label for the document type.
func TypeLabel(mimeType string) string {
	switch mimeType {
	case TypePDF:
		return "PDF"
	case TypeDOCX:
		return "DOCX"
	case TypePlainText:
		return "TXT"
	case TypeAll:
		return "All Types"
	default:
		return "FILE"
	}
}

// SupportedTypes returns the document types the uploader accepts.
func SupportedTypes() []string {
	return []string{TypePDF, TypeDOCX, TypePlainText}
}

// IsSupportedType reports whether mimeType is accepted for upload.
func IsSupportedType(mimeType string) bool {
	for _, t := range SupportedTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}

// SortKey selects the library display ordering.
type SortKey string

// Available sort keys.
const (
	// SortByName orders by name, ascending, using locale-aware collation.
	SortByName SortKey = "name"

	// SortByDate orders by upload date, most recent first.
	SortByDate SortKey = "date"

	// SortBySize orders by size, largest first.
	SortBySize SortKey = "size"
)

// IsValid returns true if the sort key is recognised.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByDate, SortBySize:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SortKey) String() string {
	return string(k)
}

// AllSortKeys returns all sort keys in display order.
func AllSortKeys() []SortKey {
	return []SortKey{SortByDate, SortByName, SortBySize}
}
