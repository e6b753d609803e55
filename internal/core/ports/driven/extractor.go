package driven

import "context"

// Extractor turns the raw bytes of an uploaded file into plain text.
// Each extractor handles specific MIME types (e.g., PDF, DOCX).
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Extract parses content and returns its text.
	Extract(ctx context.Context, content []byte) (*ExtractResult, error)
}

// ExtractResult contains the output of extraction.
type ExtractResult struct {
	// Text is the extracted plain text.
	Text string

	// PageCount is set when the format has a notion of pages.
	PageCount *int
}
