package driven

import "context"

// ExtractorRegistry selects the extractor for a MIME type.
type ExtractorRegistry interface {
	// Extract runs the extractor registered for mimeType.
	// Returns domain.ErrUnsupportedFileType when none is registered.
	Extract(ctx context.Context, mimeType string, content []byte) (*ExtractResult, error)

	// Register adds an extractor for each of its MIME types.
	// A later registration for the same type replaces the earlier one.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
