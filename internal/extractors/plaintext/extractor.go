package plaintext

import (
	"context"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.TypePlainText}
}

// Extract decodes content as UTF-8. Invalid sequences become U+FFFD and a
// leading byte order mark is dropped. A UTF-16 byte order mark switches
// decoding to UTF-16.
func (e *Extractor) Extract(_ context.Context, content []byte) (*driven.ExtractResult, error) {
	decoder := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return nil, err
	}
	return &driven.ExtractResult{Text: string(text)}, nil
}
