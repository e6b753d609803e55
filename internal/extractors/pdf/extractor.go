package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.TypePDF}
}

// Extract returns the text of every page, each followed by a newline,
// and the page count. Pages whose text cannot be decoded contribute an
// empty line so page numbering stays aligned.
func (e *Extractor) Extract(ctx context.Context, content []byte) (result *driven.ExtractResult, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: malformed pdf: %v", domain.ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	pages := reader.NumPage()
	var b strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if !page.V.IsNull() {
			text, perr := page.GetPlainText(nil)
			if perr != nil {
				logger.Debug("pdf page %d: %v", i, perr)
			} else {
				b.WriteString(text)
			}
		}
		b.WriteByte('\n')
	}

	return &driven.ExtractResult{
		Text:      b.String(),
		PageCount: &pages,
	}, nil
}
