package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const documentPart = "word/document.xml"

// Extractor handles Word (OOXML) documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{domain.TypeDOCX}
}

// Extract returns the document body text with one line per paragraph.
func (e *Extractor) Extract(_ context.Context, content []byte) (*driven.ExtractResult, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip archive: %v", domain.ErrExtractionFailed, err)
	}

	part, err := reader.Open(documentPart)
	if err != nil {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrExtractionFailed, documentPart)
	}
	defer part.Close()

	text, err := bodyText(part)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return &driven.ExtractResult{Text: text}, nil
}

// bodyText walks the WordprocessingML token stream. Paragraphs nested in
// tables and text boxes are included.
func bodyText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var b strings.Builder
	paragraphs := 0
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if paragraphs > 0 {
					b.WriteByte('\n')
				}
				paragraphs++
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return strings.TrimSpace(b.String()), nil
}
