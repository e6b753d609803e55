package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// createTestDOCX creates a minimal DOCX archive in memory.
func createTestDOCX(t *testing.T, body string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	ct, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, _ = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types/>`))

	if body != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, _ = doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + body + `</w:body>
</w:document>`))
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{domain.TypeDOCX}, New().SupportedMIMETypes())
}

func TestExtract_Paragraphs(t *testing.T) {
	content := createTestDOCX(t, `
<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Third</w:t><w:tab/><w:t>column</w:t></w:r></w:p>`)

	result, err := New().Extract(context.Background(), content)

	require.NoError(t, err)
	assert.Equal(t, "First paragraph\nSecond paragraph\nThird\tcolumn", result.Text)
	assert.Nil(t, result.PageCount)
}

func TestExtract_Tables(t *testing.T) {
	content := createTestDOCX(t, `
<w:tbl><w:tr>
<w:tc><w:p><w:r><w:t>cell one</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>cell two</w:t></w:r></w:p></w:tc>
</w:tr></w:tbl>`)

	result, err := New().Extract(context.Background(), content)

	require.NoError(t, err)
	assert.Equal(t, "cell one\ncell two", result.Text)
}

func TestExtract_IgnoresNonTextElements(t *testing.T) {
	content := createTestDOCX(t, `
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:instrText>PAGE</w:instrText><w:t>Title</w:t></w:r></w:p>`)

	result, err := New().Extract(context.Background(), content)

	require.NoError(t, err)
	assert.Equal(t, "Title", result.Text)
}

func TestExtract_InvalidZip(t *testing.T) {
	result, err := New().Extract(context.Background(), []byte("not a zip file"))

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Nil(t, result)
}

func TestExtract_MissingDocumentPart(t *testing.T) {
	_, err := New().Extract(context.Background(), createTestDOCX(t, ""))

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_MalformedXML(t *testing.T) {
	content := createTestDOCX(t, `<w:p><w:r><w:t>unclosed`)

	_, err := New().Extract(context.Background(), content)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
