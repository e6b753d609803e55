package pdf

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// buildPDF writes a minimal PDF with one text line per page.
func buildPDF(lines ...string) []byte {
	var objects []string
	kids := ""
	for i := range lines {
		kids += fmt.Sprintf("%d 0 R ", 4+i*2)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(lines)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, line := range lines {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", line)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+i*2),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{domain.TypePDF}, New().SupportedMIMETypes())
}

func TestExtract_Pages(t *testing.T) {
	content := buildPDF("Hello first page", "Second page here")

	result, err := New().Extract(context.Background(), content)

	require.NoError(t, err)
	require.NotNil(t, result.PageCount)
	assert.Equal(t, 2, *result.PageCount)
	assert.Contains(t, result.Text, "Hello first page")
	assert.Contains(t, result.Text, "Second page here")
	assert.Less(t,
		bytes.Index([]byte(result.Text), []byte("Hello")),
		bytes.Index([]byte(result.Text), []byte("Second")),
	)
}

func TestExtract_Invalid(t *testing.T) {
	result, err := New().Extract(context.Background(), []byte("definitely not a pdf"))

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Nil(t, result)
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, buildPDF("page"))

	assert.ErrorIs(t, err, context.Canceled)
}
