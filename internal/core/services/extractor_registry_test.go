package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// TestExtractorRegistry_Dispatch tests selection by MIME type
func TestExtractorRegistry_Dispatch(t *testing.T) {
	text := &mockExtractor{types: []string{domain.TypePlainText}, text: "plain"}
	pdf := &mockExtractor{types: []string{domain.TypePDF}, text: "pdf", pageCount: intPtr(2)}
	reg := NewExtractorRegistry(text, pdf)

	res, err := reg.Extract(context.Background(), domain.TypePDF, []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "pdf", res.Text)
	require.NotNil(t, res.PageCount)
	assert.Equal(t, 2, *res.PageCount)
	assert.Equal(t, 0, text.calls)

	_, err = reg.Extract(context.Background(), "image/png", nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)

	assert.Equal(t, []string{domain.TypePDF, domain.TypePlainText}, reg.SupportedMIMETypes())
}

// TestExtractorRegistry_Replace tests that later registrations win
func TestExtractorRegistry_Replace(t *testing.T) {
	reg := NewExtractorRegistry(&mockExtractor{types: []string{domain.TypePlainText}, text: "old"})
	reg.Register(&mockExtractor{types: []string{domain.TypePlainText}, text: "new"})

	res, err := reg.Extract(context.Background(), domain.TypePlainText, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "new", res.Text)
}
