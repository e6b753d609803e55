package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "docsift://documents/doc-456",
			expected: "doc-456",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/doc-456",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "docsift://documents/doc-456/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractDocumentID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns documents successfully", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, testLibrary())

		req := makeReadResourceRequest("docsift://documents")
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "doc-1")
		assert.Contains(t, result.Contents[0].Text, "report.pdf")
		assert.NotContains(t, result.Contents[0].Text, "content")
	})

	t.Run("handles empty library", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockLibraryService{})

		req := makeReadResourceRequest("docsift://documents")
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockLibraryService{err: errors.New("storage error")})

		req := makeReadResourceRequest("docsift://documents")
		_, err := server.handleDocumentsResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, testLibrary())

		req := makeReadResourceRequest("docsift://invalid/uri")
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("unknown document returns not found", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, testLibrary())

		req := makeReadResourceRequest("docsift://documents/missing")
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "getting document content")
	})

	t.Run("returns content successfully", func(t *testing.T) {
		lib := &mockLibraryService{documents: []domain.Document{
			{ID: "doc-123", Name: "a.txt", Content: "Hello World\n\nThis is the document content."},
		}}
		server := newTestServer(t, &mockSearchService{}, lib)

		req := makeReadResourceRequest("docsift://documents/doc-123")
		result, err := server.handleDocumentContentResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "Hello World\n\nThis is the document content.", result.Contents[0].Text)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
	})

	t.Run("returns error on get failure", func(t *testing.T) {
		server := newTestServer(t, &mockSearchService{}, &mockLibraryService{err: errors.New("storage error")})

		req := makeReadResourceRequest("docsift://documents/doc-123")
		_, err := server.handleDocumentContentResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting document content")
	})
}
