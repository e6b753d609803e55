package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

func libraryDocs() []domain.Document {
	pages := 3
	report := textDoc("report.pdf", "Annual report text")
	report.ID = "bbbb2222-0000-0000-0000-000000000000"
	report.Type = domain.TypePDF
	report.Size = 4096
	report.PageCount = &pages
	report.UploadDate = testEpoch.Add(time.Hour)

	notes := textDoc("notes.txt", "Meeting notes")
	notes.ID = "aaaa1111-0000-0000-0000-000000000000"
	notes.UploadDate = testEpoch

	zebra := textDoc("Zebra.txt", "Stripes")
	zebra.ID = "aaaa2222-0000-0000-0000-000000000000"
	zebra.UploadDate = testEpoch.Add(2 * time.Hour)

	return []domain.Document{notes, report, zebra}
}

// TestListCmd_Empty tests the empty library message
func TestListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents. Add some with: docsift add FILE...")
}

// TestListCmd_Table tests the default listing
func TestListCmd_Table(t *testing.T) {
	setupTestServices(t, libraryDocs()...)

	out, err := execute(t, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "bbbb2222")
	assert.Contains(t, out, "4.0 KiB")
	assert.Contains(t, out, "3 pages")
	assert.Contains(t, out, "3 of 3 documents")
}

// TestListCmd_JSONSorted tests sorting with JSON output
func TestListCmd_JSONSorted(t *testing.T) {
	tests := []struct {
		sort     string
		expected []string
	}{
		{"date", []string{"Zebra.txt", "report.pdf", "notes.txt"}},
		{"name", []string{"notes.txt", "report.pdf", "Zebra.txt"}},
		{"size", []string{"report.pdf", "notes.txt", "Zebra.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			setupTestServices(t, libraryDocs()...)

			out, err := execute(t, "list", "--json", "--sort", tt.sort)
			require.NoError(t, err)

			var docs []domain.Document
			require.NoError(t, json.Unmarshal([]byte(out), &docs))
			names := make([]string, len(docs))
			for i := range docs {
				names[i] = docs[i].Name
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

// TestListCmd_DefaultSort tests that the configured sort applies
func TestListCmd_DefaultSort(t *testing.T) {
	setupTestServices(t, libraryDocs()...)
	defaultSort = domain.SortByName

	out, err := execute(t, "list", "--json")
	require.NoError(t, err)

	var docs []domain.Document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 3)
	assert.Equal(t, "notes.txt", docs[0].Name)
}

// TestListCmd_TypeFilter tests filtering by type
func TestListCmd_TypeFilter(t *testing.T) {
	setupTestServices(t, libraryDocs()...)

	out, err := execute(t, "list", "-t", "pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "report.pdf")
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "1 of 3 documents")
}

// TestListCmd_InvalidSort tests rejecting an unknown sort key
func TestListCmd_InvalidSort(t *testing.T) {
	setupTestServices(t, libraryDocs()...)

	_, err := execute(t, "list", "--sort", "relevance")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestShowCmd_Prefix tests showing a document by ID prefix
func TestShowCmd_Prefix(t *testing.T) {
	setupTestServices(t, libraryDocs()...)

	out, err := execute(t, "show", "bbbb")

	require.NoError(t, err)
	assert.Contains(t, out, "report.pdf (PDF, 4.0 KiB, 3 pages)")
	assert.Contains(t, out, "Annual report text")
}

// TestShowCmd_Ambiguous tests an ambiguous ID prefix
func TestShowCmd_Ambiguous(t *testing.T) {
	setupTestServices(t, libraryDocs()...)

	_, err := execute(t, "show", "aaaa")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestShowCmd_NotFound tests an unknown ID
func TestShowCmd_NotFound(t *testing.T) {
	setupTestServices(t, libraryDocs()...)

	_, err := execute(t, "show", "cccc")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestShowCmd_JSON tests JSON output for one document
func TestShowCmd_JSON(t *testing.T) {
	setupTestServices(t, libraryDocs()...)

	out, err := execute(t, "show", "--json", "aaaa1111-0000-0000-0000-000000000000")
	require.NoError(t, err)

	var doc domain.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "notes.txt", doc.Name)
	assert.Equal(t, "Meeting notes", doc.Content)
}

// TestRemoveCmd tests removing documents
func TestRemoveCmd(t *testing.T) {
	ts := setupTestServices(t, libraryDocs()...)

	out, err := execute(t, "rm", "bbbb", "aaaa1")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed report.pdf")
	assert.Contains(t, out, "Removed notes.txt")
	assert.Equal(t, 1, ts.library.Count(context.Background()))
}

// TestRemoveCmd_UnknownID tests that an unknown ID is skipped without failing
func TestRemoveCmd_UnknownID(t *testing.T) {
	ts := setupTestServices(t, libraryDocs()...)

	out, err := execute(t, "rm", "bbbb", "cccc", "aaaa1")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed report.pdf")
	assert.Contains(t, out, "No document cccc")
	assert.Contains(t, out, "Removed notes.txt")
	assert.Equal(t, 1, ts.library.Count(context.Background()))

	_, err = execute(t, "rm", "bbbb2222-0000-0000-0000-000000000000")
	assert.NoError(t, err)
}

// TestRemoveCmd_Ambiguous tests that an ambiguous prefix fails after the rest are removed
func TestRemoveCmd_Ambiguous(t *testing.T) {
	ts := setupTestServices(t, libraryDocs()...)

	out, err := execute(t, "rm", "aaaa", "bbbb")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, out, "Removed report.pdf")
	assert.Equal(t, 2, ts.library.Count(context.Background()))
}

// TestClearCmd_Yes tests clearing with confirmation skipped
func TestClearCmd_Yes(t *testing.T) {
	ts := setupTestServices(t, libraryDocs()...)

	out, err := execute(t, "clear", "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 documents.")
	assert.Zero(t, ts.library.Count(context.Background()))
}

// TestClearCmd_NonInteractive tests that clearing needs --yes without a terminal
func TestClearCmd_NonInteractive(t *testing.T) {
	ts := setupTestServices(t, libraryDocs()...)

	_, err := execute(t, "clear")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to clear the library without --yes")
	assert.Equal(t, 3, ts.library.Count(context.Background()))
}

// TestClearCmd_Empty tests clearing an empty library
func TestClearCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "clear")

	require.NoError(t, err)
	assert.Contains(t, out, "Library is already empty.")
}

// TestLibraryCmds_NotConfigured tests running without a library
func TestLibraryCmds_NotConfigured(t *testing.T) {
	resetServices()

	for _, args := range [][]string{{"list"}, {"show", "x"}, {"rm", "x"}, {"clear"}} {
		_, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "library service not configured")
	}
}
