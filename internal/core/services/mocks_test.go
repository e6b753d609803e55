package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/juju/clock/testclock"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
)

// mockExtractor returns canned text for its MIME types.
type mockExtractor struct {
	types     []string
	text      string
	pageCount *int
	err       error
	calls     int
}

func (m *mockExtractor) SupportedMIMETypes() []string {
	return m.types
}

func (m *mockExtractor) Extract(_ context.Context, content []byte) (*driven.ExtractResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	text := m.text
	if text == "" {
		text = string(content)
	}
	return &driven.ExtractResult{Text: text, PageCount: m.pageCount}, nil
}

var errMockExtract = errors.New("mock extraction failure")

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestLibrary creates an unpersisted library on a test clock.
func newTestLibrary(t *testing.T) (*LibraryService, *testclock.Clock) {
	t.Helper()
	clk := testclock.NewClock(testEpoch)
	return OpenLibrary(context.Background(), nil, clk), clk
}

// addDocs adds documents and fails the test on error.
func addDocs(t *testing.T, lib *LibraryService, docs ...domain.Document) []domain.Document {
	t.Helper()
	added := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		doc, err := lib.Add(context.Background(), d)
		if err != nil {
			t.Fatalf("add %s: %v", d.Name, err)
		}
		added = append(added, *doc)
	}
	return added
}

func intPtr(n int) *int {
	return &n
}
