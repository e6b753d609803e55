package mcp

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockLibraryService is a mock implementation of driving.LibraryService.
type mockLibraryService struct {
	documents []domain.Document
	removed   []string
	err       error
}

func (m *mockLibraryService) Add(_ context.Context, doc domain.Document) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.documents = append(m.documents, doc)
	return &doc, nil
}

func (m *mockLibraryService) Remove(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, id)
	return nil
}

func (m *mockLibraryService) Clear(_ context.Context) error {
	m.documents = nil
	return m.err
}

func (m *mockLibraryService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockLibraryService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.documents {
		if m.documents[i].ID == id {
			doc := m.documents[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibraryService) Count(_ context.Context) int {
	return len(m.documents)
}
