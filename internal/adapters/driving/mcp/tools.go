package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/services"
)

const defaultSearchLimit = 10

// SearchInput is the input schema for the search_documents tool.
type SearchInput struct {
	Query       string `json:"query" jsonschema:"the phrase to find, matched case-insensitively"`
	Type        string `json:"type,omitempty" jsonschema:"restrict to pdf, docx or txt"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of documents to return (default 10)"`
	Offset      int    `json:"offset,omitempty" jsonschema:"number of documents to skip"`
	MaxSnippets int    `json:"max_snippets,omitempty" jsonschema:"maximum snippets per document (default all)"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string          `json:"document_id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	URI        string          `json:"uri"`
	MatchCount int             `json:"match_count"`
	Snippets   []SnippetOutput `json:"snippets"`
}

// SnippetOutput is a snippet with the match wrapped in <mark> tags.
type SnippetOutput struct {
	Text string `json:"text"`
	Page int    `json:"page,omitempty"`
}

// ListInput is the input schema for the list_documents tool.
type ListInput struct {
	Sort string `json:"sort,omitempty" jsonschema:"sort by name, date or size (default date)"`
	Type string `json:"type,omitempty" jsonschema:"restrict to pdf, docx or txt"`
}

// ListOutput is the output schema for the list_documents tool.
type ListOutput struct {
	Documents []DocumentInfo `json:"documents"`
	Count     int            `json:"count"`
}

// DocumentInfo describes a document without its content.
type DocumentInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	UploadDate string `json:"upload_date"`
	PageCount  *int   `json:"page_count,omitempty"`
	URI        string `json:"uri"`
}

// RemoveInput is the input schema for the remove_document tool.
type RemoveInput struct {
	ID string `json:"id" jsonschema:"the document ID to remove"`
}

// RemoveOutput is the output schema for the remove_document tool.
type RemoveOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Removed bool   `json:"removed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Find documents containing a phrase and return highlighted snippets",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents in the library",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_document",
		Description: "Remove a document from the library. An unknown ID is not an error; removed is false.",
	}, s.handleRemove)
}

// handleSearch handles the search_documents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	docType, err := services.ParseTypeFilter(input.Type)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	opts := domain.SearchOptions{
		Type:        docType,
		Limit:       limit,
		Offset:      input.Offset,
		MaxSnippets: input.MaxSnippets,
	}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		doc := &results[i].Document
		snippets := make([]SnippetOutput, len(results[i].Snippets))
		for j, sn := range results[i].Snippets {
			snippets[j] = SnippetOutput{Text: sn.Text, Page: sn.Page}
		}
		output.Results[i] = SearchResultOutput{
			DocumentID: doc.ID,
			Name:       doc.Name,
			Type:       doc.Type,
			URI:        documentURI(doc.ID),
			MatchCount: results[i].MatchCount,
			Snippets:   snippets,
		}
	}

	return nil, output, nil
}

// handleList handles the list_documents tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	key := domain.SortByDate
	if input.Sort != "" {
		parsed, err := services.ParseSortKey(input.Sort)
		if err != nil {
			return nil, ListOutput{}, err
		}
		key = parsed
	}
	docType, err := services.ParseTypeFilter(input.Type)
	if err != nil {
		return nil, ListOutput{}, err
	}

	docs, err := s.ports.Library.List(ctx)
	if err != nil {
		return nil, ListOutput{}, fmt.Errorf("listing documents: %w", err)
	}
	docs = services.SortDocuments(services.FilterDocuments(docs, docType), key)

	return nil, ListOutput{Documents: documentInfos(docs), Count: len(docs)}, nil
}

// handleRemove handles the remove_document tool invocation. Removing an
// unknown ID is a no-op.
func (s *Server) handleRemove(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveInput,
) (*mcp.CallToolResult, RemoveOutput, error) {
	doc, err := s.ports.Library.Get(ctx, input.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, RemoveOutput{ID: input.ID, Removed: false}, nil
	}
	if err != nil {
		return nil, RemoveOutput{}, fmt.Errorf("getting document: %w", err)
	}
	if err := s.ports.Library.Remove(ctx, doc.ID); err != nil {
		return nil, RemoveOutput{}, fmt.Errorf("removing document: %w", err)
	}
	return nil, RemoveOutput{ID: doc.ID, Name: doc.Name, Removed: true}, nil
}
