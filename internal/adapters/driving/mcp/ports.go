package mcp

import (
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search finds documents containing a query.
	Search driving.SearchService

	// Library lists, reads and removes documents.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	return nil
}
