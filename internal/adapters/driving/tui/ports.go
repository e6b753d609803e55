// Package tui provides an interactive terminal user interface for docsift.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library lists and removes documents.
	Library driving.LibraryService

	// Search finds documents containing a query.
	Search driving.SearchService

	// Upload adds files to the library. Optional.
	Upload driving.UploadService

	// Settings reads and saves preferences. Optional.
	Settings driving.SettingsService
}

// Options holds display preferences taken from settings.
type Options struct {
	// Locale collates names when sorting by name.
	Locale string

	// Sort is the initial library sort key.
	Sort domain.SortKey

	// Now is the reference time for relative upload dates. Nil uses time.Now.
	Now func() time.Time
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	library driving.LibraryService,
	search driving.SearchService,
	upload driving.UploadService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Library:  library,
		Search:   search,
		Upload:   upload,
		Settings: settings,
	}
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
