// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docsift/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
// Seq numbers the search so replies to superseded searches can be dropped.
type SearchCompleted struct {
	Seq     int
	Query   string
	Results []domain.SearchResult
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewLibrary lists library documents.
	ViewLibrary
	// ViewDocContent shows a document's extracted text.
	ViewDocContent
	// ViewUpload adds files to the library.
	ViewUpload
	// ViewSettings shows and edits preferences.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewLibrary:
		return "library"
	case ViewDocContent:
		return "doc_content"
	case ViewUpload:
		return "upload"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentsLoaded carries the library listing.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentSelected opens a document. Query, when set, is highlighted.
type DocumentSelected struct {
	Document domain.Document
	Query    string
	// From is the view to return to.
	From ViewType
}

// DocumentRemoved signals a document was removed.
type DocumentRemoved struct {
	ID  string
	Err error
}

// LibraryChanged signals that documents were added or removed.
type LibraryChanged struct{}

// UploadProgressed reports the state of one file in a batch.
type UploadProgressed struct {
	Progress domain.UploadProgress
}

// UploadFinished carries the final state of every file in a batch.
type UploadFinished struct {
	Statuses []domain.UploadProgress
	Err      error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.Settings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
