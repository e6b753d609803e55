package domain

import "time"

// StorageBackend selects where the library is persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite keeps documents in a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageJSON keeps documents in a single JSON file.
	StorageJSON StorageBackend = "json"

	// StorageMemory keeps documents for the lifetime of the process only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageJSON, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend is the persistence adapter.
	Backend StorageBackend

	// DataDir overrides the default data directory. Empty uses ~/.docsift.
	DataDir string
}

// UploadSettings holds upload limits.
type UploadSettings struct {
	// MaxFileSize is the per-file cap in bytes.
	MaxFileSize int64
}

// SearchSettings holds search and snippet tunables.
type SearchSettings struct {
	// ContextRadius is the number of characters kept either side of a match.
	ContextRadius int

	// PageWindow is the number of characters treated as one page.
	PageWindow int

	// Delay is waited before each interactive search.
	Delay time.Duration

	// LiteralHighlight escapes the query before highlighting.
	// When false the query is tried as a regular expression first.
	LiteralHighlight bool
}

// LibrarySettings holds library display preferences.
type LibrarySettings struct {
	// Sort is the default listing order.
	Sort SortKey

	// Locale is the BCP 47 tag used to collate names.
	Locale string
}

// WatchSettings holds drop-folder watcher configuration.
type WatchSettings struct {
	// Debounce is the minimum spacing between ingested files.
	Debounce time.Duration
}

// Settings holds all user-configurable settings.
type Settings struct {
	Storage StorageSettings
	Upload  UploadSettings
	Search  SearchSettings
	Library LibrarySettings
	Watch   WatchSettings
}

// Default tunables.
const (
	DefaultContextRadius = 50
	DefaultPageWindow    = 500
	DefaultSearchDelay   = 100 * time.Millisecond
	DefaultLocale        = "en"
	DefaultWatchDebounce = 250 * time.Millisecond
)

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Upload: UploadSettings{
			MaxFileSize: MaxUploadSize,
		},
		Search: SearchSettings{
			ContextRadius:    DefaultContextRadius,
			PageWindow:       DefaultPageWindow,
			Delay:            DefaultSearchDelay,
			LiteralHighlight: true,
		},
		Library: LibrarySettings{
			Sort:   SortByDate,
			Locale: DefaultLocale,
		},
		Watch: WatchSettings{
			Debounce: DefaultWatchDebounce,
		},
	}
}
