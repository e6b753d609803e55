package driven

// ConfigStore holds docsift's user settings as flat dotted keys such as
// "storage.backend", "search.context_radius" or "watch.debounce_ms".
// The settings service owns key names and defaults; a store only keeps
// values and converts them on read.
type ConfigStore interface {
	// Get returns the raw value under key and whether the key is set.
	// Integers read back as int64, the type TOML decodes them to.
	Get(key string) (any, bool)

	// GetString returns a string setting such as "library.sort".
	// Unset or non-string values read as "".
	GetString(key string) string

	// GetInt returns a numeric setting such as "upload.max_file_size".
	// Unset or non-numeric values read as 0, so callers check Get first
	// when 0 is meaningful.
	GetInt(key string) int

	// GetBool returns a flag such as "search.literal_highlight".
	GetBool(key string) bool

	// Set records value under key. File-backed stores write it out before
	// returning so "docsift config set" survives the process.
	Set(key string, value any) error

	// Save writes every setting out. Stores without backing storage
	// return nil.
	Save() error

	// Load replaces the in-memory settings with what is stored.
	Load() error

	// Path names where settings live, shown by "docsift config list".
	// In-memory stores return ":memory:".
	Path() string
}
