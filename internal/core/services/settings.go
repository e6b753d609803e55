package services

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/language"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend   = "storage.backend"
	keyStorageDataDir   = "storage.data_dir"
	keyUploadMaxSize    = "upload.max_file_size"
	keyContextRadius    = "search.context_radius"
	keyPageWindow       = "search.page_window"
	keySearchDelayMS    = "search.delay_ms"
	keyLiteralHighlight = "search.literal_highlight"
	keyLibrarySort      = "library.sort"
	keyLibraryLocale    = "library.locale"
	keyWatchDebounceMS  = "watch.debounce_ms"
)

// SettingKeys returns every recognised config key.
func SettingKeys() []string {
	return []string{
		keyStorageBackend,
		keyStorageDataDir,
		keyUploadMaxSize,
		keyContextRadius,
		keyPageWindow,
		keySearchDelayMS,
		keyLiteralHighlight,
		keyLibrarySort,
		keyLibraryLocale,
		keyWatchDebounceMS,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Missing or unrecognised values fall back
// to their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Upload: domain.UploadSettings{
			MaxFileSize: int64(s.getPositiveInt(keyUploadMaxSize, int(defaults.Upload.MaxFileSize))),
		},
		Search: domain.SearchSettings{
			ContextRadius:    s.getInt(keyContextRadius, defaults.Search.ContextRadius),
			PageWindow:       s.getPositiveInt(keyPageWindow, defaults.Search.PageWindow),
			Delay:            s.getMillis(keySearchDelayMS, defaults.Search.Delay),
			LiteralHighlight: s.getBool(keyLiteralHighlight, defaults.Search.LiteralHighlight),
		},
		Library: domain.LibrarySettings{
			Sort:   s.getSortKey(defaults.Library.Sort),
			Locale: s.getString(keyLibraryLocale, defaults.Library.Locale),
		},
		Watch: domain.WatchSettings{
			Debounce: s.getMillis(keyWatchDebounceMS, defaults.Watch.Debounce),
		},
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyUploadMaxSize, settings.Upload.MaxFileSize},
		{keyContextRadius, settings.Search.ContextRadius},
		{keyPageWindow, settings.Search.PageWindow},
		{keySearchDelayMS, settings.Search.Delay.Milliseconds()},
		{keyLiteralHighlight, settings.Search.LiteralHighlight},
		{keyLibrarySort, settings.Library.Sort.String()},
		{keyLibraryLocale, settings.Library.Locale},
		{keyWatchDebounceMS, settings.Watch.Debounce.Milliseconds()},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Validate checks the stored configuration and reports every invalid key.
func (s *SettingsService) Validate() error {
	var err error

	if v := s.configStore.GetString(keyStorageBackend); v != "" && !domain.StorageBackend(v).IsValid() {
		err = multierror.Append(err, fmt.Errorf("%s: unknown backend %q", keyStorageBackend, v))
	}
	if v, ok := s.configStore.Get(keyUploadMaxSize); ok && s.configStore.GetInt(keyUploadMaxSize) <= 0 {
		err = multierror.Append(err, fmt.Errorf("%s: must be a positive integer, got %v", keyUploadMaxSize, v))
	}
	if v, ok := s.configStore.Get(keyContextRadius); ok && s.configStore.GetInt(keyContextRadius) < 0 {
		err = multierror.Append(err, fmt.Errorf("%s: must not be negative, got %v", keyContextRadius, v))
	}
	if v, ok := s.configStore.Get(keyPageWindow); ok && s.configStore.GetInt(keyPageWindow) <= 0 {
		err = multierror.Append(err, fmt.Errorf("%s: must be a positive integer, got %v", keyPageWindow, v))
	}
	for _, key := range []string{keySearchDelayMS, keyWatchDebounceMS} {
		if v, ok := s.configStore.Get(key); ok && s.configStore.GetInt(key) < 0 {
			err = multierror.Append(err, fmt.Errorf("%s: must not be negative, got %v", key, v))
		}
	}
	if v := s.configStore.GetString(keyLibrarySort); v != "" && !domain.SortKey(v).IsValid() {
		err = multierror.Append(err, fmt.Errorf("%s: unknown sort key %q", keyLibrarySort, v))
	}
	if v := s.configStore.GetString(keyLibraryLocale); v != "" {
		if _, perr := language.Parse(v); perr != nil {
			err = multierror.Append(err, fmt.Errorf("%s: %w", keyLibraryLocale, perr))
		}
	}

	return err
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	b := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

func (s *SettingsService) getSortKey(defaultVal domain.SortKey) domain.SortKey {
	k := domain.SortKey(s.configStore.GetString(keyLibrarySort))
	if !k.IsValid() {
		return defaultVal
	}
	return k
}

// DefaultSettingValue returns the value used for key when it is not
// configured, in the form it is stored. Unknown keys return nil.
func DefaultSettingValue(key string) any {
	d := domain.DefaultSettings()
	switch key {
	case keyStorageBackend:
		return d.Storage.Backend.String()
	case keyStorageDataDir:
		return d.Storage.DataDir
	case keyUploadMaxSize:
		return d.Upload.MaxFileSize
	case keyContextRadius:
		return int64(d.Search.ContextRadius)
	case keyPageWindow:
		return int64(d.Search.PageWindow)
	case keySearchDelayMS:
		return d.Search.Delay.Milliseconds()
	case keyLiteralHighlight:
		return d.Search.LiteralHighlight
	case keyLibrarySort:
		return d.Library.Sort.String()
	case keyLibraryLocale:
		return d.Library.Locale
	case keyWatchDebounceMS:
		return d.Watch.Debounce.Milliseconds()
	default:
		return nil
	}
}
