package driving

import "github.com/custodia-labs/docsift/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults per key.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// Validate checks the current settings and reports every problem found.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
