package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docsift/internal/adapters/driven/config/file"
	filestore "github.com/custodia-labs/docsift/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/docsift/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsift/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docsift/internal/adapters/driving/cli"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/services"
	"github.com/custodia-labs/docsift/internal/extractors/docx"
	"github.com/custodia-labs/docsift/internal/extractors/pdf"
	"github.com/custodia-labs/docsift/internal/extractors/plaintext"
	"github.com/custodia-labs/docsift/internal/logger"
)

// buildServices reads settings from the config directory, opens the
// configured library backend and wires the core services around it.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configStore := openConfig(opts.ConfigDir)
	settingsService := services.NewSettingsService(configStore)
	if err := settingsService.Validate(); err != nil {
		logger.Warn("invalid settings in %s, using defaults for them: %v", configStore.Path(), err)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = settings.Storage.DataDir
	}
	store, err := openStore(settings.Storage.Backend, dataDir)
	if err != nil {
		return nil, err
	}

	library := services.OpenLibrary(context.Background(), store, nil)

	snippets := services.SnippetOptions{
		ContextRadius:    settings.Search.ContextRadius,
		PageWindow:       settings.Search.PageWindow,
		LiteralHighlight: settings.Search.LiteralHighlight,
	}
	search := services.NewSearchService(library, snippets)
	interactive := services.NewSearchService(library, snippets)
	interactive.SetDelay(settings.Search.Delay, nil)

	registry := services.NewExtractorRegistry(pdf.New(), docx.New(), plaintext.New())
	upload := services.NewUploadService(registry, library, settings.Upload.MaxFileSize)

	logger.Debug("Storage: %s, config: %s", settings.Storage.Backend, configStore.Path())

	return &cli.Services{
		Library:           library,
		Search:            search,
		InteractiveSearch: interactive,
		Upload:            upload,
		Settings:          settingsService,
		Config:            configStore,
		Locale:            settings.Library.Locale,
		DefaultSort:       settings.Library.Sort,
		WatchDebounce:     settings.Watch.Debounce,
		Close:             library.Close,
	}, nil
}

// openConfig opens config.toml in configDir. A directory that cannot be
// created or a file that cannot be parsed leaves the session on an
// in-memory config with defaults, and nothing set during it is saved.
func openConfig(configDir string) driven.ConfigStore {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("config unavailable, running on defaults without saving: %v", err)
		return memory.NewConfigStore()
	}
	return store
}

// openStore returns the persistence adapter for backend.
func openStore(backend domain.StorageBackend, dataDir string) (driven.LibraryStore, error) {
	switch backend {
	case domain.StorageMemory:
		return memory.NewLibraryStore(), nil
	case domain.StorageJSON:
		store, err := filestore.NewLibraryStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening json store: %w", err)
		}
		return store, nil
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}
}
