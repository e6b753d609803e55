// Package cli implements the docsift command line interface with cobra.
//
// Commands reach the core through package-level services. cmd/docsift
// installs a factory with SetServiceFactory; the services are built on
// first use so global flags such as --data-dir are already parsed.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// skipServices marks commands that run without building services.
const skipServices = "skip-services"

// Options holds the global flag values passed to the service factory.
type Options struct {
	DataDir   string
	ConfigDir string
}

// Services holds everything commands need from the core.
type Services struct {
	Library  driving.LibraryService
	Search   driving.SearchService
	Upload   driving.UploadService
	Settings driving.SettingsService
	Config   driven.ConfigStore

	// InteractiveSearch pauses before searching so the TUI can show a
	// searching state. Nil falls back to Search.
	InteractiveSearch driving.SearchService

	// Locale collates names when sorting the library.
	Locale string

	// DefaultSort is used when --sort is not given.
	DefaultSort domain.SortKey

	// WatchDebounce spaces files ingested by the watcher.
	WatchDebounce time.Duration

	// Close releases storage. May be nil.
	Close func() error
}

// ServiceFactory builds services for the given options.
type ServiceFactory func(opts Options) (*Services, error)

var (
	libraryService    driving.LibraryService
	searchService     driving.SearchService
	interactiveSearch driving.SearchService
	uploadService     driving.UploadService
	settingsService   driving.SettingsService
	configStore       driven.ConfigStore

	libraryLocale = domain.DefaultLocale
	defaultSort   = domain.SortByDate
	watchDebounce = domain.DefaultWatchDebounce
	closeServices func() error

	serviceFactory ServiceFactory
	globalOpts     Options
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "docsift",
	Short: "Search your documents from the terminal",
	Long: `docsift keeps a local library of PDF, DOCX and plain text documents
and finds every occurrence of a phrase across them.

Add files with "docsift add", then search with "docsift search" or browse
interactively with "docsift tui".`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&globalOpts.DataDir, "data-dir", "", "library data directory (default ~/.docsift/data)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigDir, "config-dir", "", "config directory (default ~/.docsift)")
}

// SetServiceFactory installs the factory used to build services.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetServices installs already built services.
func SetServices(s *Services) {
	libraryService = s.Library
	searchService = s.Search
	interactiveSearch = s.InteractiveSearch
	uploadService = s.Upload
	settingsService = s.Settings
	configStore = s.Config
	closeServices = s.Close

	if s.Locale != "" {
		libraryLocale = s.Locale
	}
	if s.DefaultSort.IsValid() {
		defaultSort = s.DefaultSort
	}
	if s.WatchDebounce > 0 {
		watchDebounce = s.WatchDebounce
	}
}

// Execute runs the root command with ctx and releases services afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if closeServices != nil {
			if err := closeServices(); err != nil {
				logger.Warn("closing storage: %v", err)
			}
		}
		logger.Sync()
	}()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipServices] == "true" || libraryService != nil || serviceFactory == nil {
		return nil
	}

	s, err := serviceFactory(globalOpts)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(s)
	return nil
}

// requireLibrary returns an error when the library is not configured.
func requireLibrary() error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	return nil
}
