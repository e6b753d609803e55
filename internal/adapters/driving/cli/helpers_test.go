package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/services"
	"github.com/custodia-labs/docsift/internal/extractors/plaintext"
)

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// testServices exposes the services installed by setupTestServices.
type testServices struct {
	library  *services.LibraryService
	settings *services.SettingsService
	config   *memory.ConfigStore
}

// setupTestServices installs real services over an in-memory library
// holding docs and restores the package state when the test ends.
func setupTestServices(t *testing.T, docs ...domain.Document) *testServices {
	t.Helper()

	lib := services.OpenLibrary(context.Background(), nil, testclock.NewClock(testEpoch))
	for _, d := range docs {
		_, err := lib.Add(context.Background(), d)
		require.NoError(t, err)
	}
	config := memory.NewConfigStore()
	settings := services.NewSettingsService(config)

	SetServices(&Services{
		Library:  lib,
		Search:   services.NewSearchService(lib, services.DefaultSnippetOptions()),
		Upload:   services.NewUploadService(services.NewExtractorRegistry(plaintext.New()), lib, 0),
		Settings: settings,
		Config:   config,
	})
	t.Cleanup(resetServices)

	return &testServices{library: lib, settings: settings, config: config}
}

func resetServices() {
	libraryService = nil
	searchService = nil
	interactiveSearch = nil
	uploadService = nil
	settingsService = nil
	configStore = nil
	closeServices = nil
	libraryLocale = domain.DefaultLocale
	defaultSort = domain.SortByDate
	watchDebounce = domain.DefaultWatchDebounce
}

// execute runs the root command with args and returns its output.
// Flags are reset first since cobra keeps values between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func textDoc(name, content string) domain.Document {
	return domain.Document{
		Name:    name,
		Type:    domain.TypePlainText,
		Content: content,
		Size:    int64(len(content)),
	}
}
