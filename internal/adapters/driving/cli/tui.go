package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docsift.

The TUI searches the library as you type, lists and removes documents,
adds files and edits settings.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Open
  Esc      - Back
  /        - Search from the menu
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the TUI from the configured services. The interactive
// search service is preferred when set.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	search := interactiveSearch
	if search == nil {
		search = searchService
	}

	ports := tui.NewPorts(libraryService, search, uploadService, settingsService)
	app, err := tui.NewApp(ports, tui.Options{
		Locale: libraryLocale,
		Sort:   defaultSort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}

	return app.WithContext(cmd.Context()), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}

	// Create and run the bubbletea program
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
