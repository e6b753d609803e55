package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))

// isTerminal reports whether stream is an interactive terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalHighlight renders a match for display on a terminal.
func terminalHighlight(match string) string {
	return matchStyle.Render(match)
}

// plainHighlight wraps a match in brackets for piped output.
func plainHighlight(match string) string {
	return "[" + match + "]"
}

// highlighterFor picks a match renderer for the command output.
func highlighterFor(cmd *cobra.Command) func(string) string {
	if isTerminal(cmd.OutOrStdout()) {
		return terminalHighlight
	}
	return plainHighlight
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// formatSize renders a byte count as KiB/MiB.
func formatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// formatPages renders the page count column.
func formatPages(doc *domain.Document) string {
	if doc.PageCount == nil {
		return "-"
	}
	if *doc.PageCount == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", *doc.PageCount)
}

// shortID trims a UUID to its first block for tables.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// flatten collapses whitespace runs so snippets print on one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
