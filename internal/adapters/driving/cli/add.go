package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/adapters/driving/localfile"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/logger"
)

var addCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add files to the library",
	Long: `Extracts the text of each file and adds it to the library.

Supported formats are PDF, DOCX and plain text, up to the configured size
limit (10MB by default). Files are processed in the order given; a failed
file does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	files := localfile.FromPaths(localfile.Expand(args))

	statuses, err := uploadService.Process(cmd.Context(), files, func(p domain.UploadProgress) {
		logger.Debug("%s: %s (%d%%)", p.FileName, p.Status, p.Progress)
	})

	failed := 0
	for i := range statuses {
		if !printUploadResult(cmd, statuses[i]) {
			failed++
		}
	}

	if err != nil {
		logger.Debug("upload errors: %v", err)
		return fmt.Errorf("%d of %d files could not be added", failed, len(files))
	}
	return nil
}

// printUploadResult prints one line per file and reports whether it was added.
func printUploadResult(cmd *cobra.Command, p domain.UploadProgress) bool {
	if p.Status == domain.UploadStatusCompleted && p.Document != nil {
		doc := p.Document
		cmd.Printf("✓ %s (%s, %s) %s\n", doc.Name, domain.TypeLabel(doc.Type), formatSize(doc.Size), doc.ID)
		return true
	}
	cmd.Printf("✗ %s: %s\n", p.FileName, p.Error)
	return false
}
