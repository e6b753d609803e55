package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/adapters/driving/watch"
	"github.com/custodia-labs/docsift/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Add files dropped into a directory",
	Long: `Watches a directory and adds every PDF, DOCX or text file created in it.

A file is added once it has not changed for watch.debounce_ms milliseconds,
and files are added at most one per debounce period. Files already in the
directory are not added; use "docsift add DIR/*" for those. Hidden files
are ignored. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	w := watch.New(args[0], uploadService, watchDebounce).
		OnResult(func(p domain.UploadProgress) {
			printUploadResult(cmd, p)
		})

	cmd.Printf("Watching %s for new documents. Press Ctrl+C to stop.\n", args[0])
	return w.Run(cmd.Context())
}
