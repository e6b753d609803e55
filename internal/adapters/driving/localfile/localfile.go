// Package localfile turns paths on the local filesystem into upload files.
// It is shared by the CLI, the TUI upload view and the drop-folder watcher.
package localfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/core/services"
)

// FromPath describes a file on disk for the upload service. The file is
// read lazily. A stat failure leaves Size at zero so the read error is
// reported by the upload service.
func FromPath(path string) driving.UploadFile {
	file := driving.UploadFile{
		Name:     filepath.Base(path),
		MIMEType: services.MIMETypeForName(path),
		Open:     func() ([]byte, error) { return os.ReadFile(path) },
	}
	if info, err := os.Stat(path); err == nil {
		file.Size = info.Size()
	}
	return file
}

// FromPaths calls FromPath for each path.
func FromPaths(paths []string) []driving.UploadFile {
	files := make([]driving.UploadFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, FromPath(p))
	}
	return files
}

// Expand resolves a leading "~/" and glob patterns in each argument,
// skipping directories and duplicates. A pattern matching nothing is kept
// as given so the caller can report it.
func Expand(patterns []string) []string {
	seen := make(map[string]bool)
	paths := make([]string, 0, len(patterns))

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		pattern = expandHome(pattern)

		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && info.IsDir() {
				continue
			}
			add(m)
		}
	}

	return paths
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
