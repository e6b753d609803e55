package watch

import "errors"

// ErrNoUploadService is returned by Run when no upload service is set.
var ErrNoUploadService = errors.New("watch: upload service is required")

// ErrNotDirectory is returned by Run when the watched path is a file.
var ErrNotDirectory = errors.New("watch: not a directory")
