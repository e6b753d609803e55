package upload

import "errors"

// ErrNoUploadService indicates that no upload service was provided.
var ErrNoUploadService = errors.New("upload service is required")
