package driving

import (
	"context"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

// UploadFile is one file submitted for upload.
type UploadFile struct {
	// Name is the original filename.
	Name string

	// MIMEType is the reported type. Empty means detect from content.
	MIMEType string

	// Content is the raw file. When nil, Open is used.
	Content []byte

	// Open reads the raw file lazily. Used when Content is nil.
	Open func() ([]byte, error)

	// Size is the byte length reported before reading. Zero means len(Content).
	Size int64
}

// ProgressFunc receives every status transition of every file.
type ProgressFunc func(domain.UploadProgress)

// UploadService turns files into library documents.
type UploadService interface {
	// Process handles files one at a time in submission order.
	// One file failing never stops the others. The returned slice holds the
	// final status of each file; the error aggregates every failure and is
	// nil when all files succeeded.
	Process(ctx context.Context, files []UploadFile, progress ProgressFunc) ([]domain.UploadProgress, error)

	// SupportedMIMETypes returns the MIME types accepted for upload.
	SupportedMIMETypes() []string
}
