package domain

// UploadStatus is the processing state of a single file in a batch.
type UploadStatus string

// Upload states, in the order a file moves through them.
const (
	UploadStatusUploading  UploadStatus = "uploading"
	UploadStatusProcessing UploadStatus = "processing"
	UploadStatusCompleted  UploadStatus = "completed"
	UploadStatusError      UploadStatus = "error"
)

// IsTerminal reports whether no further transitions follow.
func (s UploadStatus) IsTerminal() bool {
	return s == UploadStatusCompleted || s == UploadStatusError
}

// UploadProgress reports the state of one file in an upload batch.
type UploadProgress struct {
	// FileName is the name of the file being processed.
	FileName string

	// Progress is a percentage: 0 when queued, 50 while extracting, 100 when done.
	Progress int

	// Status is the current state.
	Status UploadStatus

	// Error is the user-facing failure message when Status is UploadStatusError.
	Error string

	// Document is the added document when Status is UploadStatusCompleted.
	Document *Document
}

// MaxUploadSize is the default per-file size cap (10 MB).
const MaxUploadSize int64 = 10 * 1024 * 1024
