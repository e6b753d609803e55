package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Upload Errors. Each is reported per file and never aborts a batch.

	// ErrUnsupportedFileType indicates the file's MIME type is not accepted.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates the file exceeds the upload size cap.
	ErrFileTooLarge = errors.New("file too large")

	// ErrExtractionFailed indicates the format parser rejected the file.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrReadFailed indicates the raw file could not be read.
	ErrReadFailed = errors.New("read failed")
)
