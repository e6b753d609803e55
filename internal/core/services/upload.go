package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/go-multierror"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driven"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// Progress percentages reported per file.
const (
	progressQueued     = 0
	progressProcessing = 50
	progressDone       = 100
)

// pdfFailureMessage is shown when a PDF cannot be parsed.
const pdfFailureMessage = "PDF processing failed. This may be due to a complex PDF format " +
	"or network issues. Please try again or use a TXT/DOCX file instead."

// UploadError is a per-file upload failure. Its message is suitable for
// display; errors.Is matches the underlying domain error.
type UploadError struct {
	Message string
	Kind    error
}

func (e *UploadError) Error() string { return e.Message }

func (e *UploadError) Unwrap() error { return e.Kind }

// UploadService validates files, extracts their text and adds them to the
// library.
type UploadService struct {
	extractors  driven.ExtractorRegistry
	library     driving.LibraryService
	maxFileSize int64
}

// NewUploadService creates an upload service. A maxFileSize of zero or
// less uses domain.MaxUploadSize.
func NewUploadService(
	extractors driven.ExtractorRegistry, library driving.LibraryService, maxFileSize int64,
) *UploadService {
	if maxFileSize <= 0 {
		maxFileSize = domain.MaxUploadSize
	}
	return &UploadService{
		extractors:  extractors,
		library:     library,
		maxFileSize: maxFileSize,
	}
}

// SupportedMIMETypes returns the MIME types accepted for upload.
func (s *UploadService) SupportedMIMETypes() []string {
	supported := make([]string, 0, 3)
	registered := s.extractors.SupportedMIMETypes()
	for _, t := range domain.SupportedTypes() {
		for _, r := range registered {
			if r == t {
				supported = append(supported, t)
				break
			}
		}
	}
	return supported
}

// Process handles files one at a time in submission order.
func (s *UploadService) Process(
	ctx context.Context, files []driving.UploadFile, progress driving.ProgressFunc,
) ([]domain.UploadProgress, error) {
	if progress == nil {
		progress = func(domain.UploadProgress) {}
	}

	statuses := make([]domain.UploadProgress, len(files))
	for i := range files {
		statuses[i] = domain.UploadProgress{
			FileName: files[i].Name,
			Progress: progressQueued,
			Status:   domain.UploadStatusUploading,
		}
		progress(statuses[i])
	}

	var errs *multierror.Error
	for i := range files {
		if err := ctx.Err(); err != nil {
			statuses[i].Status = domain.UploadStatusError
			statuses[i].Error = err.Error()
			progress(statuses[i])
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", files[i].Name, err))
			continue
		}

		doc, err := s.processFile(ctx, files[i], func() {
			statuses[i].Progress = progressProcessing
			statuses[i].Status = domain.UploadStatusProcessing
			progress(statuses[i])
		})
		if err != nil {
			logger.Warn("upload of %s failed: %v", files[i].Name, err)
			statuses[i].Status = domain.UploadStatusError
			statuses[i].Error = err.Error()
			progress(statuses[i])
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", files[i].Name, err))
			continue
		}

		statuses[i].Progress = progressDone
		statuses[i].Status = domain.UploadStatusCompleted
		statuses[i].Document = doc
		progress(statuses[i])
	}

	return statuses, errs.ErrorOrNil()
}

// processFile validates, reads and extracts a single file.
// onProcessing is called once validation has passed.
func (s *UploadService) processFile(
	ctx context.Context, file driving.UploadFile, onProcessing func(),
) (*domain.Document, error) {
	if file.MIMEType != "" && !domain.IsSupportedType(file.MIMEType) {
		return nil, unsupported(file.MIMEType)
	}
	if file.Size > s.maxFileSize {
		return nil, s.tooLarge()
	}

	content := file.Content
	if content == nil && file.Open != nil {
		raw, err := file.Open()
		if err != nil {
			logger.Debug("read %s: %v", file.Name, err)
			return nil, &UploadError{Message: "Failed to read file", Kind: domain.ErrReadFailed}
		}
		content = raw
	}
	if content == nil {
		return nil, &UploadError{Message: "Failed to read file", Kind: domain.ErrReadFailed}
	}

	mimeType := file.MIMEType
	if mimeType == "" {
		mimeType = DetectMIMEType(content)
		if !domain.IsSupportedType(mimeType) {
			return nil, unsupported(mimeType)
		}
	}

	size := int64(len(content))
	if size > s.maxFileSize {
		return nil, s.tooLarge()
	}

	onProcessing()

	result, err := s.extractors.Extract(ctx, mimeType, content)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFileType) {
			return nil, unsupported(mimeType)
		}
		if mimeType == domain.TypePDF {
			logger.Debug("PDF processing failed for %s: %v", file.Name, err)
			return nil, &UploadError{Message: pdfFailureMessage, Kind: domain.ErrExtractionFailed}
		}
		return nil, &UploadError{Message: err.Error(), Kind: domain.ErrExtractionFailed}
	}

	return s.library.Add(ctx, domain.Document{
		Name:      file.Name,
		Content:   result.Text,
		Type:      mimeType,
		Size:      size,
		PageCount: result.PageCount,
	})
}

func (s *UploadService) tooLarge() error {
	const mb = 1024 * 1024
	limit := fmt.Sprintf("%d bytes", s.maxFileSize)
	if s.maxFileSize%mb == 0 {
		limit = fmt.Sprintf("%dMB", s.maxFileSize/mb)
	}
	return &UploadError{
		Message: "File size exceeds " + limit + " limit",
		Kind:    domain.ErrFileTooLarge,
	}
}

func unsupported(mimeType string) error {
	return &UploadError{
		Message: "Unsupported file type: " + mimeType,
		Kind:    domain.ErrUnsupportedFileType,
	}
}

// DetectMIMEType sniffs content and returns the matching supported type,
// or the detected type without parameters when none matches.
func DetectMIMEType(content []byte) string {
	m := mimetype.Detect(content)
	for _, t := range domain.SupportedTypes() {
		if m.Is(t) {
			return t
		}
	}
	// Text formats such as HTML or JSON descend from text/plain.
	for p := m.Parent(); p != nil; p = p.Parent() {
		if p.Is(domain.TypePlainText) {
			return domain.TypePlainText
		}
	}
	base, _, _ := strings.Cut(m.String(), ";")
	return base
}

// MIMETypeForName maps a file name's extension to a supported type.
// Unknown extensions return "" so the type is detected from content.
func MIMETypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return domain.TypePDF
	case ".docx":
		return domain.TypeDOCX
	case ".txt", ".text":
		return domain.TypePlainText
	default:
		return ""
	}
}
