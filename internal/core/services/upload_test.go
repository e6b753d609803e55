package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

func setupUpload(t *testing.T, extractors ...*mockExtractor) (*UploadService, *LibraryService) {
	t.Helper()
	if len(extractors) == 0 {
		extractors = []*mockExtractor{
			{types: []string{domain.TypePlainText}},
			{types: []string{domain.TypePDF}, text: "pdf text", pageCount: intPtr(3)},
			{types: []string{domain.TypeDOCX}, text: "docx text"},
		}
	}
	reg := NewExtractorRegistry()
	for _, e := range extractors {
		reg.Register(e)
	}
	lib, _ := newTestLibrary(t)
	return NewUploadService(reg, lib, 0), lib
}

// TestUploadService_Process_Success tests a batch of supported files
func TestUploadService_Process_Success(t *testing.T) {
	svc, lib := setupUpload(t)
	files := []driving.UploadFile{
		{Name: "notes.txt", MIMEType: domain.TypePlainText, Content: []byte("hello world")},
		{Name: "paper.pdf", MIMEType: domain.TypePDF, Content: []byte("%PDF-1.4")},
	}

	var events []domain.UploadProgress
	statuses, err := svc.Process(context.Background(), files, func(p domain.UploadProgress) {
		events = append(events, p)
	})

	require.NoError(t, err)
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.Equal(t, domain.UploadStatusCompleted, s.Status)
		assert.Equal(t, 100, s.Progress)
		require.NotNil(t, s.Document)
	}
	assert.Equal(t, "hello world", statuses[0].Document.Content)
	assert.Equal(t, int64(11), statuses[0].Document.Size)
	require.NotNil(t, statuses[1].Document.PageCount)
	assert.Equal(t, 3, *statuses[1].Document.PageCount)

	// 2 queued, then processing and completed for each file.
	require.Len(t, events, 6)
	assert.Equal(t, domain.UploadStatusUploading, events[0].Status)
	assert.Equal(t, domain.UploadStatusProcessing, events[2].Status)
	assert.Equal(t, 50, events[2].Progress)
	assert.Equal(t, domain.UploadStatusCompleted, events[3].Status)

	docs, _ := lib.List(context.Background())
	assert.Equal(t, []string{"notes.txt", "paper.pdf"}, names(docs))
}

// TestUploadService_Process_IsolatesFailures tests that one bad file does not stop the batch
func TestUploadService_Process_IsolatesFailures(t *testing.T) {
	svc, lib := setupUpload(t)
	files := []driving.UploadFile{
		{Name: "image.png", MIMEType: "image/png", Content: []byte{0x89, 'P', 'N', 'G'}},
		{Name: "huge.txt", MIMEType: domain.TypePlainText, Size: domain.MaxUploadSize + 1},
		{Name: "ok.txt", MIMEType: domain.TypePlainText, Content: []byte("fine")},
		{Name: "gone.txt", MIMEType: domain.TypePlainText, Open: func() ([]byte, error) {
			return nil, errors.New("permission denied")
		}},
	}

	statuses, err := svc.Process(context.Background(), files, nil)

	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 3)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.ErrorIs(t, err, domain.ErrReadFailed)

	assert.Equal(t, "Unsupported file type: image/png", statuses[0].Error)
	assert.Equal(t, "File size exceeds 10MB limit", statuses[1].Error)
	assert.Equal(t, domain.UploadStatusCompleted, statuses[2].Status)
	assert.Equal(t, "Failed to read file", statuses[3].Error)
	for _, i := range []int{0, 1, 3} {
		assert.Equal(t, domain.UploadStatusError, statuses[i].Status)
	}

	assert.Equal(t, 1, lib.Count(context.Background()))
}

// TestUploadService_Process_OversizedContent tests the cap against actual bytes
func TestUploadService_Process_OversizedContent(t *testing.T) {
	reg := NewExtractorRegistry(&mockExtractor{types: []string{domain.TypePlainText}})
	lib, _ := newTestLibrary(t)
	svc := NewUploadService(reg, lib, 8)

	statuses, err := svc.Process(context.Background(), []driving.UploadFile{
		{Name: "long.txt", MIMEType: domain.TypePlainText, Content: []byte("more than eight")},
	}, nil)

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Equal(t, "File size exceeds 8 bytes limit", statuses[0].Error)
}

// TestUploadService_Process_PDFFailure tests the PDF-specific message
func TestUploadService_Process_PDFFailure(t *testing.T) {
	svc, _ := setupUpload(t,
		&mockExtractor{types: []string{domain.TypePDF}, err: errMockExtract},
		&mockExtractor{types: []string{domain.TypeDOCX}, err: errMockExtract},
	)

	statuses, err := svc.Process(context.Background(), []driving.UploadFile{
		{Name: "scan.pdf", MIMEType: domain.TypePDF, Content: []byte("%PDF")},
		{Name: "broken.docx", MIMEType: domain.TypeDOCX, Content: []byte("PK")},
	}, nil)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.True(t, strings.HasPrefix(statuses[0].Error, "PDF processing failed."))
	assert.Contains(t, statuses[0].Error, "use a TXT/DOCX file instead")
	assert.Equal(t, errMockExtract.Error(), statuses[1].Error)
}

// TestUploadService_Process_DetectsType tests sniffing when no type is reported
func TestUploadService_Process_DetectsType(t *testing.T) {
	svc, _ := setupUpload(t)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<xml/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	statuses, err := svc.Process(context.Background(), []driving.UploadFile{
		{Name: "readme", Content: []byte("just some text\n")},
		{Name: "letter", Content: buf.Bytes()},
		{Name: "blob", Content: []byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x00}},
	}, nil)

	require.Error(t, err)
	assert.Equal(t, domain.TypePlainText, statuses[0].Document.Type)
	assert.Equal(t, domain.TypeDOCX, statuses[1].Document.Type)
	assert.Equal(t, domain.UploadStatusError, statuses[2].Status)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

// TestUploadService_Process_Cancelled tests that a cancelled batch marks remaining files
func TestUploadService_Process_Cancelled(t *testing.T) {
	svc, lib := setupUpload(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	statuses, err := svc.Process(ctx, []driving.UploadFile{
		{Name: "a.txt", MIMEType: domain.TypePlainText, Content: []byte("a")},
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.UploadStatusError, statuses[0].Status)
	assert.Equal(t, 0, lib.Count(context.Background()))
}

// TestUploadService_SupportedMIMETypes tests the intersection with registered extractors
func TestUploadService_SupportedMIMETypes(t *testing.T) {
	svc, _ := setupUpload(t, &mockExtractor{types: []string{domain.TypePlainText, "text/markdown"}})

	assert.Equal(t, []string{domain.TypePlainText}, svc.SupportedMIMETypes())
}

// TestDetectMIMEType tests content sniffing
func TestDetectMIMEType(t *testing.T) {
	assert.Equal(t, domain.TypePDF, DetectMIMEType([]byte("%PDF-1.7\n%âãÏÓ\n")))
	assert.Equal(t, domain.TypePlainText, DetectMIMEType([]byte("plain words")))
	assert.Equal(t, domain.TypePlainText, DetectMIMEType([]byte(`{"json": true}`)))
	assert.NotContains(t, DetectMIMEType([]byte("plain words")), ";")
}

// TestMIMETypeForName tests extension mapping
func TestMIMETypeForName(t *testing.T) {
	assert.Equal(t, domain.TypePDF, MIMETypeForName("report.PDF"))
	assert.Equal(t, domain.TypeDOCX, MIMETypeForName("dir/letter.docx"))
	assert.Equal(t, domain.TypePlainText, MIMETypeForName("notes.txt"))
	assert.Equal(t, "", MIMETypeForName("README"))
	assert.Equal(t, "", MIMETypeForName("page.html"))
}
