package library

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/services"
)

var testEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testDocuments() []domain.Document {
	return []domain.Document{
		{ID: "a", Name: "beta.txt", Type: domain.TypePlainText, Size: 2048, UploadDate: testEpoch.Add(-2 * time.Hour)},
		{ID: "b", Name: "Alpha.pdf", Type: domain.TypePDF, Size: 512, UploadDate: testEpoch.Add(-time.Hour)},
		{ID: "c", Name: "gamma.docx", Type: domain.TypeDOCX, Size: 4096, UploadDate: testEpoch.Add(-3 * time.Hour)},
	}
}

// newTestView returns a sized view over an in-memory library with docs loaded.
func newTestView(t *testing.T, docs ...domain.Document) (*View, *services.LibraryService) {
	t.Helper()
	lib := services.OpenLibrary(context.Background(), nil, testclock.NewClock(testEpoch))
	for _, d := range docs {
		_, err := lib.Add(context.Background(), d)
		require.NoError(t, err)
	}

	v := NewView(nil, nil, lib, "en", domain.SortByDate).WithClock(func() time.Time { return testEpoch })
	v.SetDimensions(100, 30)
	v.Update(v.Init()())
	return v, lib
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func names(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].Name
	}
	return out
}

// TestNewView tests view construction defaults
func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil, "en", "bogus")

	require.NotNil(t, v)
	assert.False(t, v.Ready())
	assert.Equal(t, domain.SortByDate, v.SortKey())
	assert.Equal(t, domain.TypeAll, v.TypeFilter())
	assert.Nil(t, v.SelectedDocument())
}

// TestView_Init_NoService tests loading without a library
func TestView_Init_NoService(t *testing.T) {
	v := NewView(nil, nil, nil, "en", domain.SortByDate)

	msg := v.Init()()

	loaded, ok := msg.(messages.DocumentsLoaded)
	require.True(t, ok)
	assert.ErrorIs(t, loaded.Err, ErrNoLibraryService)
}

// TestView_Load tests that loaded documents are sorted by date
func TestView_Load(t *testing.T) {
	v, _ := newTestView(t, testDocuments()...)

	assert.Equal(t, []string{"Alpha.pdf", "beta.txt", "gamma.docx"}, names(v.Documents()))

	out := v.View()
	assert.Contains(t, out, "3 of 3 documents")
	assert.Contains(t, out, "1 hour ago")
	assert.Contains(t, out, "2.0 KiB")
}

// TestView_Load_Error tests that a load error is shown
func TestView_Load_Error(t *testing.T) {
	v, _ := newTestView(t)

	v.Update(messages.DocumentsLoaded{Err: errors.New("disk gone")})

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), "disk gone")
}

// TestView_Empty tests the empty library hint
func TestView_Empty(t *testing.T) {
	v, _ := newTestView(t)

	assert.Contains(t, v.View(), "No documents. Press a to add files.")
}

// TestView_Sort tests cycling sort keys
func TestView_Sort(t *testing.T) {
	v, _ := newTestView(t, testDocuments()...)

	v.Update(key("s"))
	assert.Equal(t, domain.SortByName, v.SortKey())
	assert.Equal(t, []string{"Alpha.pdf", "beta.txt", "gamma.docx"}, names(v.Documents()))

	v.Update(key("s"))
	assert.Equal(t, domain.SortBySize, v.SortKey())
	assert.Equal(t, []string{"gamma.docx", "beta.txt", "Alpha.pdf"}, names(v.Documents()))

	v.Update(key("s"))
	assert.Equal(t, domain.SortByDate, v.SortKey())
}

// TestView_Filter tests cycling the type filter
func TestView_Filter(t *testing.T) {
	v, _ := newTestView(t, testDocuments()...)

	v.Update(key("t"))

	assert.Equal(t, domain.TypePDF, v.TypeFilter())
	assert.Equal(t, []string{"Alpha.pdf"}, names(v.Documents()))
	assert.Contains(t, v.View(), "1 of 3 documents")
}

// TestView_Filter_ClampsSelection tests that filtering keeps the cursor in range
func TestView_Filter_ClampsSelection(t *testing.T) {
	v, _ := newTestView(t, testDocuments()...)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	v.Update(key("t"))

	require.NotNil(t, v.SelectedDocument())
	assert.Equal(t, "Alpha.pdf", v.SelectedDocument().Name)
}

// TestView_Navigation tests moving the cursor
func TestView_Navigation(t *testing.T) {
	v, _ := newTestView(t, testDocuments()...)

	v.Update(key("j"))
	assert.Equal(t, "beta.txt", v.SelectedDocument().Name)
	v.Update(key("j"))
	v.Update(key("j"))
	assert.Equal(t, "gamma.docx", v.SelectedDocument().Name)
	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "beta.txt", v.SelectedDocument().Name)
}

// TestView_Select tests opening a document
func TestView_Select(t *testing.T) {
	v, _ := newTestView(t, testDocuments()...)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.DocumentSelected)
	require.True(t, ok)
	assert.Equal(t, "b", msg.Document.ID)
	assert.Empty(t, msg.Query)
	assert.Equal(t, messages.ViewLibrary, msg.From)
}

// TestView_Remove_Confirmed tests removing after confirmation
func TestView_Remove_Confirmed(t *testing.T) {
	v, lib := newTestView(t, testDocuments()...)

	_, cmd := v.Update(key("d"))
	assert.Nil(t, cmd)
	assert.True(t, v.Confirming())
	assert.Contains(t, v.View(), "Remove Alpha.pdf? [y/N]")

	_, cmd = v.Update(key("y"))
	require.NotNil(t, cmd)
	assert.False(t, v.Confirming())

	removed, ok := cmd().(messages.DocumentRemoved)
	require.True(t, ok)
	assert.Equal(t, "b", removed.ID)
	assert.NoError(t, removed.Err)
	assert.Equal(t, 2, lib.Count(context.Background()))

	_, cmd = v.Update(removed)
	require.NotNil(t, cmd)
}

// TestView_Remove_Cancelled tests that any other key cancels removal
func TestView_Remove_Cancelled(t *testing.T) {
	v, lib := newTestView(t, testDocuments()...)

	v.Update(key("d"))
	_, cmd := v.Update(key("n"))

	assert.Nil(t, cmd)
	assert.False(t, v.Confirming())
	assert.Equal(t, 3, lib.Count(context.Background()))
}

// TestView_LibraryChanged tests reloading after an external change
func TestView_LibraryChanged(t *testing.T) {
	v, lib := newTestView(t, testDocuments()...)
	_, err := lib.Add(context.Background(), domain.Document{Name: "delta.txt", Type: domain.TypePlainText})
	require.NoError(t, err)

	_, cmd := v.Update(messages.LibraryChanged{})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Len(t, v.Documents(), 4)
}

// TestView_Navigation_Keys tests keys that leave the view
func TestView_Navigation_Keys(t *testing.T) {
	v, _ := newTestView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())

	_, cmd = v.Update(key("a"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewUpload}, cmd())
}
