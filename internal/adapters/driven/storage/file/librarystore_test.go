package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docsift/internal/core/domain"
)

func TestLibraryStore_LoadMissing(t *testing.T) {
	store, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)

	docs, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestLibraryStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLibraryStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	pages := 2
	want := []domain.Document{
		{ID: "1", Name: "a.pdf", Content: "x", Type: domain.TypePDF, Size: 10,
			UploadDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), PageCount: &pages},
		{ID: "2", Name: "b.txt", Content: "y", Type: domain.TypePlainText, Size: 1,
			UploadDate: time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC)},
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), store.Path())
}

func TestLibraryStore_PersistedFormat(t *testing.T) {
	store, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)

	doc := domain.Document{ID: "1", Name: "a.txt", Type: domain.TypePlainText,
		UploadDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	require.NoError(t, store.Save(context.Background(), []domain.Document{doc}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"uploadDate":"2024-01-02T03:04:05Z"`)
	assert.NotContains(t, string(data), "pageCount")
}

func TestLibraryStore_SaveEmptyRemovesSlot(t *testing.T) {
	store, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.Document{{ID: "1"}}))
	require.NoError(t, store.Save(ctx, nil))

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, store.Save(ctx, nil))
}

func TestLibraryStore_LoadCorrupt(t *testing.T) {
	store, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0600))

	_, err = store.Load(context.Background())

	assert.Error(t, err)
}
