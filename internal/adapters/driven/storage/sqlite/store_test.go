package sqlite

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

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "docsift-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	return store, tempDir
}

func testDocs() []domain.Document {
	pages := 4
	date := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	return []domain.Document{
		{ID: "b", Name: "b.pdf", Content: "bravo", Type: domain.TypePDF, Size: 900, UploadDate: date, PageCount: &pages},
		{ID: "a", Name: "a.txt", Content: "alpha", Type: domain.TypePlainText, Size: 100, UploadDate: date.Add(time.Hour)},
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, dir := setupTestStore(t)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "library.db"), store.Path())
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)

	v, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestStore_LoadEmpty(t *testing.T) {
	store, _ := setupTestStore(t)
	defer store.Close()

	docs, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestStore_SaveLoad_PreservesOrderAndFields(t *testing.T) {
	store, _ := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()
	want := testDocs()

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_Save_ReplacesPrevious(t *testing.T) {
	store, _ := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testDocs()))
	require.NoError(t, store.Save(ctx, testDocs()[1:]))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	require.NoError(t, store.Save(ctx, nil))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Save_DuplicateIDRollsBack(t *testing.T) {
	store, _ := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testDocs()))

	dup := []domain.Document{{ID: "x", UploadDate: time.Now()}, {ID: "x", UploadDate: time.Now()}}
	assert.Error(t, store.Save(ctx, dup))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	store, dir := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testDocs()))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	v, err := reopened.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
