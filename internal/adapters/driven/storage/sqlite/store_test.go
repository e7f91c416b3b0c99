package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store := newTestStore(t)

	// Schema exists: inserting through the wrapper works immediately.
	err := store.FileStore().Save(context.Background(), &domain.FileRecord{
		OwnerID: "owner-1",
		Name:    "a.txt",
	})
	assert.NoError(t, err)
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-apply migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestFileStore_SaveAndGet_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	files := store.FileStore()
	ctx := context.Background()

	modified := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	record := &domain.FileRecord{
		OwnerID:        "owner-1",
		Name:           "report.pdf",
		Path:           "/docs/report.pdf",
		FileType:       "application/pdf",
		Category:       domain.CategoryDocument,
		Source:         domain.PlatformDropbox,
		SourceID:       "id:abc123",
		Identity:       domain.Identity{DropboxID: "id:abc123"},
		LastModified:   modified,
		Size:           2048,
		Content:        "quarterly figures",
		ContentSummary: "report.pdf - document file",
		ContentVector:  []float32{0.25, -0.5, 1.0},
		IsProcessed:    true,
	}

	require.NoError(t, files.Save(ctx, record))
	require.NotEmpty(t, record.ID)

	saved, err := files.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", saved.Name)
	assert.Equal(t, domain.CategoryDocument, saved.Category)
	assert.Equal(t, domain.PlatformDropbox, saved.Source)
	assert.Equal(t, "id:abc123", saved.Identity.DropboxID)
	assert.Equal(t, []float32{0.25, -0.5, 1.0}, saved.ContentVector)
	assert.True(t, saved.IsProcessed)
	assert.Equal(t, int64(2048), saved.Size)
	assert.True(t, modified.Equal(saved.LastModified))
}

func TestFileStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FileStore().Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileStore_Save_Upsert(t *testing.T) {
	store := newTestStore(t)
	files := store.FileStore()
	ctx := context.Background()

	record := &domain.FileRecord{OwnerID: "owner-1", Name: "a.txt"}
	require.NoError(t, files.Save(ctx, record))
	id := record.ID

	record.Name = "renamed.txt"
	record.IsProcessed = true
	require.NoError(t, files.Save(ctx, record))
	assert.Equal(t, id, record.ID)

	saved, err := files.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "renamed.txt", saved.Name)
	assert.True(t, saved.IsProcessed)
}

func TestFileStore_NilVector(t *testing.T) {
	store := newTestStore(t)
	files := store.FileStore()
	ctx := context.Background()

	record := &domain.FileRecord{OwnerID: "owner-1", Name: "no-vector.txt"}
	require.NoError(t, files.Save(ctx, record))

	saved, err := files.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Nil(t, saved.ContentVector)
}

func TestFileStore_ListByPlatform(t *testing.T) {
	store := newTestStore(t)
	files := store.FileStore()
	ctx := context.Background()

	require.NoError(t, files.Save(ctx, &domain.FileRecord{
		OwnerID: "owner-1", Name: "a", Source: domain.PlatformDropbox,
	}))
	require.NoError(t, files.Save(ctx, &domain.FileRecord{
		OwnerID: "owner-1", Name: "b", Source: domain.PlatformGitHub,
	}))
	require.NoError(t, files.Save(ctx, &domain.FileRecord{
		OwnerID: "owner-2", Name: "c", Source: domain.PlatformDropbox,
	}))

	records, err := files.ListByPlatform(ctx, "owner-1", domain.PlatformDropbox)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].Name)
}

func TestFileStore_ListUnprocessed(t *testing.T) {
	store := newTestStore(t)
	files := store.FileStore()
	ctx := context.Background()

	require.NoError(t, files.Save(ctx, &domain.FileRecord{
		OwnerID: "owner-1", Name: "done", IsProcessed: true,
	}))
	require.NoError(t, files.Save(ctx, &domain.FileRecord{
		OwnerID: "owner-1", Name: "pending",
	}))

	records, err := files.ListUnprocessed(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "pending", records[0].Name)
}

func TestFileStore_Delete(t *testing.T) {
	store := newTestStore(t)
	files := store.FileStore()
	ctx := context.Background()

	record := &domain.FileRecord{OwnerID: "owner-1", Name: "a"}
	require.NoError(t, files.Save(ctx, record))
	require.NoError(t, files.Delete(ctx, record.ID))

	_, err := files.Get(ctx, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegrationStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	integrations := store.IntegrationStore()
	ctx := context.Background()

	synced := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	integration := &domain.Integration{
		OwnerID:    "owner-1",
		Type:       domain.PlatformGoogle,
		Status:     domain.IntegrationConnected,
		Config:     map[string]string{"access_token": "tok", "folder": "root"},
		LastSynced: synced,
	}

	require.NoError(t, integrations.Save(ctx, integration))
	require.NotEmpty(t, integration.ID)

	saved, err := integrations.Get(ctx, integration.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformGoogle, saved.Type)
	assert.Equal(t, domain.IntegrationConnected, saved.Status)
	assert.Equal(t, "tok", saved.Config["access_token"])
	assert.True(t, synced.Equal(saved.LastSynced))
}

func TestIntegrationStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.IntegrationStore().Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIntegrationStore_List(t *testing.T) {
	store := newTestStore(t)
	integrations := store.IntegrationStore()
	ctx := context.Background()

	require.NoError(t, integrations.Save(ctx, &domain.Integration{
		OwnerID: "owner-1", Type: domain.PlatformDropbox,
	}))
	require.NoError(t, integrations.Save(ctx, &domain.Integration{
		OwnerID: "owner-1", Type: domain.PlatformGitHub,
	}))
	require.NoError(t, integrations.Save(ctx, &domain.Integration{
		OwnerID: "owner-2", Type: domain.PlatformDropbox,
	}))

	list, err := integrations.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestFloat32SliceToBytes_RoundTrip(t *testing.T) {
	vec := []float32{0, -1.5, 3.14159, 1e-8}
	assert.Equal(t, vec, bytesToFloat32Slice(float32SliceToBytes(vec)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
