package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

func dropboxRecord(id, nativeID string, modified time.Time, size int64) domain.FileRecord {
	return domain.FileRecord{
		ID:           id,
		Name:         "file-" + id,
		Source:       domain.PlatformDropbox,
		Identity:     domain.Identity{DropboxID: nativeID},
		LastModified: modified,
		Size:         size,
	}
}

func TestReconcile_UnmatchedItemIsNew(t *testing.T) {
	remote := []domain.RemoteItem{
		{NativeID: "id:new", Name: "fresh.txt", ModifiedAt: time.Now(), Size: 10},
	}

	result := Reconcile(remote, nil, domain.PlatformDropbox)

	require.Len(t, result.New, 1)
	assert.Equal(t, "fresh.txt", result.New[0].Name)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Unchanged)
}

func TestReconcile_IdenticalItemIsUnchanged(t *testing.T) {
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{dropboxRecord("rec-1", "id:abc", modified, 100)}
	remote := []domain.RemoteItem{
		{NativeID: "id:abc", Name: "same.txt", ModifiedAt: modified, Size: 100},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	assert.Empty(t, result.New)
	assert.Empty(t, result.Updated)
	require.Len(t, result.Unchanged, 1)
	assert.Equal(t, "rec-1", result.Unchanged[0].ID)
}

func TestReconcile_NewerTimestampIsUpdated(t *testing.T) {
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{dropboxRecord("rec-1", "id:abc", modified, 100)}
	remote := []domain.RemoteItem{
		{NativeID: "id:abc", Name: "newer.txt", ModifiedAt: modified.Add(time.Minute), Size: 100},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, "rec-1", result.Updated[0].LocalID)
	assert.Equal(t, "newer.txt", result.Updated[0].Item.Name)
}

func TestReconcile_OlderTimestampNotUpdated(t *testing.T) {
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{dropboxRecord("rec-1", "id:abc", modified, 100)}
	remote := []domain.RemoteItem{
		{NativeID: "id:abc", ModifiedAt: modified.Add(-time.Hour), Size: 100},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	assert.Empty(t, result.Updated)
	assert.Len(t, result.Unchanged, 1)
}

func TestReconcile_SizeChangeIsUpdated(t *testing.T) {
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{dropboxRecord("rec-1", "id:abc", modified, 100)}
	remote := []domain.RemoteItem{
		{NativeID: "id:abc", ModifiedAt: modified, Size: 999},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, "rec-1", result.Updated[0].LocalID)
}

func TestReconcile_ZeroLocalTimestampAlwaysUpdated(t *testing.T) {
	local := []domain.FileRecord{dropboxRecord("rec-1", "id:abc", time.Time{}, 100)}
	remote := []domain.RemoteItem{
		{NativeID: "id:abc", ModifiedAt: time.Time{}, Size: 100},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, "rec-1", result.Updated[0].LocalID)
}

func TestReconcile_MixedClassification(t *testing.T) {
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{
		dropboxRecord("rec-1", "id:same", modified, 100),
		dropboxRecord("rec-2", "id:stale", modified, 100),
	}
	remote := []domain.RemoteItem{
		{NativeID: "id:same", ModifiedAt: modified, Size: 100},
		{NativeID: "id:stale", ModifiedAt: modified.Add(time.Hour), Size: 100},
		{NativeID: "id:brand-new", ModifiedAt: modified, Size: 50},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	assert.Len(t, result.New, 1)
	assert.Len(t, result.Updated, 1)
	assert.Len(t, result.Unchanged, 1)
}

func TestReconcile_MatchesOnPlatformIdentity(t *testing.T) {
	// Record carries a Dropbox identifier; reconciling a GitHub listing
	// cannot match it.
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{dropboxRecord("rec-1", "id:abc", modified, 100)}
	remote := []domain.RemoteItem{
		{NativeID: "id:abc", ModifiedAt: modified, Size: 100},
	}

	result := Reconcile(remote, local, domain.PlatformGitHub)

	assert.Len(t, result.New, 1)
	assert.Empty(t, result.Unchanged)
}

func TestReconcile_EmptyNativeIDIsNew(t *testing.T) {
	local := []domain.FileRecord{dropboxRecord("rec-1", "", time.Now(), 100)}
	remote := []domain.RemoteItem{{NativeID: "", Name: "anon.txt"}}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	assert.Len(t, result.New, 1)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Unchanged)
}

func TestReconcile_DuplicateNativeIDsClassifiedIndependently(t *testing.T) {
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{dropboxRecord("rec-1", "id:dup", modified, 100)}
	remote := []domain.RemoteItem{
		{NativeID: "id:dup", ModifiedAt: modified, Size: 100},
		{NativeID: "id:dup", ModifiedAt: modified.Add(time.Hour), Size: 100},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	// Both duplicates match rec-1: one unchanged, one updated. The record
	// appears once in Unchanged.
	require.Len(t, result.Updated, 1)
	assert.Equal(t, "rec-1", result.Updated[0].LocalID)
	require.Len(t, result.Unchanged, 1)
	assert.Equal(t, "rec-1", result.Unchanged[0].ID)
}

func TestReconcile_DuplicateUnchangedDeduplicated(t *testing.T) {
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{dropboxRecord("rec-1", "id:dup", modified, 100)}
	remote := []domain.RemoteItem{
		{NativeID: "id:dup", ModifiedAt: modified, Size: 100},
		{NativeID: "id:dup", ModifiedAt: modified, Size: 100},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	assert.Len(t, result.Unchanged, 1)
}

func TestReconcile_LocalIdentifierCollisionFirstWins(t *testing.T) {
	modified := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	local := []domain.FileRecord{
		dropboxRecord("rec-first", "id:abc", modified, 100),
		dropboxRecord("rec-second", "id:abc", modified, 100),
	}
	remote := []domain.RemoteItem{
		{NativeID: "id:abc", ModifiedAt: modified.Add(time.Hour), Size: 100},
	}

	result := Reconcile(remote, local, domain.PlatformDropbox)

	require.Len(t, result.Updated, 1)
	assert.Equal(t, "rec-first", result.Updated[0].LocalID)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	result := Reconcile(nil, nil, domain.PlatformDropbox)

	assert.Empty(t, result.New)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Unchanged)
}
