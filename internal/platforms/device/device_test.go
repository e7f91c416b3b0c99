package device

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

func TestNew_RejectsNonDevicePlatform(t *testing.T) {
	_, err := New(domain.PlatformDropbox, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestNew_RejectsMissingRoot(t *testing.T) {
	_, err := New(domain.PlatformIOS, filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestNew_RejectsFileRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := New(domain.PlatformIOS, file)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdapter_Platform(t *testing.T) {
	adapter, err := New(domain.PlatformUbuntu, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformUbuntu, adapter.Platform())
}

func TestAdapter_ListRemote(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "note.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "photo.jpg"), []byte{0xff, 0xd8}, 0644))

	adapter, err := New(domain.PlatformIOS, root)
	require.NoError(t, err)

	items, err := adapter.ListRemote(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]domain.RemoteItem{}
	for _, item := range items {
		byID[item.NativeID] = item
	}

	note := byID["docs/note.txt"]
	assert.Equal(t, "note.txt", note.Name)
	assert.Equal(t, "/docs/note.txt", note.Path)
	assert.Equal(t, int64(5), note.Size)
	assert.Equal(t, ".txt", note.MimeOrExt)
	assert.Equal(t, "hello", note.Content)
	assert.False(t, note.ModifiedAt.IsZero())

	photo := byID["photo.jpg"]
	assert.Equal(t, ".jpg", photo.MimeOrExt)
	assert.Empty(t, photo.Content, "binary files carry no content")
}

func TestAdapter_ListRemote_SkipsHidden(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".cache"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cache", "blob"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "visible.txt"), []byte("x"), 0644))

	adapter, err := New(domain.PlatformWindows, root)
	require.NoError(t, err)

	items, err := adapter.ListRemote(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "visible.txt", items[0].Name)
}

func TestAdapter_Watch(t *testing.T) {
	root := t.TempDir()
	adapter, err := New(domain.PlatformUbuntu, root)
	require.NoError(t, err)
	defer adapter.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := adapter.Watch(ctx)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(filepath.Join(root, "new-file.txt"), []byte("content"), 0644)
	}()

	select {
	case change := <-changes:
		assert.Equal(t, ChangeCreated, change.Type)
		assert.Equal(t, "new-file.txt", change.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for file change event")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		want ChangeType
		ok   bool
	}{
		{"create", fsnotify.Create, ChangeCreated, true},
		{"write", fsnotify.Write, ChangeUpdated, true},
		{"remove", fsnotify.Remove, ChangeDeleted, true},
		{"rename", fsnotify.Rename, ChangeDeleted, true},
		{"chmod only", fsnotify.Chmod, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, ok := classify(fsnotify.Event{Name: "/root/a.txt", Op: tt.op}, "/root")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, change.Type)
				assert.Equal(t, "a.txt", change.Path)
			}
		})
	}
}
