// Package device simulates a device file source (iOS, Ubuntu, Windows) by
// scanning a local directory tree. It also supports watching the tree for
// changes via fsnotify.
package device

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/logger"
)

// Ensure Adapter implements the interface.
var _ driven.PlatformAdapter = (*Adapter)(nil)

// maxContentSize caps the literal content carried with a listing entry (256KB).
const maxContentSize = 256 * 1024

// textExtensions are the extensions whose content is read during a scan.
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".json": true,
	".yaml": true, ".yml": true, ".toml": true, ".log": true,
}

// ChangeType classifies a watch event.
type ChangeType string

const (
	// ChangeCreated means a file appeared.
	ChangeCreated ChangeType = "created"
	// ChangeUpdated means a file's content changed.
	ChangeUpdated ChangeType = "updated"
	// ChangeDeleted means a file disappeared.
	ChangeDeleted ChangeType = "deleted"
)

// Change is one observed filesystem event.
type Change struct {
	// Type classifies the event.
	Type ChangeType

	// Path is the changed file's path relative to the device root.
	Path string
}

// Adapter lists a directory tree as a simulated device.
type Adapter struct {
	platform domain.Platform
	root     string
	watcher  *fsnotify.Watcher
}

// New creates a device adapter rooted at root, tagged with the given
// platform. The platform must be one of the device platforms (ios, ubuntu,
// windows, local).
func New(platform domain.Platform, root string) (*Adapter, error) {
	switch platform {
	case domain.PlatformIOS, domain.PlatformUbuntu, domain.PlatformWindows, domain.PlatformLocal:
	default:
		return nil, fmt.Errorf("%w: %s is not a device platform", domain.ErrUnsupportedPlatform, platform)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat device root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: device root %s is not a directory", domain.ErrInvalidInput, root)
	}

	return &Adapter{platform: platform, root: root}, nil
}

// Platform returns the tag this adapter serves.
func (a *Adapter) Platform() domain.Platform {
	return a.platform
}

// ListRemote scans the device's directory tree. The identifier of each entry
// is its path relative to the root, stable across scans for an unmoved file.
func (a *Adapter) ListRemote(_ context.Context) ([]domain.RemoteItem, error) {
	var items []domain.RemoteItem

	err := filepath.WalkDir(a.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories are not part of the device picture.
			if d.Name() != "." && strings.HasPrefix(d.Name(), ".") && path != a.root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(a.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		ext := strings.ToLower(filepath.Ext(d.Name()))
		items = append(items, domain.RemoteItem{
			NativeID:   rel,
			Name:       d.Name(),
			Path:       "/" + rel,
			Size:       info.Size(),
			ModifiedAt: info.ModTime().UTC(),
			MimeOrExt:  ext,
			Content:    readTextContent(path, ext, info.Size()),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan device root: %w", err)
	}

	return items, nil
}

// Watch reports filesystem changes under the device root until the context
// is cancelled. Events are classified into created/updated/deleted; chmod
// noise is dropped.
func (a *Adapter) Watch(ctx context.Context) (<-chan Change, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(a.root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch device root: %w", err)
	}
	a.watcher = watcher

	changes := make(chan Change)
	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change, ok := classify(event, a.root)
				if !ok {
					continue
				}
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Device watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// Close stops any active watcher.
func (a *Adapter) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// classify maps an fsnotify event to a change, dropping chmod-only events.
func classify(event fsnotify.Event, root string) (Change, bool) {
	rel, err := filepath.Rel(root, event.Name)
	if err != nil {
		rel = event.Name
	}
	rel = filepath.ToSlash(rel)

	switch {
	case event.Op.Has(fsnotify.Create):
		return Change{Type: ChangeCreated, Path: rel}, true
	case event.Op.Has(fsnotify.Write):
		return Change{Type: ChangeUpdated, Path: rel}, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return Change{Type: ChangeDeleted, Path: rel}, true
	}
	return Change{}, false
}

// readTextContent loads the content of small text files; everything else
// stays metadata-only.
func readTextContent(path, ext string, size int64) string {
	if !textExtensions[ext] || size > maxContentSize {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
