// Package dropboxfs lists a Dropbox account's files as remote items.
package dropboxfs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/platforms/ratelimit"
)

// Ensure Adapter implements the interface.
var _ driven.PlatformAdapter = (*Adapter)(nil)

// lister is the subset of the Dropbox files client the adapter uses.
type lister interface {
	ListFolder(arg *files.ListFolderArg) (*files.ListFolderResult, error)
	ListFolderContinue(arg *files.ListFolderContinueArg) (*files.ListFolderResult, error)
}

// Adapter fetches file listings from Dropbox.
type Adapter struct {
	client  lister
	root    string
	limiter *ratelimit.Limiter
}

// New creates a Dropbox adapter for the given access token. Root is the
// folder to list; empty means the whole account.
func New(accessToken, root string) *Adapter {
	cfg := dropbox.Config{Token: accessToken}
	return &Adapter{
		client: files.New(cfg),
		root:   root,
		limiter: ratelimit.New(ratelimit.Config{
			RequestsPerSecond: 4,
			BurstSize:         8,
		}),
	}
}

// Platform returns the tag this adapter serves.
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformDropbox
}

// ListRemote fetches the full recursive folder listing, following cursors
// until the listing is exhausted.
func (a *Adapter) ListRemote(ctx context.Context) ([]domain.RemoteItem, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	arg := files.NewListFolderArg(a.root)
	arg.Recursive = true

	result, err := a.client.ListFolder(arg)
	if err != nil {
		return nil, fmt.Errorf("dropbox list folder: %w", err)
	}

	items := collectItems(nil, result.Entries)
	for result.HasMore {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		result, err = a.client.ListFolderContinue(files.NewListFolderContinueArg(result.Cursor))
		if err != nil {
			return nil, fmt.Errorf("dropbox list folder continue: %w", err)
		}
		items = collectItems(items, result.Entries)
	}

	return items, nil
}

// Close releases resources. The Dropbox client is stateless.
func (a *Adapter) Close() error {
	return nil
}

// collectItems appends the file entries of one listing page, skipping
// folders and deletions.
func collectItems(items []domain.RemoteItem, entries []files.IsMetadata) []domain.RemoteItem {
	for _, entry := range entries {
		file, ok := entry.(*files.FileMetadata)
		if !ok {
			continue
		}
		items = append(items, itemFromFile(file))
	}
	return items
}

// itemFromFile maps Dropbox file metadata to a remote item.
func itemFromFile(file *files.FileMetadata) domain.RemoteItem {
	return domain.RemoteItem{
		NativeID:   file.Id,
		Name:       file.Name,
		Path:       file.PathDisplay,
		Size:       int64(file.Size),
		ModifiedAt: file.ServerModified,
		MimeOrExt:  strings.ToLower(filepath.Ext(file.Name)),
	}
}
