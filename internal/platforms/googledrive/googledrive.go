// Package googledrive lists a Google Drive account's files as remote items.
package googledrive

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/platforms/ratelimit"
)

// Ensure Adapter implements the interface.
var _ driven.PlatformAdapter = (*Adapter)(nil)

const (
	// mimeTypeFolder marks Drive folders, which are not files.
	mimeTypeFolder = "application/vnd.google-apps.folder"

	// listFields restricts the listing to the fields the mapper reads.
	listFields = "nextPageToken, files(id, name, mimeType, size, modifiedTime, trashed, parents)"

	// pageSize is the Drive listing page size.
	pageSize = 100
)

// Adapter fetches file listings from Google Drive.
type Adapter struct {
	svc     *drive.Service
	limiter *ratelimit.Limiter
}

// New creates a Drive adapter authenticated with the given access token.
func New(ctx context.Context, accessToken string) (*Adapter, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Adapter{
		svc: svc,
		// Google allows 10 req/sec/user; stay under it.
		limiter: ratelimit.New(ratelimit.Config{RequestsPerSecond: 8, BurstSize: 10}),
	}, nil
}

// Platform returns the tag this adapter serves.
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformGoogle
}

// ListRemote fetches the account's file listing, one page at a time.
// Folders and trashed files are skipped.
func (a *Adapter) ListRemote(ctx context.Context) ([]domain.RemoteItem, error) {
	var items []domain.RemoteItem
	pageToken := ""

	for {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		call := a.svc.Files.List().
			PageSize(pageSize).
			Fields(listFields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("drive list files: %w", err)
		}

		for _, file := range list.Files {
			if file.MimeType == mimeTypeFolder || file.Trashed {
				continue
			}
			items = append(items, itemFromFile(file))
		}

		pageToken = list.NextPageToken
		if pageToken == "" {
			return items, nil
		}
	}
}

// Close releases resources. The Drive service holds none.
func (a *Adapter) Close() error {
	return nil
}

// itemFromFile maps a Drive file to a remote item. Drive reports modified
// times as RFC 3339 strings; an unparseable time is left zero.
func itemFromFile(file *drive.File) domain.RemoteItem {
	modified, err := time.Parse(time.RFC3339, file.ModifiedTime)
	if err != nil {
		modified = time.Time{}
	}

	path := "/" + file.Name
	if len(file.Parents) > 0 {
		path = fmt.Sprintf("/%s/%s", file.Parents[0], file.Name)
	}

	return domain.RemoteItem{
		NativeID:   file.Id,
		Name:       file.Name,
		Path:       path,
		Size:       file.Size,
		ModifiedAt: modified,
		MimeOrExt:  file.MimeType,
	}
}
