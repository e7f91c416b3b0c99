// Package githubrepo lists a GitHub repository's tree as remote items.
package githubrepo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/platforms/ratelimit"
)

// Ensure Adapter implements the interface.
var _ driven.PlatformAdapter = (*Adapter)(nil)

const (
	// requestTimeout bounds a single API request.
	requestTimeout = 30 * time.Second

	// proactiveRate keeps well under GitHub's 5000/hour authenticated limit.
	proactiveRate = 1.2
)

// treeLister is the subset of the GitHub API the adapter uses.
type treeLister interface {
	GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error)
	GetTree(ctx context.Context, owner, repo, ref string) (*gh.Tree, error)
}

// ghClient backs treeLister with the real go-github client.
type ghClient struct {
	client *gh.Client
}

func (c *ghClient) GetRepository(ctx context.Context, owner, repo string) (*gh.Repository, error) {
	repository, _, err := c.client.Repositories.Get(ctx, owner, repo)
	return repository, err
}

func (c *ghClient) GetTree(ctx context.Context, owner, repo, ref string) (*gh.Tree, error) {
	tree, _, err := c.client.Git.GetTree(ctx, owner, repo, ref, true)
	return tree, err
}

// Adapter fetches the file tree of one GitHub repository.
type Adapter struct {
	api     treeLister
	owner   string
	repo    string
	limiter *ratelimit.Limiter
}

// New creates a GitHub adapter for one repository, authenticated with the
// given token.
func New(ctx context.Context, token, owner, repo string) *Adapter {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)
	httpClient.Timeout = requestTimeout

	return &Adapter{
		api:     &ghClient{client: gh.NewClient(httpClient)},
		owner:   owner,
		repo:    repo,
		limiter: ratelimit.New(ratelimit.Config{RequestsPerSecond: proactiveRate, BurstSize: 2}),
	}
}

// Platform returns the tag this adapter serves.
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformGitHub
}

// ListRemote fetches the repository's default-branch tree recursively.
// Only blobs become items; trees and submodules are skipped.
func (a *Adapter) ListRemote(ctx context.Context) ([]domain.RemoteItem, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	repository, err := a.api.GetRepository(ctx, a.owner, a.repo)
	if err != nil {
		return nil, fmt.Errorf("get repository %s/%s: %w", a.owner, a.repo, mapError(err))
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tree, err := a.api.GetTree(ctx, a.owner, a.repo, repository.GetDefaultBranch())
	if err != nil {
		return nil, fmt.Errorf("get tree %s/%s: %w", a.owner, a.repo, mapError(err))
	}

	// The repository's pushed-at time is the best modification signal the
	// tree listing carries; blobs have no per-file timestamp.
	modified := repository.GetPushedAt().Time

	items := make([]domain.RemoteItem, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		items = append(items, itemFromEntry(entry, modified))
	}
	return items, nil
}

// Close releases resources. The client holds none beyond the HTTP transport.
func (a *Adapter) Close() error {
	return nil
}

// itemFromEntry maps a tree blob to a remote item.
func itemFromEntry(entry *gh.TreeEntry, modified time.Time) domain.RemoteItem {
	entryPath := entry.GetPath()
	return domain.RemoteItem{
		NativeID:   entry.GetSHA(),
		Name:       path.Base(entryPath),
		Path:       "/" + entryPath,
		Size:       int64(entry.GetSize()),
		ModifiedAt: modified,
		MimeOrExt:  strings.ToLower(path.Ext(entryPath)),
	}
}

// mapError translates GitHub rate limiting into the domain error.
func mapError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil &&
		respErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return err
}
