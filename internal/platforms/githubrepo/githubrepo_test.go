package githubrepo

import (
	"context"
	"net/http"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/platforms/ratelimit"
)

// fakeAPI scripts repository and tree responses.
type fakeAPI struct {
	repository *gh.Repository
	tree       *gh.Tree
	repoErr    error
	treeErr    error
}

func (f *fakeAPI) GetRepository(_ context.Context, _, _ string) (*gh.Repository, error) {
	return f.repository, f.repoErr
}

func (f *fakeAPI) GetTree(_ context.Context, _, _, _ string) (*gh.Tree, error) {
	return f.tree, f.treeErr
}

func newTestAdapter(api treeLister) *Adapter {
	return &Adapter{
		api:     api,
		owner:   "octocat",
		repo:    "hello",
		limiter: ratelimit.New(ratelimit.Config{RequestsPerSecond: 1000, BurstSize: 1000}),
	}
}

func TestAdapter_Platform(t *testing.T) {
	adapter := New(context.Background(), "token", "octocat", "hello")
	assert.Equal(t, domain.PlatformGitHub, adapter.Platform())
}

func TestAdapter_ListRemote_BlobsOnly(t *testing.T) {
	pushed := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		repository: &gh.Repository{
			DefaultBranch: gh.Ptr("main"),
			PushedAt:      &gh.Timestamp{Time: pushed},
		},
		tree: &gh.Tree{Entries: []*gh.TreeEntry{
			{Path: gh.Ptr("src"), Type: gh.Ptr("tree"), SHA: gh.Ptr("tree-sha")},
			{Path: gh.Ptr("src/main.go"), Type: gh.Ptr("blob"), SHA: gh.Ptr("blob-sha"), Size: gh.Ptr(2048)},
		}},
	}

	items, err := newTestAdapter(api).ListRemote(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "blob-sha", item.NativeID)
	assert.Equal(t, "main.go", item.Name)
	assert.Equal(t, "/src/main.go", item.Path)
	assert.Equal(t, int64(2048), item.Size)
	assert.Equal(t, ".go", item.MimeOrExt)
	assert.True(t, pushed.Equal(item.ModifiedAt))
}

func TestAdapter_ListRemote_RateLimitedMapsToDomainError(t *testing.T) {
	api := &fakeAPI{repoErr: &gh.RateLimitError{Message: "rate limited"}}

	_, err := newTestAdapter(api).ListRemote(context.Background())
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestAdapter_ListRemote_MissingRepoMapsToNotFound(t *testing.T) {
	api := &fakeAPI{repoErr: &gh.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  "Not Found",
	}}

	_, err := newTestAdapter(api).ListRemote(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
