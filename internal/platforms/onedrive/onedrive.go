// Package onedrive lists a OneDrive account's files as remote items via the
// Microsoft Graph REST API.
package onedrive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/platforms/ratelimit"
)

// Ensure Adapter implements the interface.
var _ driven.PlatformAdapter = (*Adapter)(nil)

const (
	// defaultBaseURL is the Microsoft Graph v1.0 endpoint.
	defaultBaseURL = "https://graph.microsoft.com/v1.0"

	// defaultTimeout bounds a single Graph request.
	defaultTimeout = 30 * time.Second
)

// Adapter fetches file listings from OneDrive. There is no Graph SDK in use;
// the adapter speaks the REST API directly.
type Adapter struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	limiter     *ratelimit.Limiter
}

// Option configures the adapter.
type Option func(*Adapter)

// WithBaseURL overrides the Graph endpoint. Used in tests.
func WithBaseURL(url string) Option {
	return func(a *Adapter) { a.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Adapter) { a.httpClient = client }
}

// New creates a OneDrive adapter for the given access token.
func New(accessToken string, opts ...Option) *Adapter {
	a := &Adapter{
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		limiter:     ratelimit.New(ratelimit.Config{RequestsPerSecond: 5, BurstSize: 10}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Platform returns the tag this adapter serves.
func (a *Adapter) Platform() domain.Platform {
	return domain.PlatformMicrosoft
}

// driveItem is the subset of the Graph driveItem resource the mapper reads.
type driveItem struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Size                 int64     `json:"size"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
	File                 *struct {
		MimeType string `json:"mimeType"`
	} `json:"file"`
	Folder          *struct{} `json:"folder"`
	ParentReference *struct {
		Path string `json:"path"`
	} `json:"parentReference"`
}

// listResponse is one page of a children listing.
type listResponse struct {
	Value    []driveItem `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// ListRemote fetches the drive root's children, following @odata.nextLink
// pagination. Folders are skipped; Graph's delta-style recursion is not used,
// the listing walks the root children only.
func (a *Adapter) ListRemote(ctx context.Context) ([]domain.RemoteItem, error) {
	var items []domain.RemoteItem
	url := a.baseURL + "/me/drive/root/children"

	for url != "" {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := a.fetchPage(ctx, url)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Value {
			if item.Folder != nil {
				continue
			}
			items = append(items, itemFromDriveItem(item))
		}
		url = page.NextLink
	}

	return items, nil
}

// Close releases resources.
func (a *Adapter) Close() error {
	return nil
}

// fetchPage performs one authenticated GET against the Graph API.
func (a *Adapter) fetchPage(ctx context.Context, url string) (*listResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		a.limiter.RecordRetryAfter(retryAfter)
		return nil, fmt.Errorf("%w: graph returned 429", domain.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("graph request failed with status %d", resp.StatusCode)
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode graph response: %w", err)
	}
	return &page, nil
}

// itemFromDriveItem maps a Graph driveItem to a remote item.
func itemFromDriveItem(item driveItem) domain.RemoteItem {
	mime := ""
	if item.File != nil {
		mime = item.File.MimeType
	}

	path := "/" + item.Name
	if item.ParentReference != nil && item.ParentReference.Path != "" {
		path = item.ParentReference.Path + "/" + item.Name
	}

	return domain.RemoteItem{
		NativeID:   item.ID,
		Name:       item.Name,
		Path:       path,
		Size:       item.Size,
		ModifiedAt: item.LastModifiedDateTime,
		MimeOrExt:  mime,
	}
}
