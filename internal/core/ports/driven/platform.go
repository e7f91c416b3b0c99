package driven

import (
	"context"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

// PlatformAdapter fetches normalised file listings from an external platform.
// Each platform (dropbox, google, github, microsoft, simulated devices)
// implements this interface; the reconciliation engine is agnostic to how
// listings were fetched.
type PlatformAdapter interface {
	// Platform returns the tag this adapter serves.
	Platform() domain.Platform

	// ListRemote fetches the current file listing for the integration's
	// account. Adapters handle pagination and rate limiting internally.
	ListRemote(ctx context.Context) ([]domain.RemoteItem, error)

	// Close releases resources.
	Close() error
}

// AdapterFactory creates platform adapters from integration configuration.
type AdapterFactory interface {
	// Create builds an adapter for the integration's platform.
	// Returns domain.ErrUnsupportedPlatform for unknown types.
	Create(ctx context.Context, integration domain.Integration) (PlatformAdapter, error)
}
