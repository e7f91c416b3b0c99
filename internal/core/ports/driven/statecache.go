package driven

import (
	"context"
	"time"
)

// StateCache stores short-lived values with an explicit expiry contract.
// Used for OAuth authorization flow state; entries disappear after their TTL
// and are never shared through process-wide globals.
type StateCache interface {
	// Put stores a value under key for at most ttl.
	Put(ctx context.Context, key, value string, ttl time.Duration) error

	// Get retrieves a live value. Expired or absent keys return
	// domain.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
