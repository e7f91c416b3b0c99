package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnconfigured indicates the embedding provider has no
	// credentials. Recoverable by falling back to the deterministic embedder.
	ErrEmbeddingUnconfigured = errors.New("embedding provider not configured")

	// ErrEmbeddingProvider indicates an upstream embedding failure (network,
	// rate limit, malformed response). The caller decides whether to fall
	// back; the adapter never retries.
	ErrEmbeddingProvider = errors.New("embedding provider error")

	// ErrDimensionMismatch indicates cosine similarity was invoked on
	// vectors of differing length. Fatal for that single comparison.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrMissingVector indicates a record has no stored embedding.
	// Such records are excluded from similarity results; this error only
	// surfaces when the query anchor itself has no vector.
	ErrMissingVector = errors.New("record has no content vector")

	// ErrSyncInProgress indicates a sync is already running for the
	// integration.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrUnsupportedPlatform indicates no adapter exists for the platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrRateLimited indicates the platform API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
