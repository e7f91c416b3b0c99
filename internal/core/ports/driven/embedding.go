package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - The deterministic fallback embedder (no network, reproducible)
//
// An adapter with no credentials returns domain.ErrEmbeddingUnconfigured
// without attempting network access. Upstream failures (network, rate limit,
// malformed response) surface as domain.ErrEmbeddingProvider. Adapters never
// retry and never fall back internally; the caller owns fallback policy.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Input is truncated to the provider's maximum length before submission.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 128, 1536).
	// All vectors compared against each other must share this length.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
