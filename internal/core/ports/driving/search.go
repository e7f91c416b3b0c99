package driving

import (
	"context"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

// SearchService exposes content-similarity search to external actors.
type SearchService interface {
	// SearchByText embeds a free-text query and ranks the owner's records
	// against it.
	SearchByText(ctx context.Context, ownerID, query string, opts domain.SearchOptions) ([]domain.Match, error)

	// FindSimilar ranks the owner's records against an existing record's
	// stored vector, excluding the record itself from candidates.
	FindSimilar(ctx context.Context, recordID string, opts domain.SearchOptions) ([]domain.Match, error)
}
