package driving

import (
	"context"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

// FileService exposes file record management to external actors.
type FileService interface {
	// Get retrieves a file record.
	Get(ctx context.Context, id string) (*domain.FileRecord, error)

	// List returns all of an owner's records.
	List(ctx context.Context, ownerID string) ([]domain.FileRecord, error)

	// Delete removes a record. The only deletion path in the system;
	// sync never deletes implicitly.
	Delete(ctx context.Context, id string) error

	// Reprocess recomputes the summary and embedding for a record.
	Reprocess(ctx context.Context, id string) error
}
