package driven

import (
	"context"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

// FileStore persists file records.
// The core never stores state itself; all persistence goes through here.
type FileStore interface {
	// Save stores or updates a file record.
	Save(ctx context.Context, record *domain.FileRecord) error

	// Get retrieves a file record by ID.
	Get(ctx context.Context, id string) (*domain.FileRecord, error)

	// List returns all file records for an owner.
	List(ctx context.Context, ownerID string) ([]domain.FileRecord, error)

	// ListByPlatform returns the owner's records from one platform.
	ListByPlatform(ctx context.Context, ownerID string, platform domain.Platform) ([]domain.FileRecord, error)

	// ListUnprocessed returns the owner's records awaiting an embedding.
	ListUnprocessed(ctx context.Context, ownerID string) ([]domain.FileRecord, error)

	// Delete removes a file record. Deletion is always an explicit
	// operation from outside the core; sync never deletes implicitly.
	Delete(ctx context.Context, id string) error
}
