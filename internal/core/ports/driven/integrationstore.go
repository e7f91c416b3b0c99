package driven

import (
	"context"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

// IntegrationStore persists platform integrations.
type IntegrationStore interface {
	// Save stores or updates an integration.
	Save(ctx context.Context, integration *domain.Integration) error

	// Get retrieves an integration by ID.
	Get(ctx context.Context, id string) (*domain.Integration, error)

	// List returns all integrations for an owner.
	List(ctx context.Context, ownerID string) ([]domain.Integration, error)

	// Delete removes an integration.
	Delete(ctx context.Context, id string) error
}
