package driving

import "context"

// SyncOrchestrator coordinates file synchronisation from platforms.
type SyncOrchestrator interface {
	// Sync triggers synchronisation for an integration.
	Sync(ctx context.Context, integrationID string) error

	// SyncAll triggers synchronisation for all of an owner's integrations.
	SyncAll(ctx context.Context, ownerID string) error

	// Status returns sync status for an integration.
	Status(ctx context.Context, integrationID string) (*SyncStatus, error)
}

// SyncStatus represents the current state of a sync operation.
type SyncStatus struct {
	// IntegrationID identifies the integration.
	IntegrationID string

	// Running indicates if sync is currently in progress.
	Running bool

	// Created is the count of new records inserted.
	Created int

	// Updated is the count of records updated in place.
	Updated int

	// Unchanged is the count of records left untouched.
	Unchanged int

	// ErrorCount is the number of errors encountered.
	ErrorCount int
}
