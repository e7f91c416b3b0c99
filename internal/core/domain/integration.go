package domain

import "time"

// IntegrationStatus describes the connection state of an integration.
type IntegrationStatus string

const (
	// IntegrationConnected means credentials are present and usable.
	IntegrationConnected IntegrationStatus = "connected"
	// IntegrationDisconnected means the integration has no usable credentials.
	IntegrationDisconnected IntegrationStatus = "disconnected"
	// IntegrationError means the last sync attempt failed.
	IntegrationError IntegrationStatus = "error"
)

// Integration represents one external platform connection for an owner.
// One integration per (OwnerID, Type) pair in practice; the store does not
// enforce uniqueness, duplicate creation is a caller responsibility.
type Integration struct {
	// ID is the unique identifier for the integration.
	ID string

	// OwnerID identifies the user that owns this integration.
	OwnerID string

	// Type tags the platform this integration connects to.
	Type Platform

	// Status is the current connection state.
	Status IntegrationStatus

	// Config contains platform-specific configuration and credential
	// references. Opaque to the core.
	Config map[string]string

	// LastSynced is when the last successful sync completed.
	LastSynced time.Time

	// CreatedAt is when the integration was created.
	CreatedAt time.Time

	// UpdatedAt is when the integration was last updated.
	UpdatedAt time.Time
}
