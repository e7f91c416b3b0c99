package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
)

// Ensure IntegrationStore implements the interface.
var _ driven.IntegrationStore = (*IntegrationStore)(nil)

// IntegrationStore is an in-memory implementation of driven.IntegrationStore.
type IntegrationStore struct {
	mu           sync.RWMutex
	integrations map[string]domain.Integration
}

// NewIntegrationStore creates a new in-memory integration store.
func NewIntegrationStore() *IntegrationStore {
	return &IntegrationStore{
		integrations: make(map[string]domain.Integration),
	}
}

// Save stores or updates an integration, assigning an ID on first save.
func (s *IntegrationStore) Save(_ context.Context, integration *domain.Integration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if integration.ID == "" {
		integration.ID = uuid.New().String()
		integration.CreatedAt = now
	}
	integration.UpdatedAt = now

	s.integrations[integration.ID] = *integration
	return nil
}

// Get retrieves an integration by ID.
func (s *IntegrationStore) Get(_ context.Context, id string) (*domain.Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	integration, ok := s.integrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &integration, nil
}

// List returns all integrations for an owner.
func (s *IntegrationStore) List(_ context.Context, ownerID string) ([]domain.Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Integration
	for id := range s.integrations {
		integration := s.integrations[id]
		if integration.OwnerID == ownerID {
			result = append(result, integration)
		}
	}
	return result, nil
}

// Delete removes an integration.
func (s *IntegrationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.integrations, id)
	return nil
}
