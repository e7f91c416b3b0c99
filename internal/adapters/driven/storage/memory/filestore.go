// Package memory provides in-memory store implementations, used in tests and
// for ephemeral deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is an in-memory implementation of driven.FileStore.
type FileStore struct {
	mu      sync.RWMutex
	records map[string]domain.FileRecord
}

// NewFileStore creates a new in-memory file store.
func NewFileStore() *FileStore {
	return &FileStore{
		records: make(map[string]domain.FileRecord),
	}
}

// Save stores or updates a file record, assigning an ID on first save.
func (s *FileStore) Save(_ context.Context, record *domain.FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.New().String()
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	s.records[record.ID] = *record
	return nil
}

// Get retrieves a file record by ID.
func (s *FileStore) Get(_ context.Context, id string) (*domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns all file records for an owner.
func (s *FileStore) List(_ context.Context, ownerID string) ([]domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.FileRecord
	for id := range s.records {
		record := s.records[id]
		if record.OwnerID == ownerID {
			result = append(result, record)
		}
	}
	return result, nil
}

// ListByPlatform returns the owner's records from one platform.
func (s *FileStore) ListByPlatform(
	_ context.Context, ownerID string, platform domain.Platform,
) ([]domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.FileRecord
	for id := range s.records {
		record := s.records[id]
		if record.OwnerID == ownerID && record.Source == platform {
			result = append(result, record)
		}
	}
	return result, nil
}

// ListUnprocessed returns the owner's records awaiting an embedding.
func (s *FileStore) ListUnprocessed(_ context.Context, ownerID string) ([]domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.FileRecord
	for id := range s.records {
		record := s.records[id]
		if record.OwnerID == ownerID && !record.IsProcessed {
			result = append(result, record)
		}
	}
	return result, nil
}

// Delete removes a file record.
func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
