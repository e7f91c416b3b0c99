package services

import (
	"context"
	"fmt"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/core/ports/driving"
)

// Ensure FileService implements the interface.
var _ driving.FileService = (*FileService)(nil)

// FileService manages file records on behalf of external actors.
type FileService struct {
	files    driven.FileStore
	pipeline *EmbedPipeline
}

// NewFileService creates a new file service.
func NewFileService(files driven.FileStore, pipeline *EmbedPipeline) *FileService {
	return &FileService{
		files:    files,
		pipeline: pipeline,
	}
}

// Get retrieves a file record.
func (s *FileService) Get(ctx context.Context, id string) (*domain.FileRecord, error) {
	return s.files.Get(ctx, id)
}

// List returns all of an owner's records.
func (s *FileService) List(ctx context.Context, ownerID string) ([]domain.FileRecord, error) {
	return s.files.List(ctx, ownerID)
}

// Delete removes a record.
func (s *FileService) Delete(ctx context.Context, id string) error {
	if _, err := s.files.Get(ctx, id); err != nil {
		return fmt.Errorf("get record: %w", err)
	}
	return s.files.Delete(ctx, id)
}

// Reprocess recomputes the summary and embedding for a record.
func (s *FileService) Reprocess(ctx context.Context, id string) error {
	if s.pipeline == nil {
		return domain.ErrEmbeddingUnconfigured
	}
	return s.pipeline.ProcessRecord(ctx, id)
}
