package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/core/ports/driving"
	"github.com/filehub-labs/filehub/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService provides content-similarity search over stored records.
type SearchService struct {
	files    driven.FileStore
	pipeline *EmbedPipeline
}

// NewSearchService creates a new search service.
func NewSearchService(files driven.FileStore, pipeline *EmbedPipeline) *SearchService {
	return &SearchService{
		files:    files,
		pipeline: pipeline,
	}
}

// SearchByText embeds the query text and ranks the owner's records.
func (s *SearchService) SearchByText(
	ctx context.Context, ownerID, query string, opts domain.SearchOptions,
) ([]domain.Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.Match{}, nil
	}

	queryVector, err := s.pipeline.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	records, err := s.files.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return s.rank(queryVector, records, opts, ""), nil
}

// FindSimilar ranks the owner's records against an existing record's stored
// vector. The record itself is excluded from candidates.
func (s *SearchService) FindSimilar(
	ctx context.Context, recordID string, opts domain.SearchOptions,
) ([]domain.Match, error) {
	anchor, err := s.files.Get(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if len(anchor.ContentVector) == 0 {
		return nil, fmt.Errorf("record %s: %w", recordID, domain.ErrMissingVector)
	}

	records, err := s.files.List(ctx, anchor.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return s.rank(anchor.ContentVector, records, opts, anchor.ID), nil
}

// rank scores records against the query vector and hydrates the matches.
// excludeID removes the anchor record from its own results.
func (s *SearchService) rank(
	query []float32, records []domain.FileRecord, opts domain.SearchOptions, excludeID string,
) []domain.Match {
	byID := make(map[string]domain.FileRecord, len(records))
	candidates := make([]Candidate, 0, len(records))
	for _, record := range records {
		if record.ID == excludeID {
			continue
		}
		byID[record.ID] = record
		candidates = append(candidates, Candidate{ID: record.ID, Vector: record.ContentVector})
	}

	scored := RankBySimilarity(query, candidates, opts.Threshold, opts.Limit)
	logger.Debug("Ranked %d of %d candidates above threshold %.2f",
		len(scored), len(candidates), opts.Threshold)

	matches := make([]domain.Match, 0, len(scored))
	for _, hit := range scored {
		matches = append(matches, domain.Match{
			Record: byID[hit.ID],
			Score:  hit.Score,
		})
	}
	return matches
}
