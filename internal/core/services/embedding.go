package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/logger"
)

// FallbackPolicy decides what happens when the embedding provider is
// unconfigured or fails. The policy lives here, with the caller, rather than
// baked into any adapter.
type FallbackPolicy int

const (
	// FallbackOnError substitutes the deterministic embedder when the
	// provider is unconfigured or returns an error.
	FallbackOnError FallbackPolicy = iota

	// FallbackNever surfaces provider failures to the caller.
	FallbackNever
)

// EmbedPipeline turns file records into embeddings: summarize, embed,
// persist. Each record's write is independent and idempotent - reprocessing
// simply overwrites the prior vector.
type EmbedPipeline struct {
	files    driven.FileStore
	provider driven.EmbeddingService // optional, nil when unconfigured
	fallback driven.EmbeddingService // deterministic, never fails
	policy   FallbackPolicy
}

// NewEmbedPipeline creates an embedding pipeline. The provider may be nil;
// fallback must not be.
func NewEmbedPipeline(
	files driven.FileStore,
	provider driven.EmbeddingService,
	fallback driven.EmbeddingService,
	policy FallbackPolicy,
) *EmbedPipeline {
	return &EmbedPipeline{
		files:    files,
		provider: provider,
		fallback: fallback,
		policy:   policy,
	}
}

// EmbedText generates a vector for arbitrary text, applying the fallback
// policy. Provider failures are terminal for the call - no retry.
func (p *EmbedPipeline) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if p.provider == nil {
		return p.fallbackOrFail(ctx, text, domain.ErrEmbeddingUnconfigured)
	}

	vector, err := p.provider.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingUnconfigured) || errors.Is(err, domain.ErrEmbeddingProvider) {
			return p.fallbackOrFail(ctx, text, err)
		}
		return nil, err
	}
	return vector, nil
}

// fallbackOrFail applies the configured policy to a provider failure.
func (p *EmbedPipeline) fallbackOrFail(ctx context.Context, text string, cause error) ([]float32, error) {
	if p.policy == FallbackNever {
		return nil, cause
	}
	logger.Debug("Embedding provider unavailable, using fallback: %v", cause)
	return p.fallback.Embed(ctx, text)
}

// ProcessRecord summarizes a record, embeds the summary and persists the
// result, marking the record processed.
func (p *EmbedPipeline) ProcessRecord(ctx context.Context, id string) error {
	record, err := p.files.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}

	summary := Summarize(*record)
	vector, err := p.EmbedText(ctx, summary)
	if err != nil {
		return fmt.Errorf("embed record %s: %w", id, err)
	}

	record.ContentSummary = summary
	record.ContentVector = vector
	record.IsProcessed = true

	if err := p.files.Save(ctx, record); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// ProcessPending embeds all of an owner's unprocessed records, one
// independent call per record. Per-record failures are counted, not fatal;
// processing continues with the remaining records.
func (p *EmbedPipeline) ProcessPending(ctx context.Context, ownerID string) (int, error) {
	pending, err := p.files.ListUnprocessed(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("list unprocessed: %w", err)
	}

	processed := 0
	var errs []error
	for _, record := range pending {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if err := p.ProcessRecord(ctx, record.ID); err != nil {
			logger.Warn("Failed to embed %s: %v", record.ID, err)
			errs = append(errs, err)
			continue
		}
		processed++
	}

	return processed, errors.Join(errs...)
}
