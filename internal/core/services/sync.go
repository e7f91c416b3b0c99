package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/core/ports/driving"
	"github.com/filehub-labs/filehub/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator coordinates file synchronisation from platforms.
// Reconciliation is a pure classification step; this orchestrator owns all
// of the persistence that follows it.
type SyncOrchestrator struct {
	integrations driven.IntegrationStore
	files        driven.FileStore
	factory      driven.AdapterFactory
	pipeline     *EmbedPipeline

	// Status tracking. Entries persist after completion so final counts
	// stay readable; Running distinguishes in-flight syncs.
	mu    sync.Mutex
	syncs map[string]*driving.SyncStatus
}

// NewSyncOrchestrator creates a new sync orchestrator. The pipeline is
// optional - when nil, newly synced records stay unprocessed until a later
// embedding pass.
func NewSyncOrchestrator(
	integrations driven.IntegrationStore,
	files driven.FileStore,
	factory driven.AdapterFactory,
	pipeline *EmbedPipeline,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		integrations: integrations,
		files:        files,
		factory:      factory,
		pipeline:     pipeline,
		syncs:        make(map[string]*driving.SyncStatus),
	}
}

// Sync triggers synchronisation for an integration.
func (o *SyncOrchestrator) Sync(ctx context.Context, integrationID string) error {
	status, err := o.begin(integrationID)
	if err != nil {
		return err
	}
	defer o.finish(integrationID)

	// 1. Load integration configuration
	integration, err := o.integrations.Get(ctx, integrationID)
	if err != nil {
		return fmt.Errorf("get integration: %w", err)
	}

	// 2. Create platform adapter
	adapter, err := o.factory.Create(ctx, *integration)
	if err != nil {
		return fmt.Errorf("create adapter: %w", err)
	}
	defer adapter.Close()

	logger.Info("Starting sync for integration %s (%s)", integrationID, integration.Type)

	// 3. Fetch the remote listing
	remote, err := adapter.ListRemote(ctx)
	if err != nil {
		o.markError(ctx, integration)
		return fmt.Errorf("list remote: %w", err)
	}

	// 4. Load stored records for this owner and platform
	local, err := o.files.ListByPlatform(ctx, integration.OwnerID, integration.Type)
	if err != nil {
		return fmt.Errorf("list local records: %w", err)
	}

	// 5. Classify
	result := Reconcile(remote, local, integration.Type)
	o.mark(status, func(s *driving.SyncStatus) { s.Unchanged = len(result.Unchanged) })
	logger.Info("Reconciled %s: %d new, %d updated, %d unchanged",
		integration.Type, len(result.New), len(result.Updated), len(result.Unchanged))

	// 6. Persist the classification output
	for _, item := range result.New {
		if err := o.createRecord(ctx, integration, item); err != nil {
			o.mark(status, func(s *driving.SyncStatus) { s.ErrorCount++ })
			logger.Warn("Failed to create %s: %v", item.Name, err)
			continue
		}
		o.mark(status, func(s *driving.SyncStatus) { s.Created++ })
	}
	for _, update := range result.Updated {
		if err := o.updateRecord(ctx, integration, update); err != nil {
			o.mark(status, func(s *driving.SyncStatus) { s.ErrorCount++ })
			logger.Warn("Failed to update %s: %v", update.LocalID, err)
			continue
		}
		o.mark(status, func(s *driving.SyncStatus) { s.Updated++ })
	}

	// 7. Stamp the integration
	integration.LastSynced = time.Now().UTC()
	integration.Status = domain.IntegrationConnected
	if err := o.integrations.Save(ctx, integration); err != nil {
		return fmt.Errorf("save integration: %w", err)
	}

	// 8. Embed whatever the sync left unprocessed
	if o.pipeline != nil {
		if _, err := o.pipeline.ProcessPending(ctx, integration.OwnerID); err != nil {
			logger.Warn("Embedding pass finished with errors: %v", err)
		}
	}

	final := o.snapshot(status)
	logger.Info("Sync complete: %d created, %d updated, %d errors",
		final.Created, final.Updated, final.ErrorCount)
	return nil
}

// SyncAll triggers synchronisation for all of an owner's integrations.
func (o *SyncOrchestrator) SyncAll(ctx context.Context, ownerID string) error {
	integrations, err := o.integrations.List(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("list integrations: %w", err)
	}

	var errs []error
	for _, integration := range integrations {
		if err := o.Sync(ctx, integration.ID); err != nil {
			errs = append(errs, fmt.Errorf("sync %s: %w", integration.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Status returns sync status for an integration. A completed sync keeps its
// final counts, with Running false, until the next sync replaces them.
func (o *SyncOrchestrator) Status(_ context.Context, integrationID string) (*driving.SyncStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if status, ok := o.syncs[integrationID]; ok {
		// Return a copy to avoid race conditions
		copied := *status
		return &copied, nil
	}

	// Never synced - return idle status
	return &driving.SyncStatus{
		IntegrationID: integrationID,
		Running:       false,
	}, nil
}

// begin registers an active sync, rejecting concurrent syncs of the same
// integration. Counts from a prior completed sync are discarded.
func (o *SyncOrchestrator) begin(integrationID string) (*driving.SyncStatus, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if status, ok := o.syncs[integrationID]; ok && status.Running {
		return nil, domain.ErrSyncInProgress
	}
	status := &driving.SyncStatus{
		IntegrationID: integrationID,
		Running:       true,
	}
	o.syncs[integrationID] = status
	return status, nil
}

// finish marks a sync complete. The entry stays behind so callers can read
// the final counts after Sync returns.
func (o *SyncOrchestrator) finish(integrationID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.syncs[integrationID]; ok {
		status.Running = false
	}
}

// mark applies a progress mutation under the same lock Status copies with,
// so a poll mid-sync never observes a torn struct.
func (o *SyncOrchestrator) mark(status *driving.SyncStatus, fn func(*driving.SyncStatus)) {
	o.mu.Lock()
	fn(status)
	o.mu.Unlock()
}

// snapshot copies a status under the lock.
func (o *SyncOrchestrator) snapshot(status *driving.SyncStatus) driving.SyncStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return *status
}

// createRecord inserts a file record for a remote item classified new.
func (o *SyncOrchestrator) createRecord(
	ctx context.Context, integration *domain.Integration, item domain.RemoteItem,
) error {
	record := domain.FileRecord{
		OwnerID:      integration.OwnerID,
		Name:         item.Name,
		Path:         item.Path,
		FileType:     item.MimeOrExt,
		Category:     CategorizeFile(item.Name, item.MimeOrExt),
		Source:       integration.Type,
		SourceID:     item.NativeID,
		Identity:     domain.Identity{}.Set(integration.Type, item.NativeID),
		LastModified: item.ModifiedAt,
		Size:         item.Size,
		Content:      item.Content,
		IsProcessed:  false,
	}
	return o.files.Save(ctx, &record)
}

// updateRecord rewrites the matched record's fields from the remote item and
// resets IsProcessed to force re-embedding.
func (o *SyncOrchestrator) updateRecord(
	ctx context.Context, integration *domain.Integration, update domain.RemoteUpdate,
) error {
	record, err := o.files.Get(ctx, update.LocalID)
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}

	item := update.Item
	record.Name = item.Name
	record.Path = item.Path
	record.FileType = item.MimeOrExt
	record.LastModified = item.ModifiedAt
	record.Size = item.Size
	if item.Content != "" {
		record.Content = item.Content
	}
	record.IsProcessed = false

	return o.files.Save(ctx, record)
}

// markError stamps an integration whose sync failed upstream. Best effort;
// the original sync error is what the caller sees.
func (o *SyncOrchestrator) markError(ctx context.Context, integration *domain.Integration) {
	integration.Status = domain.IntegrationError
	if err := o.integrations.Save(ctx, integration); err != nil {
		logger.Warn("Failed to mark integration %s: %v", integration.ID, err)
	}
}
