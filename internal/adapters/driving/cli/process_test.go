package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehub-labs/filehub/internal/adapters/driven/embedding/fallback"
	"github.com/filehub-labs/filehub/internal/adapters/driven/storage/memory"
	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/core/services"
)

func TestProcessCmd_Use(t *testing.T) {
	assert.Equal(t, "process", processCmd.Use)
}

func TestProcessCmd_EmbedsPendingRecords(t *testing.T) {
	files := memory.NewFileStore()
	record := &domain.FileRecord{
		ID:      "rec-1",
		OwnerID: "local",
		Name:    "notes.txt",
		Source:  domain.PlatformLocal,
	}
	require.NoError(t, files.Save(context.Background(), record))

	oldPipeline := embedPipeline
	oldSync := syncOrchestrator
	embedPipeline = services.NewEmbedPipeline(files, nil, fallback.New(), services.FallbackOnError)
	syncOrchestrator = &mockSyncOrchestrator{}
	defer func() {
		embedPipeline = oldPipeline
		syncOrchestrator = oldSync
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"process"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Processed 1 records.")

	got, err := files.Get(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.True(t, got.IsProcessed)
	assert.NotEmpty(t, got.ContentVector)
}
