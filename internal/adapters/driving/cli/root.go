// Package cli implements the filehub command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehub-labs/filehub/internal/adapters/driven/config/file"
	"github.com/filehub-labs/filehub/internal/adapters/driven/embedding/fallback"
	"github.com/filehub-labs/filehub/internal/adapters/driven/embedding/openai"
	"github.com/filehub-labs/filehub/internal/adapters/driven/storage/sqlite"
	"github.com/filehub-labs/filehub/internal/core/ports/driven"
	"github.com/filehub-labs/filehub/internal/core/ports/driving"
	"github.com/filehub-labs/filehub/internal/core/services"
	"github.com/filehub-labs/filehub/internal/logger"
	"github.com/filehub-labs/filehub/internal/platforms"
)

// version is injected at build time via ldflags.
var version = "dev"

// Application state shared across commands. Wired by initApp; tests
// substitute mocks directly.
var (
	cfg              *file.Config
	store            *sqlite.Store
	fileService      driving.FileService
	searchService    driving.SearchService
	syncOrchestrator driving.SyncOrchestrator
	integrationStore driven.IntegrationStore
	embedPipeline    *services.EmbedPipeline
)

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "filehub",
	Short: "Aggregate and search personal files across platforms",
	Long: `filehub collects file metadata from connected platforms into a local
store, embeds each record for similarity search and serves the result
over an HTTP API.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"directory holding config.toml (default ~/.filehub)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the root command. Build information is injected by main.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	defer closeStore()
	return rootCmd.Execute()
}

// initApp loads configuration and wires the service graph. Commands that
// need no services skip it, and pre-seeded services are left alone so
// tests can run commands against mocks.
func initApp(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}
	if syncOrchestrator != nil {
		return nil
	}

	loaded, err := file.Load(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded
	logger.SetVerbose(verbose || cfg.Verbose)

	store, err = sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	// Leave the provider nil when no key is configured so the pipeline
	// applies its fallback policy instead of calling out with no
	// credentials.
	var provider driven.EmbeddingService
	if cfg.Embedding.APIKey != "" {
		provider = openai.New(openai.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
			Timeout: cfg.Embedding.Timeout,
		})
	}

	embedPipeline = services.NewEmbedPipeline(
		store.FileStore(), provider, fallback.New(), services.FallbackOnError)
	fileService = services.NewFileService(store.FileStore(), embedPipeline)
	searchService = services.NewSearchService(store.FileStore(), embedPipeline)
	integrationStore = store.IntegrationStore()
	syncOrchestrator = services.NewSyncOrchestrator(
		integrationStore, store.FileStore(), platforms.NewFactory(), embedPipeline)

	return nil
}

func closeStore() {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close store: %v", err)
	}
	store = nil
}
