package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var syncOwner string

var syncCmd = &cobra.Command{
	Use:   "sync [integration-id]",
	Short: "Synchronise files from connected platforms",
	Long: `Triggers file synchronisation from connected platform integrations.
If an integration ID is provided, only that integration is synchronised.
Otherwise, all of the owner's integrations are synchronised.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncOwner, "owner", "local",
		"owner whose integrations to synchronise")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()

	if len(args) > 0 {
		integrationID := args[0]
		cmd.Printf("Synchronising integration: %s...\n", integrationID)

		if err := syncOrchestrator.Sync(ctx, integrationID); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		// Final counts are best effort.
		status, statusErr := syncOrchestrator.Status(ctx, integrationID)
		if statusErr == nil && status != nil {
			cmd.Printf("Done: %d created, %d updated, %d unchanged (%d errors)\n",
				status.Created, status.Updated, status.Unchanged, status.ErrorCount)
		} else {
			cmd.Printf("Integration %s synchronised successfully.\n", integrationID)
		}
		return nil
	}

	cmd.Printf("Synchronising all integrations for %s...\n", syncOwner)

	if err := syncOrchestrator.SyncAll(ctx, syncOwner); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Println("All integrations synchronised successfully.")
	return nil
}
