package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var processOwner string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Embed file records that have no vector yet",
	Long: `Summarises and embeds every unprocessed file record so it becomes
visible to similarity search. Records synced while the embedding
provider was unavailable are picked up here.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processOwner, "owner", "local",
		"owner whose records to process")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	if embedPipeline == nil {
		return errors.New("embedding pipeline not configured")
	}

	count, err := embedPipeline.ProcessPending(cmd.Context(), processOwner)
	if err != nil {
		return fmt.Errorf("process pending records: %w", err)
	}

	cmd.Printf("Processed %d records.\n", count)
	return nil
}
