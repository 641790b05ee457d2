package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Ingest a corpus directory and build the index",
	Long: `Loads every supported document under the directory, replaces the
stored corpus, and builds a fresh vector index. Queries keep using the
previous index until the new one is fully built.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := initIngest(); err != nil {
		return err
	}

	stats, err := ingestService.Ingest(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d documents (%d chunks, %d dimensions)\n",
		stats.Documents, stats.Chunks, stats.Dimensions)
	return nil
}
