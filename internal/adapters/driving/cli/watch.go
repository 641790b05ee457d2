package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/leadscope/internal/logger"
	"github.com/meridian-labs/leadscope/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a corpus directory and rebuild on changes",
	Long: `Performs an initial ingest of the directory, then watches it for
changes. After each burst of changes settles, the corpus is re-ingested
and a fresh index is swapped in; queries against the running index are
never interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce,
		"how long to wait after the last change before rebuilding")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := initIngest(); err != nil {
		return err
	}
	dir := args[0]

	stats, err := ingestService.Ingest(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("initial ingest failed: %w", err)
	}
	cmd.Printf("Ingested %d documents (%d chunks). Watching %s...\n",
		stats.Documents, stats.Chunks, dir)

	w, err := watcher.New(dir, watchDebounce, func(ctx context.Context) {
		stats, err := ingestService.Ingest(ctx, dir)
		if err != nil {
			logger.Warn("Rebuild failed, keeping previous index: %v", err)
			return
		}
		cmd.Printf("Rebuilt: %d documents, %d chunks\n", stats.Documents, stats.Chunks)
	})
	if err != nil {
		return err
	}

	err = w.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
