package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var leadsJSON bool

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Rank all corpus documents by lead signal",
	Long: `Scores every document in the corpus by the mean signal of its chunks
and prints them best first. No query or embedding service is involved;
the ranking comes purely from the deterministic signal rule.`,
	Args: cobra.NoArgs,
	RunE: runLeads,
}

func init() {
	leadsCmd.Flags().BoolVar(&leadsJSON, "json", false, "output the ranking as JSON")
	rootCmd.AddCommand(leadsCmd)
}

func runLeads(cmd *cobra.Command, _ []string) error {
	if err := initCorpusOnly(); err != nil {
		return err
	}

	scores, err := scoringService.ScoreDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("scoring documents failed: %w", err)
	}

	if leadsJSON {
		data, err := json.MarshalIndent(scores, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal scores: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(scores) == 0 {
		cmd.Println("Corpus is empty. Run 'leadscope ingest' first.")
		return nil
	}

	cmd.Println("Leads:")
	for i, score := range scores {
		title := score.Title
		if title == "" {
			title = score.DocumentID
		}
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, score.Value)
		if len(score.Indicators) > 0 {
			cmd.Printf("      indicators: %s\n", strings.Join(score.Indicators, ", "))
		}
	}
	return nil
}
