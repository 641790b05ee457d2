package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

var (
	queryTopK    int
	queryJSON    bool
	queryExplain bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Score a query against the indexed corpus",
	Long: `Embeds the query, retrieves the most similar chunks, and aggregates
them into a lead score in [0, 1] with a per-chunk rationale. The score
is deterministic; --explain additionally renders a prose explanation
via the configured LLM without changing the number.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default from settings)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the response as JSON")
	queryCmd.Flags().BoolVar(&queryExplain, "explain", false, "render a prose explanation of the score")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := initScoring(queryExplain); err != nil {
		return err
	}

	k := queryTopK
	if k <= 0 {
		k = appSettings.Retrieval.TopK
	}

	resp, err := scoringService.ScoreQuery(cmd.Context(), args[0], k)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryExplain {
		explanation, err := scoringService.Explain(cmd.Context(), resp.Query, resp.Score)
		if err != nil {
			return fmt.Errorf("explain failed: %w", err)
		}
		resp.Explanation = explanation
	}

	if queryJSON {
		return outputQueryJSON(cmd, resp)
	}
	return outputQueryText(cmd, resp)
}

func outputQueryJSON(cmd *cobra.Command, resp *domain.QueryResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, resp *domain.QueryResponse) error {
	cmd.Printf("Lead score: %.2f\n", resp.Score.Value)

	if len(resp.Score.Rationale) == 0 {
		cmd.Println("No usable evidence found.")
		return nil
	}

	cmd.Println()
	cmd.Println("Evidence:")
	for i, entry := range resp.Score.Rationale {
		cmd.Printf("  [%d] %s  weight=%.3f  signal=%.3f\n",
			i+1, entry.ChunkID, entry.Weight, entry.Signal)
		if len(entry.Indicators) > 0 {
			cmd.Printf("      indicators: %s\n", strings.Join(entry.Indicators, ", "))
		}
	}

	if resp.Explanation != "" {
		cmd.Println()
		cmd.Println(resp.Explanation)
	}
	return nil
}
