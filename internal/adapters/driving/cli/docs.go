package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Inspect the ingested corpus",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all corpus documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsShow,
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if err := initCorpusOnly(); err != nil {
		return err
	}

	docs, err := docStore.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("Corpus is empty. Run 'leadscope ingest' first.")
		return nil
	}

	cmd.Printf("%d documents:\n", len(docs))
	for i := range docs {
		cmd.Printf("  %s  %s (%s, %d bytes)\n",
			docs[i].ID, docs[i].Title, docs[i].Metadata.ContentType, docs[i].Metadata.SizeBytes)
	}
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	if err := initCorpusOnly(); err != nil {
		return err
	}

	doc, err := docStore.GetDocument(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting document: %w", err)
	}

	cmd.Printf("ID:        %s\n", doc.ID)
	cmd.Printf("Title:     %s\n", doc.Title)
	cmd.Printf("URI:       %s\n", doc.URI)
	cmd.Printf("Source:    %s (%s)\n", doc.Metadata.Source, doc.Metadata.ContentType)
	cmd.Printf("Ingested:  %s\n", doc.IngestedAt.Format("2006-01-02 15:04:05"))

	chunks, err := docStore.GetChunks(cmd.Context(), doc.ID)
	if err != nil {
		return fmt.Errorf("getting chunks: %w", err)
	}
	cmd.Printf("Chunks:    %d\n", len(chunks))
	for _, chunk := range chunks {
		cmd.Printf("  [%d] %s (%d tokens)\n", chunk.Position, chunk.ID, chunk.TokenCount)
	}
	return nil
}
