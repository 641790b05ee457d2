// Package cli implements the leadscope command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/meridian-labs/leadscope/internal/adapters/driven/ai"
	configfile "github.com/meridian-labs/leadscope/internal/adapters/driven/config/file"
	"github.com/meridian-labs/leadscope/internal/adapters/driven/index/flat"
	"github.com/meridian-labs/leadscope/internal/adapters/driven/storage/sqlite"
	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driven"
	"github.com/meridian-labs/leadscope/internal/core/ports/driving"
	"github.com/meridian-labs/leadscope/internal/core/services"
	"github.com/meridian-labs/leadscope/internal/ingestion/filesystem"
	"github.com/meridian-labs/leadscope/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	flagVerbose   bool
	flagConfigDir string
)

// Shared services, wired by initServices. Tests inject their own before
// running commands.
var (
	appSettings      domain.AppSettings
	docStore         driven.DocumentStore
	indexManager     *services.IndexManager
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	scoringService   driving.ScoringService
)

var rootCmd = &cobra.Command{
	Use:   "leadscope",
	Short: "Score sales leads from a document corpus",
	Long: `leadscope ingests a corpus of financial documents, indexes them for
semantic retrieval, and scores queries against the evidence it finds.
Scores are deterministic and come with a per-chunk rationale.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		// API keys may live in a .env next to the working directory.
		// A missing file is not an error.
		_ = godotenv.Load()

		store, err := configfile.NewSettingsStore(flagConfigDir)
		if err != nil {
			return fmt.Errorf("opening settings: %w", err)
		}
		appSettings, err = store.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.leadscope)")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDir resolves the active configuration directory.
func configDir() (string, error) {
	if flagConfigDir != "" {
		return flagConfigDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".leadscope"), nil
}

// indexPath resolves where the persisted index lives.
func indexPath() (string, error) {
	if appSettings.Index.Path != "" {
		return appSettings.Index.Path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data", "index.db"), nil
}

// initCorpusOnly wires just the corpus store and scorer. Corpus-level
// ranking needs neither the index nor any AI service.
func initCorpusOnly() error {
	if scoringService != nil && docStore != nil {
		return nil
	}
	if err := ensureStore(); err != nil {
		return err
	}
	if scoringService == nil {
		scoringService = services.NewScorer(retrievalService, docStore, nil)
	}
	return nil
}

// ensureStore opens the corpus store if no test injected one.
func ensureStore() error {
	if docStore != nil {
		return nil
	}
	dir, err := configDir()
	if err != nil {
		return err
	}
	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return fmt.Errorf("opening corpus store: %w", err)
	}
	docStore = store
	return nil
}

// ensureManager sets up the index manager, loading a previously
// persisted index as the live one if it exists.
func ensureManager() error {
	if indexManager != nil {
		return nil
	}
	indexManager = services.NewIndexManager(nil)

	path, err := indexPath()
	if err != nil {
		return err
	}
	if index, err := flat.NewBuilder().Load(path); err == nil {
		indexManager.Swap(index)
		logger.Debug("Loaded index from %s (%d entries)", path, index.Size())
	}
	return nil
}

// ensureEmbedder creates and pings the configured embedding provider.
func ensureEmbedder() (driven.EmbeddingService, error) {
	embedder, err := ai.CreateAndValidateEmbeddingService(&appSettings.Embedding)
	if err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", domain.ErrEmbeddingUnavailable)
	}
	return embedder, nil
}

// initScoring wires the retrieval and scoring services. When withLLM is
// set, the generative service is created too; scoring itself never
// needs it.
func initScoring(withLLM bool) error {
	if scoringService != nil {
		return nil
	}
	if err := ensureStore(); err != nil {
		return err
	}
	if err := ensureManager(); err != nil {
		return err
	}

	if retrievalService == nil {
		embedder, err := ensureEmbedder()
		if err != nil {
			return err
		}
		retrievalService = services.NewRetriever(indexManager, embedder)
	}

	var llm driven.LLMService
	if withLLM {
		var err error
		llm, err = ai.CreateAndValidateLLMService(&appSettings.LLM)
		if err != nil {
			return err
		}
	}

	scoringService = services.NewScorer(retrievalService, docStore, llm)
	return nil
}

// initIngest wires the build pipeline.
func initIngest() error {
	if ingestService != nil {
		return nil
	}
	if err := ensureStore(); err != nil {
		return err
	}
	if err := ensureManager(); err != nil {
		return err
	}

	embedder, err := ensureEmbedder()
	if err != nil {
		return err
	}
	chunker, err := services.NewChunker(appSettings.Chunking.MaxLen, appSettings.Chunking.Overlap)
	if err != nil {
		return err
	}
	path, err := indexPath()
	if err != nil {
		return err
	}

	ingestService = services.NewIndexer(services.IndexerConfig{
		Loader:         filesystem.NewLoader(),
		DocStore:       docStore,
		Chunker:        chunker,
		Embedder:       embedder,
		Builder:        flat.NewBuilder(),
		Manager:        indexManager,
		IndexPath:      path,
		Metric:         appSettings.Index.Metric,
		Workers:        appSettings.Build.Workers,
		EmbedRateLimit: appSettings.Build.EmbedRateLimit,
	})
	return nil
}
