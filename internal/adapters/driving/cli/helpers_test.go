package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/meridian-labs/leadscope/internal/core/domain"
	"github.com/meridian-labs/leadscope/internal/core/ports/driving"
)

// stubScoring implements driving.ScoringService for command tests.
type stubScoring struct {
	response  *domain.QueryResponse
	queryErr  error
	explained string
	docScores []domain.DocumentScore
}

var _ driving.ScoringService = (*stubScoring)(nil)

func (s *stubScoring) Score(result domain.RetrievalResult) domain.LeadScore {
	return domain.LeadScore{}
}

func (s *stubScoring) ScoreQuery(_ context.Context, query string, _ int) (*domain.QueryResponse, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	resp := *s.response
	resp.Query = query
	return &resp, nil
}

func (s *stubScoring) Explain(_ context.Context, _ string, _ domain.LeadScore) (string, error) {
	return s.explained, nil
}

func (s *stubScoring) ScoreDocuments(_ context.Context) ([]domain.DocumentScore, error) {
	return s.docScores, nil
}

// stubIngest implements driving.IngestService for command tests.
type stubIngest struct {
	stats *driving.IngestStats
	err   error
	dir   string
}

var _ driving.IngestService = (*stubIngest)(nil)

func (s *stubIngest) Ingest(_ context.Context, dir string) (*driving.IngestStats, error) {
	s.dir = dir
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func (s *stubIngest) Rebuild(_ context.Context) (*driving.IngestStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

// runCommand executes the root command with injected services and
// returns its combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	prevScoring := scoringService
	prevIngest := ingestService
	prevDocStore := docStore
	t.Cleanup(func() {
		scoringService = prevScoring
		ingestService = prevIngest
		docStore = prevDocStore
		rootCmd.SetArgs(nil)
		flagConfigDir = ""
		queryTopK = 0
		queryJSON = false
		queryExplain = false
		leadsJSON = false
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append(args, "--config", t.TempDir()))

	err := rootCmd.Execute()
	return buf.String(), err
}
