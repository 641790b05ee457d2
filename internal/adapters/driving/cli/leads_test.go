package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/leadscope/internal/core/domain"
)

func TestLeadsCmd_Use(t *testing.T) {
	assert.Equal(t, "leads", leadsCmd.Use)
}

func TestLeadsCmd_PrintsRanking(t *testing.T) {
	scoringService = &stubScoring{docScores: []domain.DocumentScore{
		{DocumentID: "doc-1", Title: "Term Loan Draft", Value: 0.75, Indicators: []string{"deal_terms"}},
		{DocumentID: "doc-2", Title: "Meeting Notes", Value: 0.25},
	}}

	out, err := runCommand(t, "leads")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] Term Loan Draft (0.75)")
	assert.Contains(t, out, "deal_terms")
	assert.Contains(t, out, "[2] Meeting Notes (0.25)")
}

func TestLeadsCmd_EmptyCorpus(t *testing.T) {
	scoringService = &stubScoring{}

	out, err := runCommand(t, "leads")
	require.NoError(t, err)
	assert.Contains(t, out, "Corpus is empty")
}

func TestLeadsCmd_JSONOutput(t *testing.T) {
	scoringService = &stubScoring{docScores: []domain.DocumentScore{
		{DocumentID: "doc-1", Value: 0.5},
	}}

	out, err := runCommand(t, "leads", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"document_id": "doc-1"`)
}
