package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/leadscope/internal/core/ports/driving"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [directory]", ingestCmd.Use)
}

func TestIngestCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := runCommand(t, "ingest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_PrintsStats(t *testing.T) {
	stub := &stubIngest{stats: &driving.IngestStats{
		Documents:  12,
		Chunks:     84,
		Dimensions: 768,
	}}
	ingestService = stub

	out, err := runCommand(t, "ingest", "/corpus")
	require.NoError(t, err)
	assert.Equal(t, "/corpus", stub.dir)
	assert.Contains(t, out, "Ingested 12 documents (84 chunks, 768 dimensions)")
}

func TestIngestCmd_FailureIsSurfaced(t *testing.T) {
	ingestService = &stubIngest{err: errors.New("no documents found")}

	_, err := runCommand(t, "ingest", "/corpus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documents found")
}
