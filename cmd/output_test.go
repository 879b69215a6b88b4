package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlesInsomnes/Elementary-MC-model/mc/record"
)

func lineTypes(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	var types []string
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var tagged struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &tagged), "line must be valid JSON")
		require.NotEmpty(t, tagged.Type)
		types = append(types, tagged.Type)
	}
	require.NoError(t, sc.Err())
	return types
}

func TestWriteSeries(t *testing.T) {
	series := &record.Series{
		RunID:      "run-1",
		Seed:       7,
		StopReason: record.StopBudget,
		FinalStep:  200,
		Samples: []record.Sample{
			{Step: 0, LiveClusters: 2},
			{Step: 100, LiveClusters: 1},
		},
		Dissolutions: []record.Dissolution{
			{ClusterID: 1, Step: 60, AtomsReturned: 4, Fragment: true},
		},
	}
	summary := record.Summary{RunID: "run-1", Seed: 7, TotalAtoms: 120}

	var buf bytes.Buffer
	require.NoError(t, writeSeries(&buf, series, summary))

	assert.Equal(t,
		[]string{"header", "sample", "sample", "dissolution", "summary"},
		lineTypes(t, &buf))
}

func TestWriteSeries_RoundTripsHeader(t *testing.T) {
	series := &record.Series{RunID: "run-2", Seed: 11, StopReason: record.StopConverged, FinalStep: 42}

	var buf bytes.Buffer
	require.NoError(t, writeSeries(&buf, series, record.Summary{}))

	var hdr headerLine
	first, err := buf.ReadBytes('\n')
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(first, &hdr))
	assert.Equal(t, "run-2", hdr.RunID)
	assert.Equal(t, record.StopConverged, hdr.StopReason)
	assert.Equal(t, int64(42), hdr.FinalStep)
}

func TestWriteSummaries(t *testing.T) {
	summaries := []record.Summary{
		{RunID: "a", MeanLength: 6},
		{RunID: "b", MeanLength: 8},
	}
	agg := record.Aggregate{Realizations: 2, MeanLength: 7}

	var buf bytes.Buffer
	require.NoError(t, writeSummaries(&buf, summaries, agg))

	assert.Equal(t, []string{"summary", "summary", "aggregate"}, lineTypes(t, &buf))
}
