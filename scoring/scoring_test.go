package scoring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/matrix"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, TierHigh},
		{0.8, TierHigh},
		{0.7999, TierMedium},
		{0.5, TierMedium},
		{0.4999, TierLow},
		{0.0, TierLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %v", tt.score)
	}
}

func TestTierName(t *testing.T) {
	assert.Equal(t, "High", TierName(TierHigh))
	assert.Equal(t, "Medium", TierName(TierMedium))
	assert.Equal(t, "Low", TierName(TierLow))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "methods.yaml")
	data := `methods:
  - name: default
    weights:
      coordinate_precision:
        High: 3
        Medium: 2
        Low: 1
      date_recency:
        recent_20_years: 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	methods, err := Load(path)
	require.NoError(t, err)
	require.Len(t, methods, 1)

	assert.Equal(t, dqaf.Namespace+"scoring/default", methods[0].ResolvedIRI())

	cols := methods[0].Columns()
	require.Len(t, cols, 4)
	// Sorted by column key
	assert.Equal(t, "coordinate_precision:High", cols[0].Column)
	assert.Equal(t, 3.0, cols[0].Weight)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	_, err := Load(write("empty.yaml", "methods: []"))
	assert.Error(t, err)

	_, err = Load(write("noweights.yaml", "methods:\n  - name: a\n    weights: {}"))
	assert.Error(t, err)
}

func scoreMatrix(t *testing.T) *matrix.Builder {
	t.Helper()
	mb := matrix.NewBuilder()

	// obs1: High + recent -> raw 5
	mb.EnsureRow("obs1", 1)
	require.NoError(t, mb.Set("obs1", "coordinate_precision:High"))
	require.NoError(t, mb.Set("obs1", "date_recency:recent_20_years"))

	// obs2: Low + recent -> raw 3
	mb.EnsureRow("obs2", 2)
	require.NoError(t, mb.Set("obs2", "coordinate_precision:Low"))
	require.NoError(t, mb.Set("obs2", "date_recency:recent_20_years"))

	// obs3: Low only -> raw 1
	mb.EnsureRow("obs3", 3)
	require.NoError(t, mb.Set("obs3", "coordinate_precision:Low"))

	return mb
}

func testMethod() Method {
	return Method{
		Name: "default",
		Weights: map[string]map[string]float64{
			"coordinate_precision": {"High": 3, "Low": 1},
			"date_recency":         {"recent_20_years": 2},
		},
	}
}

func TestRun(t *testing.T) {
	mb := scoreMatrix(t)
	store := graph.NewStore()
	writer := graph.NewResultWriter(store, time.Now())

	runs := Run([]Method{testMethod()}, dqaf.NewRegistry(), mb, writer, nil)
	require.Len(t, runs, 1)
	run := runs[0]
	require.NoError(t, run.Err)
	require.Len(t, run.Scores, 3)

	// raw 5, 3, 1 normalize to 1, 0.5, 0
	assert.Equal(t, 1.0, run.Scores[0].Normalized)
	assert.Equal(t, 0.5, run.Scores[1].Normalized)
	assert.Equal(t, 0.0, run.Scores[2].Normalized)

	assert.Equal(t, TierHigh, run.Scores[0].Tier)
	assert.Equal(t, TierMedium, run.Scores[1].Tier)
	assert.Equal(t, TierLow, run.Scores[2].Tier)

	assert.Equal(t, 1, run.TierCounts[TierHigh])
	assert.Equal(t, 1, run.TierCounts[TierMedium])
	assert.Equal(t, 1, run.TierCounts[TierLow])

	assert.Equal(t, 3, writer.Count())

	var sb strings.Builder
	require.NoError(t, mb.WriteCSV(&sb))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	assert.True(t, strings.HasSuffix(lines[0], ",default"), "scores appended as a matrix column")
	assert.True(t, strings.HasSuffix(lines[1], ",1.0000"))
	assert.True(t, strings.HasSuffix(lines[3], ",0.0000"))
}

func TestRunNoSpread(t *testing.T) {
	mb := matrix.NewBuilder()
	mb.EnsureRow("obs1", 1)
	mb.EnsureRow("obs2", 2)
	require.NoError(t, mb.Set("obs1", "coordinate_precision:High"))
	require.NoError(t, mb.Set("obs2", "coordinate_precision:High"))

	store := graph.NewStore()
	writer := graph.NewResultWriter(store, time.Now())

	method := Method{
		Name:    "flat",
		Weights: map[string]map[string]float64{"coordinate_precision": {"High": 1}},
	}

	runs := Run([]Method{method}, dqaf.NewRegistry(), mb, writer, nil)
	require.Len(t, runs, 1)
	require.Error(t, runs[0].Err)

	var ce *ConfigurationError
	assert.ErrorAs(t, runs[0].Err, &ce)
	assert.Equal(t, 0, writer.Count(), "aborted method writes nothing")
}

func TestRunUnknownColumn(t *testing.T) {
	mb := scoreMatrix(t)
	store := graph.NewStore()
	writer := graph.NewResultWriter(store, time.Now())

	broken := Method{
		Name:    "broken",
		Weights: map[string]map[string]float64{"not_a_dimension": {"x": 1}},
	}

	runs := Run([]Method{broken, testMethod()}, dqaf.NewRegistry(), mb, writer, nil)
	require.Len(t, runs, 2)
	assert.Error(t, runs[0].Err)
	assert.NoError(t, runs[1].Err, "sibling method still runs")
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 0.3333, round4(1.0/3.0))
	assert.Equal(t, 0.6667, round4(2.0/3.0))
	assert.Equal(t, 1.0, round4(1.0))
}
