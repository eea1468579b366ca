package assess

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/matrix"
	"github.com/bdr-au/dataquality/observation"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func runBatch(t *testing.T, records []observation.Record) (*Result, *graph.Store) {
	t.Helper()
	store := graph.NewStore()
	writer := graph.NewResultWriter(store, testNow)
	runner := NewRunner(dqaf.NewRegistry(), nil, testNow, 20, nil)

	res, err := runner.Run(records, writer)
	require.NoError(t, err)
	return res, store
}

func cell(t *testing.T, mb *matrix.Builder, obs string, dim dqaf.Dimension, label string) int8 {
	t.Helper()
	v, err := mb.ValueOrZero(obs, dim.Column(label))
	require.NoError(t, err)
	return v
}

func TestRunDateRecency(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Date: "2023-05-14"},
		{ID: "obs2", RecordNumber: 2, Date: "1987-03-01"},
		{ID: "obs3", RecordNumber: 3, Date: "2004-01-01"},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	assert.Equal(t, int8(1), cell(t, mb, "obs1", dqaf.DateRecency, "recent_20_years"))
	assert.Equal(t, int8(1), cell(t, mb, "obs2", dqaf.DateRecency, "outdated_20_years"))
	assert.Equal(t, int8(1), cell(t, mb, "obs3", dqaf.DateRecency, "recent_20_years"),
		"window boundary year is recent")

	for _, obs := range []string{"obs1", "obs2", "obs3"} {
		assert.Equal(t, int8(1), cell(t, mb, obs, dqaf.DateCompleteness, "non_empty"))
		assert.Equal(t, int8(1), cell(t, mb, obs, dqaf.DateFormatValidation, "valid"))
	}
}

func TestRunEmptyAndInvalidDates(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Date: ""},
		{ID: "obs2", RecordNumber: 2, Date: "not a date"},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	assert.Equal(t, int8(1), cell(t, mb, "obs1", dqaf.DateCompleteness, "empty"))
	assert.Equal(t, int8(0), cell(t, mb, "obs1", dqaf.DateFormatValidation, "invalid"),
		"empty dates are not format-checked")

	assert.Equal(t, int8(1), cell(t, mb, "obs2", dqaf.DateCompleteness, "non_empty"))
	assert.Equal(t, int8(1), cell(t, mb, "obs2", dqaf.DateFormatValidation, "invalid"))
	assert.Equal(t, int8(0), cell(t, mb, "obs2", dqaf.DateRecency, "recent_20_years"),
		"unparseable dates are not recency-checked")
}

func TestRunCoordinates(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Lon: "145.123456", Lat: "-37.813611"},
		{ID: "obs2", RecordNumber: 2, Lon: "145.1", Lat: "-37.8"},
		{ID: "obs3", RecordNumber: 3, Lon: "145.111111", Lat: "-37.8136"},
		{ID: "obs4", RecordNumber: 4},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	assert.Equal(t, int8(1), cell(t, mb, "obs1", dqaf.CoordinatePrecision, "High"))
	assert.Equal(t, int8(1), cell(t, mb, "obs2", dqaf.CoordinatePrecision, "Low"))
	assert.Equal(t, int8(1), cell(t, mb, "obs3", dqaf.CoordinateUnusual, "unusual"))
	assert.Equal(t, int8(1), cell(t, mb, "obs1", dqaf.CoordinateUnusual, "usual"))

	assert.Equal(t, int8(1), cell(t, mb, "obs4", dqaf.CoordinateCompleteness, "empty"))
	assert.Equal(t, int8(0), cell(t, mb, "obs4", dqaf.CoordinatePrecision, "Low"),
		"missing coordinates are not precision-checked")
}

func TestRunCoordinateOutlierIQR(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Lon: "145.1", Lat: "-37.1"},
		{ID: "obs2", RecordNumber: 2, Lon: "145.2", Lat: "-37.2"},
		{ID: "obs3", RecordNumber: 3, Lon: "145.3", Lat: "-37.3"},
		{ID: "obs4", RecordNumber: 4, Lon: "145.4", Lat: "-37.4"},
		{ID: "obs5", RecordNumber: 5, Lon: "145.5", Lat: "-37.5"},
		{ID: "obs6", RecordNumber: 6, Lon: "10.0", Lat: "50.0"},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	assert.Equal(t, int8(1), cell(t, mb, "obs6", dqaf.CoordinateOutlierIQR, "outlier_coordinate"))
	assert.Equal(t, int8(1), cell(t, mb, "obs6", dqaf.CoordinateOutlierZScore, "normal_coordinate"),
		"one far point among six does not exceed |z| > 3")
	for i := 1; i <= 5; i++ {
		obs := fmt.Sprintf("obs%d", i)
		assert.Equal(t, int8(1), cell(t, mb, obs, dqaf.CoordinateOutlierIQR, "normal_coordinate"))
	}
}

func TestRunSmallBatchSkipsOutlierDimensions(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Lon: "145.1", Lat: "-37.1", Date: "2023-05-14"},
		{ID: "obs2", RecordNumber: 2, Lon: "145.2", Lat: "-37.2", Date: "2023-06-14"},
	}

	res, _ := runBatch(t, records)

	skipped := make(map[dqaf.Dimension]bool)
	for _, s := range res.Skipped {
		skipped[s.Dimension] = true
	}

	assert.True(t, skipped[dqaf.CoordinateOutlierIQR])
	assert.True(t, skipped[dqaf.DateOutlierIQR])
	assert.True(t, skipped[dqaf.CoordinateInAustralia], "no boundaries loaded")
	assert.False(t, skipped[dqaf.CoordinateOutlierZScore], "two spread points are enough for z-scores")
}

func TestRunDateOutlierKMeansIdenticalDates(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Date: "2023-05-14"},
		{ID: "obs2", RecordNumber: 2, Date: "2023-05-14"},
		{ID: "obs3", RecordNumber: 3, Date: "2023-05-14"},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	for _, obs := range []string{"obs1", "obs2", "obs3"} {
		assert.Equal(t, int8(1), cell(t, mb, obs, dqaf.DateOutlierKMeans, "normal_date"))
	}
}

func TestRunDateOutlierKMeansFlagsSmallCluster(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Date: "2023-05-01"},
		{ID: "obs2", RecordNumber: 2, Date: "2023-05-02"},
		{ID: "obs3", RecordNumber: 3, Date: "2023-05-03"},
		{ID: "obs4", RecordNumber: 4, Date: "2023-05-04"},
		{ID: "obs5", RecordNumber: 5, Date: "1980-01-01"},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	assert.Equal(t, int8(1), cell(t, mb, "obs5", dqaf.DateOutlierKMeans, "outlier_date"))
	assert.Equal(t, int8(1), cell(t, mb, "obs1", dqaf.DateOutlierKMeans, "normal_date"))
}

func TestRunScientificNames(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, ScientificName: "Eucalyptus regnans"},
		{ID: "obs2", RecordNumber: 2, ScientificName: "eucalyptus"},
		{ID: "obs3", RecordNumber: 3, ScientificName: "Eucalyptus"},
		{ID: "obs4", RecordNumber: 4},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	assert.Equal(t, int8(1), cell(t, mb, "obs1", dqaf.ScientificNameValidation, "valid_name"))
	assert.Equal(t, int8(1), cell(t, mb, "obs2", dqaf.ScientificNameValidation, "invalid_name"))
	assert.Equal(t, int8(1), cell(t, mb, "obs3", dqaf.ScientificNameValidation, "valid_name"),
		"genus alone is a valid name")
	assert.Equal(t, int8(1), cell(t, mb, "obs4", dqaf.ScientificNameComplete, "empty_name"))
}

func TestRunDatums(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Datum: dqaf.EPSGNamespace + "4326"},
		{ID: "obs2", RecordNumber: 2, Datum: dqaf.EPSGNamespace + "9999"},
		{ID: "obs3", RecordNumber: 3},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	assert.Equal(t, int8(1), cell(t, mb, "obs1", dqaf.DatumValidation, "valid"))
	assert.Equal(t, int8(1), cell(t, mb, "obs1", dqaf.DatumType, "WGS84"))
	assert.Equal(t, int8(1), cell(t, mb, "obs2", dqaf.DatumValidation, "invalid"))
	assert.Equal(t, int8(1), cell(t, mb, "obs2", dqaf.DatumType, "None"))
	assert.Equal(t, int8(1), cell(t, mb, "obs3", dqaf.DatumCompleteness, "empty"))
	assert.Equal(t, int8(1), cell(t, mb, "obs3", dqaf.DatumType, "None"))
}

func TestRunWritesResultsAndAssessmentDate(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1, Date: "2023-05-14", ScientificName: "Eucalyptus regnans"},
	}

	res, store := runBatch(t, records)

	// Every matrix hit corresponds to one result node.
	hits := 0
	for _, total := range res.Matrix.ColumnTotals() {
		hits += total
	}
	links := store.Objects("obs1", dqaf.ResultHasResult)
	assert.Equal(t, hits, len(links))

	// The run date is stamped on the observation.
	dates := store.Objects("obs1", dqaf.PropAssessmentDate)
	require.Len(t, dates, 1)
	assert.Equal(t, "2024-06-01", dates[0])
}

func TestRunMatrixShape(t *testing.T) {
	records := []observation.Record{
		{ID: "obs1", RecordNumber: 1},
		{ID: "obs2", RecordNumber: 2, Date: "2023-05-14"},
	}

	res, _ := runBatch(t, records)
	mb := res.Matrix

	assert.Equal(t, 2, mb.RowCount(), "every observation has a row")

	// Only (dimension, label) pairs this batch produced become
	// columns. No record carries a datum link or a coordinate, so
	// those labels never materialize.
	assert.True(t, mb.HasColumn(dqaf.DateRecency.Column("recent_20_years")))
	assert.True(t, mb.HasColumn(dqaf.DatumType.Column("None")))
	assert.False(t, mb.HasColumn(dqaf.DatumType.Column("WGS84")))
	assert.False(t, mb.HasColumn(dqaf.CoordinatePrecision.Column("High")))
	assert.False(t, mb.HasColumn(dqaf.DateRecency.Column("outdated_20_years")))

	assert.Less(t, len(mb.Columns()), len(dqaf.NewRegistry().AllColumns()),
		"column count tracks observed pairs, not the full catalogue")
}
