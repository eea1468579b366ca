// Package assess runs every data-quality dimension over a batch of
// observation records, producing result triples and the one-hot
// assessment matrix in one pass.
package assess

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/bdr-au/dataquality/datecheck"
	"github.com/bdr-au/dataquality/datum"
	"github.com/bdr-au/dataquality/geo"
	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/matrix"
	"github.com/bdr-au/dataquality/observation"
	"github.com/bdr-au/dataquality/stats"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// scientificNamePattern accepts binomial names: a capitalized genus
// optionally followed by a lowercase epithet.
var scientificNamePattern = regexp.MustCompile(`^[A-Z][a-z]+(?:\s[a-z]+)?$`)

// Skip records a dimension that could not run over this batch.
type Skip struct {
	Dimension dqaf.Dimension
	Reason    string
}

// Runner assesses observation batches. Boundaries may be nil, in which
// case the state-location dimension is skipped.
type Runner struct {
	registry    *dqaf.Registry
	boundaries  *geo.Boundaries
	now         time.Time
	windowYears int
	logger      *slog.Logger
}

// NewRunner creates a runner. now anchors the recency window and the
// result timestamps.
func NewRunner(registry *dqaf.Registry, boundaries *geo.Boundaries, now time.Time, windowYears int, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if windowYears <= 0 {
		windowYears = datecheck.RecencyWindowYears
	}
	return &Runner{
		registry:    registry,
		boundaries:  boundaries,
		now:         now,
		windowYears: windowYears,
		logger:      logger,
	}
}

// Result is the output of one assessment run.
type Result struct {
	Matrix  *matrix.Builder
	Skipped []Skip
}

// Run assesses all records, appending result triples through the
// writer and filling a fresh matrix. Every record gets a matrix row
// even when no dimension fires for it.
func (r *Runner) Run(records []observation.Record, writer *graph.ResultWriter) (*Result, error) {
	mb := matrix.NewBuilder()
	for _, rec := range records {
		mb.EnsureRow(rec.ID, rec.RecordNumber)
	}

	res := &Result{Matrix: mb}
	run := &runState{Runner: r, records: records, writer: writer, matrix: mb, result: res}

	run.assessCoordinates()
	run.assessCoordinateOutliers()
	run.assessDates()
	run.assessDateOutliers()
	run.assessScientificNames()
	run.assessDatums()
	run.stampAssessmentDate()

	r.logger.Info("assessment complete",
		"observations", len(records),
		"results", writer.Count(),
		"skipped_dimensions", len(res.Skipped))
	return res, nil
}

type runState struct {
	*Runner
	records []observation.Record
	writer  *graph.ResultWriter
	matrix  *matrix.Builder
	result  *Result
}

// record writes one outcome: a result triple and the matrix cell.
func (s *runState) record(obs string, dim dqaf.Dimension, label string) error {
	def, ok := s.registry.Dimension(dim)
	if !ok {
		return fmt.Errorf("unknown dimension %s", dim)
	}
	value, err := def.Value(label)
	if err != nil {
		return err
	}
	s.writer.WriteResult(obs, def, value)
	return s.matrix.Set(obs, dim.Column(label))
}

// mustRecord panics on label errors. Labels come from the static
// catalogue, so a failure here is a programming error.
func (s *runState) mustRecord(obs string, dim dqaf.Dimension, label string) {
	if err := s.record(obs, dim, label); err != nil {
		panic(fmt.Sprintf("assess: %v", err))
	}
}

func (s *runState) skip(dim dqaf.Dimension, reason string) {
	s.logger.Warn("skipping dimension", "dimension", dim, "reason", reason)
	s.result.Skipped = append(s.result.Skipped, Skip{Dimension: dim, Reason: reason})
}

// assessCoordinates covers completeness, precision, repeating-fraction
// detection, and state location. Precision and pattern checks read the
// axes as written.
func (s *runState) assessCoordinates() {
	if s.boundaries == nil {
		s.skip(dqaf.CoordinateInAustralia, "no state boundaries loaded")
	}

	for _, rec := range s.records {
		if !rec.HasCoordinate() {
			s.mustRecord(rec.ID, dqaf.CoordinateCompleteness, "empty")
			continue
		}
		s.mustRecord(rec.ID, dqaf.CoordinateCompleteness, "non_empty")
		s.mustRecord(rec.ID, dqaf.CoordinatePrecision, geo.Precision(rec.Lon, rec.Lat))

		if geo.IsUnusual(rec.Lon, rec.Lat) {
			s.mustRecord(rec.ID, dqaf.CoordinateUnusual, "unusual")
		} else {
			s.mustRecord(rec.ID, dqaf.CoordinateUnusual, "usual")
		}

		if s.boundaries != nil {
			if lon, lat, ok := rec.LonLat(); ok {
				s.mustRecord(rec.ID, dqaf.CoordinateInAustralia, s.boundaries.Locate(lon, lat))
			} else {
				s.mustRecord(rec.ID, dqaf.CoordinateInAustralia, geo.OutsideAustralia)
			}
		}
	}
}

// assessCoordinateOutliers runs the batch-statistical detectors. Both
// detectors flag a record when either axis trips.
func (s *runState) assessCoordinateOutliers() {
	type point struct {
		id       string
		lon, lat float64
	}
	var points []point
	for _, rec := range s.records {
		if lon, lat, ok := rec.LonLat(); ok {
			points = append(points, point{rec.ID, lon, lat})
		}
	}

	lons := make([]float64, len(points))
	lats := make([]float64, len(points))
	for i, p := range points {
		lons[i] = p.lon
		lats[i] = p.lat
	}

	lonFences, lonOK := stats.IQRFences(lons)
	latFences, latOK := stats.IQRFences(lats)
	if !lonOK || !latOK {
		s.skip(dqaf.CoordinateOutlierIQR,
			fmt.Sprintf("need at least %d coordinates, have %d", stats.MinIQRSamples, len(points)))
	} else {
		for _, p := range points {
			if lonFences.Outside(p.lon) || latFences.Outside(p.lat) {
				s.mustRecord(p.id, dqaf.CoordinateOutlierIQR, "outlier_coordinate")
			} else {
				s.mustRecord(p.id, dqaf.CoordinateOutlierIQR, "normal_coordinate")
			}
		}
	}

	lonZ, lonOK := stats.ZScores(lons)
	latZ, latOK := stats.ZScores(lats)
	if !lonOK && !latOK {
		s.skip(dqaf.CoordinateOutlierZScore,
			fmt.Sprintf("need at least %d coordinates with spread, have %d", stats.MinZScoreSamples, len(points)))
	} else {
		for i, p := range points {
			outlier := false
			if lonOK && abs(lonZ[i]) > stats.ZScoreThreshold {
				outlier = true
			}
			if latOK && abs(latZ[i]) > stats.ZScoreThreshold {
				outlier = true
			}
			if outlier {
				s.mustRecord(p.id, dqaf.CoordinateOutlierZScore, "outlier_coordinate")
			} else {
				s.mustRecord(p.id, dqaf.CoordinateOutlierZScore, "normal_coordinate")
			}
		}
	}
}

// assessDates covers completeness, format validation, and recency.
// Recency only applies to dates that parse.
func (s *runState) assessDates() {
	for _, rec := range s.records {
		if rec.Date == "" {
			s.mustRecord(rec.ID, dqaf.DateCompleteness, "empty")
			continue
		}
		s.mustRecord(rec.ID, dqaf.DateCompleteness, "non_empty")

		t, ok := datecheck.Parse(rec.Date)
		if !ok {
			s.mustRecord(rec.ID, dqaf.DateFormatValidation, "invalid")
			continue
		}
		s.mustRecord(rec.ID, dqaf.DateFormatValidation, "valid")

		if datecheck.IsRecent(t, s.now, s.windowYears) {
			s.mustRecord(rec.ID, dqaf.DateRecency, "recent_20_years")
		} else {
			s.mustRecord(rec.ID, dqaf.DateRecency, "outdated_20_years")
		}
	}
}

// assessDateOutliers runs the IQR and k-means detectors over the
// ordinal day values of parseable dates.
func (s *runState) assessDateOutliers() {
	var ids []string
	var days []float64
	for _, rec := range s.records {
		if t, ok := datecheck.Parse(rec.Date); ok {
			ids = append(ids, rec.ID)
			days = append(days, datecheck.OrdinalDays(t))
		}
	}

	fences, ok := stats.IQRFences(days)
	if !ok {
		s.skip(dqaf.DateOutlierIQR,
			fmt.Sprintf("need at least %d dates, have %d", stats.MinIQRSamples, len(days)))
	} else {
		for i, id := range ids {
			if fences.Outside(days[i]) {
				s.mustRecord(id, dqaf.DateOutlierIQR, "outlier_date")
			} else {
				s.mustRecord(id, dqaf.DateOutlierIQR, "normal_date")
			}
		}
	}

	s.assessDateKMeans(ids, days)
}

func (s *runState) assessDateKMeans(ids []string, days []float64) {
	if len(days) < 2 {
		s.skip(dqaf.DateOutlierKMeans,
			fmt.Sprintf("need at least 2 dates, have %d", len(days)))
		return
	}

	scaled := stats.MinMaxScale(days)
	spread := false
	for _, v := range scaled {
		if v != 0 {
			spread = true
			break
		}
	}
	if !spread {
		// All dates identical: nothing can be an outlier.
		for _, id := range ids {
			s.mustRecord(id, dqaf.DateOutlierKMeans, "normal_date")
		}
		return
	}

	k := stats.SelectK(scaled)
	labels := stats.KMeans1D(scaled, k)
	outlierCluster := stats.SmallestCluster(labels)
	for i, id := range ids {
		if labels[i] == outlierCluster {
			s.mustRecord(id, dqaf.DateOutlierKMeans, "outlier_date")
		} else {
			s.mustRecord(id, dqaf.DateOutlierKMeans, "normal_date")
		}
	}
}

// assessScientificNames covers completeness and binomial validation.
func (s *runState) assessScientificNames() {
	for _, rec := range s.records {
		if rec.ScientificName == "" {
			s.mustRecord(rec.ID, dqaf.ScientificNameComplete, "empty_name")
			continue
		}
		s.mustRecord(rec.ID, dqaf.ScientificNameComplete, "non_empty_name")

		if scientificNamePattern.MatchString(rec.ScientificName) {
			s.mustRecord(rec.ID, dqaf.ScientificNameValidation, "valid_name")
		} else {
			s.mustRecord(rec.ID, dqaf.ScientificNameValidation, "invalid_name")
		}
	}
}

// assessDatums covers presence, validation, and type of the geometry
// datum link.
func (s *runState) assessDatums() {
	for _, rec := range s.records {
		if !datum.IsPresent(rec.Datum) {
			s.mustRecord(rec.ID, dqaf.DatumCompleteness, "empty")
			s.mustRecord(rec.ID, dqaf.DatumType, "None")
			continue
		}
		s.mustRecord(rec.ID, dqaf.DatumCompleteness, "not_empty")

		if datum.IsValid(rec.Datum) {
			s.mustRecord(rec.ID, dqaf.DatumValidation, "valid")
		} else {
			s.mustRecord(rec.ID, dqaf.DatumValidation, "invalid")
		}
		s.mustRecord(rec.ID, dqaf.DatumType, datum.Classify(rec.Datum))
	}
}

// stampAssessmentDate writes the run date onto every observation.
func (s *runState) stampAssessmentDate() {
	date := s.now.Format("2006-01-02")
	store := s.writer.Store()
	for _, rec := range s.records {
		store.Add(assessmentDateTriple(rec.ID, date, s.now))
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
