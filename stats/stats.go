// Package stats provides the batch statistics behind the outlier
// detectors: quartile fences, z-scores, and 1-D k-means clustering.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MinIQRSamples is the smallest batch the IQR detector runs on.
const MinIQRSamples = 4

// MinZScoreSamples is the smallest batch the z-score detector runs on.
const MinZScoreSamples = 2

// ZScoreThreshold marks values whose |z| exceeds it as outliers.
const ZScoreThreshold = 3.0

// Fences are the lower and upper cut-offs of an outlier test.
type Fences struct {
	Lower float64
	Upper float64
}

// Outside reports whether x falls outside the fences.
func (f Fences) Outside(x float64) bool {
	return x < f.Lower || x > f.Upper
}

// IQRFences computes the Tukey fences Q1-1.5*IQR and Q3+1.5*IQR.
// Returns false when the batch is smaller than MinIQRSamples.
func IQRFences(xs []float64) (Fences, bool) {
	if len(xs) < MinIQRSamples {
		return Fences{}, false
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	iqr := q3 - q1
	return Fences{Lower: q1 - 1.5*iqr, Upper: q3 + 1.5*iqr}, true
}

// ZScores standardizes the batch against its own mean and population
// standard deviation. Returns false when the batch is smaller than
// MinZScoreSamples or has zero spread.
func ZScores(xs []float64) ([]float64, bool) {
	if len(xs) < MinZScoreSamples {
		return nil, false
	}
	mean := stat.Mean(xs, nil)
	var variance float64
	for _, x := range xs {
		variance += (x - mean) * (x - mean)
	}
	std := math.Sqrt(variance / float64(len(xs)))
	if std == 0 {
		return nil, false
	}

	zs := make([]float64, len(xs))
	for i, x := range xs {
		zs[i] = (x - mean) / std
	}
	return zs, true
}

// MinMaxScale maps the batch onto [0, 1]. A batch with zero spread
// scales to all zeros.
func MinMaxScale(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	out := make([]float64, len(xs))
	if hi == lo {
		return out
	}
	for i, x := range xs {
		out[i] = (x - lo) / (hi - lo)
	}
	return out
}
