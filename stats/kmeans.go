package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MaxKMeansClusters caps the cluster counts tried by SelectK.
const MaxKMeansClusters = 10

// KMeans1D clusters scalar values into k clusters with Lloyd's
// algorithm. Centroids are seeded at evenly spaced quantiles of the
// data, so results are deterministic for a given input.
func KMeans1D(xs []float64, k int) []int {
	n := len(xs)
	if k < 1 || n == 0 {
		return nil
	}
	if k > n {
		k = n
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	centroids := make([]float64, k)
	if k == 1 {
		centroids[0] = stat.Mean(sorted, nil)
	} else {
		for i := range centroids {
			p := float64(i) / float64(k-1)
			centroids[i] = stat.Quantile(p, stat.LinInterp, sorted, nil)
		}
	}

	labels := make([]int, n)
	for iter := 0; iter < 100; iter++ {
		changed := false
		for i, x := range xs {
			best := nearestCentroid(centroids, x)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, x := range xs {
			sums[labels[i]] += x
			counts[labels[i]]++
		}
		for c := range centroids {
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}

		if !changed && iter > 0 {
			break
		}
	}
	return labels
}

func nearestCentroid(centroids []float64, x float64) int {
	best := 0
	bestDist := math.Abs(x - centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := math.Abs(x - centroids[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// Silhouette computes the mean silhouette coefficient of a 1-D
// clustering. Returns 0 when the labeling has fewer than two occupied
// clusters.
func Silhouette(xs []float64, labels []int) float64 {
	n := len(xs)
	clusters := make(map[int][]int)
	for i, l := range labels {
		clusters[l] = append(clusters[l], i)
	}
	if len(clusters) < 2 {
		return 0
	}

	var total float64
	for i := 0; i < n; i++ {
		own := clusters[labels[i]]
		if len(own) == 1 {
			continue
		}

		var a float64
		for _, j := range own {
			if j != i {
				a += math.Abs(xs[i] - xs[j])
			}
		}
		a /= float64(len(own) - 1)

		b := math.Inf(1)
		for l, members := range clusters {
			if l == labels[i] {
				continue
			}
			var d float64
			for _, j := range members {
				d += math.Abs(xs[i] - xs[j])
			}
			d /= float64(len(members))
			b = math.Min(b, d)
		}

		if m := math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}
	return total / float64(n)
}

// SelectK picks the cluster count in [2, min(n, MaxKMeansClusters)]
// with the best silhouette score. Falls back to 2 when no candidate
// produces a usable clustering.
func SelectK(xs []float64) int {
	n := len(xs)
	maxK := MaxKMeansClusters
	if n < maxK {
		maxK = n
	}

	bestK := 2
	bestScore := math.Inf(-1)
	for k := 2; k <= maxK; k++ {
		labels := KMeans1D(xs, k)
		score := Silhouette(xs, labels)
		if score > bestScore {
			bestScore = score
			bestK = k
		}
	}
	return bestK
}

// SmallestCluster returns the label of the cluster with the fewest
// members. Ties resolve to the lower label.
func SmallestCluster(labels []int) int {
	counts := make(map[int]int)
	for _, l := range labels {
		counts[l]++
	}

	best, bestCount := -1, math.MaxInt
	keys := make([]int, 0, len(counts))
	for l := range counts {
		keys = append(keys, l)
	}
	sort.Ints(keys)
	for _, l := range keys {
		if counts[l] < bestCount {
			best = l
			bestCount = counts[l]
		}
	}
	return best
}
