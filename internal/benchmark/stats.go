package benchmark

import (
	"math"
	"sort"

	apperrors "github.com/agbru/pffbench/internal/errors"
)

// SecondsPerYear is the PFF normalization constant: 365 days of seconds.
const SecondsPerYear = 31_536_000

// CalculatePFF computes the Prime Factorization Frequency metric,
// PFF = 31,536,000 / T, the number of factorizations per year implied by an
// average time-to-solution of T seconds.
//
// Parameters:
//   - timePerRun: Average time per factorization, in seconds.
//
// Returns:
//   - float64: The PFF score.
//   - error: An InvalidDurationError when timePerRun <= 0.
func CalculatePFF(timePerRun float64) (float64, error) {
	if timePerRun <= 0 {
		return 0, apperrors.InvalidDurationError{Seconds: timePerRun}
	}
	return SecondsPerYear / timePerRun, nil
}

// timingStats holds the five summary statistics over successful trial
// durations, in seconds.
type timingStats struct {
	mean   float64
	min    float64
	max    float64
	stdev  float64
	median float64
}

// summarize computes timingStats over a non-empty sample. The standard
// deviation is the sample standard deviation, defined as 0 for a single
// observation.
func summarize(sample []float64) timingStats {
	var stats timingStats
	stats.min = math.Inf(1)
	stats.max = math.Inf(-1)

	sum := 0.0
	for _, v := range sample {
		sum += v
		if v < stats.min {
			stats.min = v
		}
		if v > stats.max {
			stats.max = v
		}
	}
	stats.mean = sum / float64(len(sample))
	stats.median = median(sample)
	stats.stdev = sampleStdev(sample, stats.mean)
	return stats
}

// median returns the middle value of the sample (average of the two middle
// values for even-sized samples). The input slice is not modified.
func median(sample []float64) float64 {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// sampleStdev returns the sample standard deviation, 0 when the sample has
// fewer than two observations.
func sampleStdev(sample []float64, mean float64) float64 {
	if len(sample) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range sample {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(sample)-1))
}
