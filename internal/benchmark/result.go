package benchmark

import (
	"fmt"
	"math/big"
	"strings"
	"text/tabwriter"
	"time"
)

// TrialOutcome records a single factorization trial. It is created once per
// trial by the engine and immutable afterwards.
type TrialOutcome struct {
	// N is the composite that was factored.
	N *big.Int
	// Factors is the factor list found (empty on failure).
	Factors []*big.Int
	// Seconds is the elapsed wall-clock duration of the trial.
	Seconds float64
	// Success reports whether the trial produced verified factors.
	Success bool
	// Error describes the failure, when Success is false.
	Error string
	// Metadata carries free-form per-trial information.
	Metadata map[string]any
}

// BenchmarkResult aggregates a benchmark run for a single bit size.
// Invariants: SuccessfulTrials <= Trials, and the timing statistics cover
// successful trials only. The engine refuses to construct a result with zero
// successes, so the statistics are always defined.
type BenchmarkResult struct {
	// Bits is the bit size s the benchmark was run at.
	Bits int
	// Algorithm is the algorithm display name.
	Algorithm string
	// Backend is the configured backend name.
	Backend string
	// Trials is the total number of trials performed.
	Trials int
	// SuccessfulTrials is the number of trials with verified factors.
	SuccessfulTrials int
	// AvgTime, MinTime, MaxTime, StdTime, MedianTime are seconds over
	// successful trials.
	AvgTime    float64
	MinTime    float64
	MaxTime    float64
	StdTime    float64
	MedianTime float64
	// PFF is the Prime Factorization Frequency, SecondsPerYear / AvgTime.
	PFF float64
	// Timestamp records when the result was created.
	Timestamp time.Time
	// Outcomes is the ordered per-trial record, owned by this result.
	Outcomes []TrialOutcome
	// Metadata carries run-level information (semiprime flag, algorithm info).
	Metadata map[string]any
}

// SuccessRate returns the fraction of trials that succeeded.
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.SuccessfulTrials) / float64(r.Trials)
}

// Serialize returns the canonical structured representation of the result,
// suitable for JSON encoding and for the HTTP API.
func (r *BenchmarkResult) Serialize() map[string]any {
	return map[string]any{
		"s":                 r.Bits,
		"algorithm":         r.Algorithm,
		"trials":            r.Trials,
		"successful_trials": r.SuccessfulTrials,
		"avg_time":          r.AvgTime,
		"min_time":          r.MinTime,
		"max_time":          r.MaxTime,
		"std_time":          r.StdTime,
		"median_time":       r.MedianTime,
		"pff":               r.PFF,
		"timestamp":         r.Timestamp.Format(time.RFC3339Nano),
		"backend":           r.Backend,
		"metadata":          r.Metadata,
		"success_rate":      r.SuccessRate(),
	}
}

// Summary returns a human-readable report of the benchmark run.
func (r *BenchmarkResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PFF Benchmark Results\n")
	fmt.Fprintf(&b, "=====================\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Integer Size (s):\t%d bits\n", r.Bits)
	fmt.Fprintf(tw, "Algorithm:\t%s\n", r.Algorithm)
	fmt.Fprintf(tw, "Backend:\t%s\n", r.Backend)
	fmt.Fprintf(tw, "Trials:\t%d\n", r.Trials)
	fmt.Fprintf(tw, "Successful:\t%d (%.1f%%)\n", r.SuccessfulTrials, r.SuccessRate()*100)
	fmt.Fprintf(tw, "Average Time (Ts):\t%.6f s\n", r.AvgTime)
	fmt.Fprintf(tw, "Min Time:\t%.6f s\n", r.MinTime)
	fmt.Fprintf(tw, "Max Time:\t%.6f s\n", r.MaxTime)
	fmt.Fprintf(tw, "Std Deviation:\t%.6f s\n", r.StdTime)
	fmt.Fprintf(tw, "Median Time:\t%.6f s\n", r.MedianTime)
	tw.Flush()

	fmt.Fprintf(&b, "\nPFF(s=%d) = %.0f factorizations/year\n", r.Bits, r.PFF)
	return b.String()
}

// ScalingResult collates benchmark results across a sequence of bit sizes.
// Invariant: the key set of Results equals the value set of Sizes.
type ScalingResult struct {
	// Algorithm is the algorithm display name.
	Algorithm string
	// Sizes is the ordered list of tested bit sizes.
	Sizes []int
	// Results maps each size to its benchmark result, owned by this value.
	Results map[int]*BenchmarkResult
	// Timestamp records when the scaling run completed.
	Timestamp time.Time
}

// PFFSeries returns the PFF value for each tested size.
func (s *ScalingResult) PFFSeries() map[int]float64 {
	series := make(map[int]float64, len(s.Results))
	for size, result := range s.Results {
		series[size] = result.PFF
	}
	return series
}

// TimingSeries returns the average factorization time for each tested size.
func (s *ScalingResult) TimingSeries() map[int]float64 {
	series := make(map[int]float64, len(s.Results))
	for size, result := range s.Results {
		series[size] = result.AvgTime
	}
	return series
}

// Serialize returns the canonical structured representation of the scaling
// analysis.
func (s *ScalingResult) Serialize() map[string]any {
	return map[string]any{
		"algorithm":     s.Algorithm,
		"sizes":         s.Sizes,
		"pff_series":    s.PFFSeries(),
		"timing_series": s.TimingSeries(),
		"timestamp":     s.Timestamp.Format(time.RFC3339Nano),
	}
}

// Summary returns a human-readable table of the scaling analysis.
func (s *ScalingResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scaling Analysis Results\n")
	fmt.Fprintf(&b, "Algorithm: %s\n\n", s.Algorithm)

	tw := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Size (bits)\tAvg Time (s)\tPFF (per year)")
	for _, size := range s.Sizes {
		result := s.Results[size]
		fmt.Fprintf(tw, "%d\t%.6f\t%.0f\n", size, result.AvgTime, result.PFF)
	}
	tw.Flush()
	return b.String()
}
