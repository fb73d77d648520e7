package benchmark

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/factoring"
	"github.com/agbru/pffbench/internal/logging"
)

// RunScaling benchmarks the algorithm at each bit size in sequence and
// collates the results into a ScalingResult. Sizes are processed in the
// order given; a failure at any size aborts the run, so partial results are
// never returned.
//
// Parameters:
//   - ctx: The context; cancellation aborts the run.
//   - alg: The algorithm under test.
//   - sizes: The bit sizes to benchmark; must be non-empty with no duplicates.
//   - trials: The number of trials per size; must be >= 1.
//   - semiprime: Whether generated composites must be semiprimes.
//
// Returns:
//   - *ScalingResult: The collated results, keyed by size.
//   - error: A ValidationError for bad parameters, or the first per-size
//     failure wrapped with the size it occurred at.
func (e *Engine) RunScaling(ctx context.Context, alg factoring.Algorithm, sizes []int, trials int, semiprime bool) (*ScalingResult, error) {
	if len(sizes) == 0 {
		return nil, apperrors.NewValidationError("sizes", "at least one size is required", sizes)
	}
	seen := make(map[int]bool, len(sizes))
	for _, s := range sizes {
		if seen[s] {
			return nil, apperrors.NewValidationError("sizes", "duplicate size", s)
		}
		seen[s] = true
	}

	tracer := otel.Tracer("pffbench/benchmark")
	ctx, span := tracer.Start(ctx, "benchmark.RunScaling")
	span.SetAttributes(
		attribute.String("algorithm", alg.Name()),
		attribute.IntSlice("sizes", sizes),
		attribute.Int("trials", trials),
	)
	defer span.End()

	e.logger.Info("starting scaling analysis",
		logging.String("algorithm", alg.Name()),
		logging.Int("sizes", len(sizes)),
		logging.Int("trials", trials))

	results := make(map[int]*BenchmarkResult, len(sizes))
	for _, s := range sizes {
		result, err := e.Run(ctx, s, alg, trials, semiprime)
		if err != nil {
			return nil, apperrors.WrapError(err, "scaling run failed at s=%d", s)
		}
		results[s] = result
	}

	ordered := make([]int, len(sizes))
	copy(ordered, sizes)

	return &ScalingResult{
		Algorithm: alg.Name(),
		Sizes:     ordered,
		Results:   results,
		Timestamp: time.Now(),
	}, nil
}
