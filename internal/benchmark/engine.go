// Package benchmark provides the harness that times factorization trials,
// aggregates statistics, computes the PFF metric, and drives multi-size
// scaling analysis.
//
// Trials within a run execute strictly sequentially: the PFF metric and the
// retry loops are defined in terms of per-trial wall-clock duration, and
// interleaving trials would corrupt the timing sample. Independent runs may
// execute concurrently as long as each uses its own Engine.
package benchmark

import (
	"context"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/factoring"
	"github.com/agbru/pffbench/internal/logging"
	"github.com/agbru/pffbench/internal/numtheory"
)

var (
	trialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pffbench_trials_total",
			Help: "The total number of benchmark trials executed",
		},
		[]string{"algorithm", "status"},
	)
	trialDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pffbench_trial_duration_seconds",
			Help: "The duration of benchmark trials in seconds",
		},
		[]string{"algorithm"},
	)
)

// TrialObserver receives notifications at trial boundaries. Implementations
// decouple progress display from the engine; the engine itself never prints.
type TrialObserver interface {
	// TrialStarted is called before a trial begins.
	TrialStarted(trial, total int, n *big.Int)

	// TrialFinished is called after a trial completes, with its outcome.
	TrialFinished(trial, total int, outcome TrialOutcome)
}

// Engine runs benchmark trials for any factoring.Algorithm over randomly
// generated composites of a fixed bit size. An Engine is not safe for
// concurrent use; create one per concurrent run.
type Engine struct {
	gen       *numtheory.Generator
	logger    logging.Logger
	observers []TrialObserver
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator sets the composite generator. Injecting a seeded generator
// makes the trial input sequence reproducible.
func WithGenerator(gen *numtheory.Generator) Option {
	return func(e *Engine) {
		if gen != nil {
			e.gen = gen
		}
	}
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers a trial observer.
func WithObserver(obs TrialObserver) Option {
	return func(e *Engine) {
		if obs != nil {
			e.observers = append(e.observers, obs)
		}
	}
}

// NewEngine creates an Engine. Without options it uses a time-seeded
// generator and a no-op logger.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		gen:    numtheory.NewGenerator(time.Now().UnixNano()),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run benchmarks the algorithm at bit size s over the given number of
// trials. Each trial generates a fresh composite, times the factorization,
// and verifies the factors; only verified successes enter the timing sample.
// A trial failure (validation error, exhausted attempts, verification
// mismatch) is recorded in its outcome and degrades the success rate but
// does not abort the run.
//
// Parameters:
//   - ctx: The context; cancellation aborts the run between trials.
//   - s: The bit size of generated composites; must be >= 2.
//   - alg: The algorithm under test.
//   - trials: The number of trials; must be >= 1.
//   - semiprime: Whether generated composites must be semiprimes.
//
// Returns:
//   - *BenchmarkResult: The aggregated result.
//   - error: A ValidationError for bad parameters, a generation error if an
//     input could not be produced, or a NoSuccessfulTrialsError when every
//     trial failed.
func (e *Engine) Run(ctx context.Context, s int, alg factoring.Algorithm, trials int, semiprime bool) (*BenchmarkResult, error) {
	if s < 2 {
		return nil, apperrors.NewValidationError("s", "integer size must be >= 2", s)
	}
	if trials < 1 {
		return nil, apperrors.NewValidationError("trials", "number of trials must be >= 1", trials)
	}

	tracer := otel.Tracer("pffbench/benchmark")
	ctx, span := tracer.Start(ctx, "benchmark.Run")
	span.SetAttributes(
		attribute.Int("bits", s),
		attribute.String("algorithm", alg.Name()),
		attribute.Int("trials", trials),
	)
	defer span.End()

	e.logger.Info("starting benchmark",
		logging.Int("bits", s),
		logging.String("algorithm", alg.Name()),
		logging.Int("trials", trials),
		logging.Bool("semiprime", semiprime))

	outcomes := make([]TrialOutcome, 0, trials)
	times := make([]float64, 0, trials)

	for trial := 1; trial <= trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := e.gen.Composite(s, semiprime)
		if err != nil {
			return nil, apperrors.WrapError(err, "trial %d input generation failed", trial)
		}

		e.notifyStarted(trial, trials, n)
		outcome := e.runTrial(ctx, alg, n, trial)
		if !outcome.Success && apperrors.IsContextError(ctx.Err()) {
			// The run itself was canceled mid-trial; abort rather than
			// record a spurious failure.
			return nil, ctx.Err()
		}
		outcomes = append(outcomes, outcome)
		if outcome.Success {
			times = append(times, outcome.Seconds)
		}
		e.notifyFinished(trial, trials, outcome)
	}

	if len(times) == 0 {
		return nil, apperrors.NoSuccessfulTrialsError{Trials: trials}
	}

	stats := summarize(times)
	pff, err := CalculatePFF(stats.mean)
	if err != nil {
		return nil, err
	}

	result := &BenchmarkResult{
		Bits:             s,
		Algorithm:        alg.Name(),
		Backend:          alg.Config().Backend,
		Trials:           trials,
		SuccessfulTrials: len(times),
		AvgTime:          stats.mean,
		MinTime:          stats.min,
		MaxTime:          stats.max,
		StdTime:          stats.stdev,
		MedianTime:       stats.median,
		PFF:              pff,
		Timestamp:        time.Now(),
		Outcomes:         outcomes,
		Metadata: map[string]any{
			"semiprime":      semiprime,
			"algorithm_info": alg.Info(),
		},
	}

	e.logger.Info("benchmark complete",
		logging.Int("successful_trials", result.SuccessfulTrials),
		logging.Float64("avg_time", result.AvgTime),
		logging.Float64("pff", result.PFF))

	return result, nil
}

// runTrial executes and times one factorization trial.
func (e *Engine) runTrial(ctx context.Context, alg factoring.Algorithm, n *big.Int, trial int) TrialOutcome {
	outcome := TrialOutcome{
		N:        n,
		Metadata: map[string]any{"trial": trial},
	}

	start := time.Now()
	factors, err := alg.Factor(ctx, n)
	outcome.Seconds = time.Since(start).Seconds()

	status := "failure"
	switch {
	case err != nil:
		outcome.Error = err.Error()
		e.logger.Debug("trial failed",
			logging.Int("trial", trial),
			logging.Err(err))
	case !alg.VerifyFactors(n, factors):
		outcome.Factors = factors
		outcome.Error = "factor verification failed"
	default:
		outcome.Factors = factors
		outcome.Success = true
		status = "success"
	}

	trialsTotal.WithLabelValues(alg.Name(), status).Inc()
	trialDuration.WithLabelValues(alg.Name()).Observe(outcome.Seconds)
	return outcome
}

func (e *Engine) notifyStarted(trial, total int, n *big.Int) {
	for _, obs := range e.observers {
		obs.TrialStarted(trial, total, n)
	}
}

func (e *Engine) notifyFinished(trial, total int, outcome TrialOutcome) {
	for _, obs := range e.observers {
		obs.TrialFinished(trial, total, outcome)
	}
}
