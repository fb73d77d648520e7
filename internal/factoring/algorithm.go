// Package factoring provides the pluggable integer-factorization algorithms
// benchmarked by this suite. It exposes an `Algorithm` interface that
// abstracts the factoring strategy, allowing classical and quantum-style
// period-finding implementations to be used interchangeably by the benchmark
// engine. The package integrates prometheus instrumentation and otel tracing
// through a decorator applied by the registry.
package factoring

import (
	"context"
	"math/big"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"

	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/numtheory"
)

// Default configuration values for algorithm instances.
const (
	// DefaultBackend is the period-oracle backend used when none is configured.
	DefaultBackend = "simulator"
	// DefaultShots is the number of sampling repetitions per oracle call.
	DefaultShots = 1024
	// DefaultOptimizationLevel mirrors the circuit-optimization level knob of
	// quantum backends; it is carried as metadata and passed to the oracle.
	DefaultOptimizationLevel = 1
	// DefaultMaxIterations is the attempt budget of the period-finding loop.
	DefaultMaxIterations = 10
)

var (
	factorizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pffbench_factorizations_total",
			Help: "The total number of factorization calls processed",
		},
		[]string{"algorithm", "status"},
	)
	factorizationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pffbench_factorization_duration_seconds",
			Help: "The duration of factorization calls in seconds",
		},
		[]string{"algorithm"},
	)
)

// Config holds the immutable configuration shared by algorithm instances.
// Invariants: Shots > 0; MaxIterations, when set, > 0. Zero values are
// normalized to the package defaults at construction time.
type Config struct {
	// Backend identifies the execution substrate (e.g. "simulator").
	Backend string
	// Shots is the number of quantum sampling repetitions per oracle call.
	Shots int
	// OptimizationLevel is the circuit-optimization level, kept as metadata.
	OptimizationLevel int
	// MaxIterations caps the period-finding attempt loop. 0 means default.
	MaxIterations int
	// OracleTimeout bounds a single oracle call. On expiry the attempt is
	// treated as "no period found", not as a hard failure. 0 means no bound.
	OracleTimeout time.Duration
	// Params is an open mapping of extra backend parameters.
	Params map[string]any
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{
		Backend:           DefaultBackend,
		Shots:             DefaultShots,
		OptimizationLevel: DefaultOptimizationLevel,
		MaxIterations:     DefaultMaxIterations,
	}
}

// Validate checks the configuration invariants.
//
// Returns:
//   - error: A ValidationError when Shots or MaxIterations are out of range.
func (c Config) Validate() error {
	if c.Shots <= 0 {
		return apperrors.NewValidationError("shots", "must be strictly positive", c.Shots)
	}
	if c.MaxIterations < 0 {
		return apperrors.NewValidationError("max_iterations", "cannot be negative", c.MaxIterations)
	}
	return nil
}

// normalizeConfig returns a copy of cfg with defaults filled in for zero
// values, so every algorithm instance sees a fully-populated configuration.
func normalizeConfig(cfg Config) Config {
	if cfg.Backend == "" {
		cfg.Backend = DefaultBackend
	}
	if cfg.Shots == 0 {
		cfg.Shots = DefaultShots
	}
	if cfg.OptimizationLevel == 0 {
		cfg.OptimizationLevel = DefaultOptimizationLevel
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return cfg
}

// Algorithm defines the capability contract every factorization strategy
// implements. Implementations hold no cross-call mutable state beyond their
// fixed configuration, so independent benchmark runs may use separate
// instances concurrently.
type Algorithm interface {
	// Factor decomposes n into an ascending list of prime factors whose
	// product is n. The precondition is that ValidateInput(n) holds; the
	// postcondition is that VerifyFactors(n, result) is true, otherwise
	// Factor fails with a FactorizationFailedError.
	Factor(ctx context.Context, n *big.Int) ([]*big.Int, error)

	// ValidateInput fails with an InvalidInputError when n < 2, n == 2, or
	// n is prime. It must run before any factoring work.
	ValidateInput(n *big.Int) error

	// VerifyFactors reports whether factors is a non-empty list of primes
	// whose product equals n. It never fails.
	VerifyFactors(n *big.Int, factors []*big.Int) bool

	// Info returns a fresh metadata snapshot (name, kind, backend, version,
	// configuration parameters). It is used purely for reporting, never for
	// control flow.
	Info() map[string]any

	// Name returns the algorithm display name.
	Name() string

	// Config returns the algorithm configuration.
	Config() Config
}

// ValidateInput implements the shared input contract for all algorithms.
func ValidateInput(n *big.Int) error {
	if n.Cmp(big.NewInt(2)) < 0 {
		return apperrors.NewInvalidInputError(n, "must be >= 2")
	}
	if n.Cmp(big.NewInt(2)) == 0 {
		return apperrors.NewInvalidInputError(n, "2 is prime, cannot factor")
	}
	if numtheory.IsPrime(n) {
		return apperrors.NewInvalidInputError(n, "prime, cannot factor")
	}
	return nil
}

// VerifyFactors implements the shared verification contract: false for an
// empty list, for a product mismatch, and for any non-prime factor.
func VerifyFactors(n *big.Int, factors []*big.Int) bool {
	if len(factors) == 0 {
		return false
	}
	product := big.NewInt(1)
	for _, f := range factors {
		product.Mul(product, f)
	}
	if product.Cmp(n) != 0 {
		return false
	}
	for _, f := range factors {
		if !numtheory.IsPrime(f) {
			return false
		}
	}
	return true
}

// sortFactors orders a factor list ascending in place.
func sortFactors(factors []*big.Int) {
	sort.Slice(factors, func(i, j int) bool {
		return factors[i].Cmp(factors[j]) < 0
	})
}

// configParams builds the parameters section of an Info snapshot from a
// configuration, merging the open Params mapping.
func configParams(cfg Config) map[string]any {
	params := map[string]any{
		"shots":              cfg.Shots,
		"optimization_level": cfg.OptimizationLevel,
	}
	for k, v := range cfg.Params {
		params[k] = v
	}
	return params
}

// instrumented decorates an Algorithm with prometheus metrics and an otel
// span around each Factor call. The registry applies it to every algorithm
// it creates.
type instrumented struct {
	core Algorithm
}

// NewInstrumented wraps core with metrics and tracing instrumentation.
func NewInstrumented(core Algorithm) Algorithm {
	if core == nil {
		panic("factoring: the core Algorithm cannot be nil")
	}
	return &instrumented{core: core}
}

// Factor delegates to the wrapped algorithm, recording call counts, outcome
// status, and duration.
func (m *instrumented) Factor(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	tracer := otel.Tracer("pffbench/factoring")
	ctx, span := tracer.Start(ctx, "Factor")
	defer span.End()

	start := time.Now()
	factors, err := m.core.Factor(ctx, n)
	elapsed := time.Since(start).Seconds()

	status := "success"
	if err != nil {
		status = "failure"
	}
	factorizationsTotal.WithLabelValues(m.core.Name(), status).Inc()
	factorizationDuration.WithLabelValues(m.core.Name()).Observe(elapsed)

	return factors, err
}

// ValidateInput delegates to the wrapped algorithm.
func (m *instrumented) ValidateInput(n *big.Int) error { return m.core.ValidateInput(n) }

// VerifyFactors delegates to the wrapped algorithm.
func (m *instrumented) VerifyFactors(n *big.Int, factors []*big.Int) bool {
	return m.core.VerifyFactors(n, factors)
}

// Info delegates to the wrapped algorithm.
func (m *instrumented) Info() map[string]any { return m.core.Info() }

// Name delegates to the wrapped algorithm.
func (m *instrumented) Name() string { return m.core.Name() }

// Config delegates to the wrapped algorithm.
func (m *instrumented) Config() Config { return m.core.Config() }
