package factoring

import (
	"context"
	"errors"
	"math/big"
	"math/rand"
	"testing"
	"time"

	apperrors "github.com/agbru/pffbench/internal/errors"
)

// orderOracle is a deterministic test oracle returning the exact
// multiplicative order of a modulo n on every call.
type orderOracle struct{}

func (orderOracle) FindPeriod(ctx context.Context, a, n *big.Int, shots int) (*big.Int, error) {
	r, err := multiplicativeOrder(ctx, a, n)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNoPeriod
	}
	return r, nil
}

// noPeriodOracle simulates an oracle whose measurements are never usable.
type noPeriodOracle struct{}

func (noPeriodOracle) FindPeriod(context.Context, *big.Int, *big.Int, int) (*big.Int, error) {
	return nil, ErrNoPeriod
}

// brokenOracle simulates a hard backend failure.
type brokenOracle struct{}

func (brokenOracle) FindPeriod(context.Context, *big.Int, *big.Int, int) (*big.Int, error) {
	return nil, errors.New("backend unavailable")
}

// slowOracle simulates a hung backend: it blocks until the call context is
// done and reports its error.
type slowOracle struct{}

func (slowOracle) FindPeriod(ctx context.Context, _, _ *big.Int, _ int) (*big.Int, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestShor(t *testing.T, oracle PeriodOracle) *Shor {
	t.Helper()
	return NewShor(DefaultConfig(), oracle, WithRand(rand.New(rand.NewSource(7))))
}

func TestShorFactorsSemiprimes(t *testing.T) {
	cases := []struct {
		n, p, q int64
	}{
		{15, 3, 5},
		{21, 3, 7},
		{35, 5, 7},
		{77, 7, 11},
		{221, 13, 17},
	}

	for _, tc := range cases {
		alg := newTestShor(t, orderOracle{})
		factors, err := alg.Factor(context.Background(), big.NewInt(tc.n))
		if err != nil {
			t.Fatalf("Factor(%d) failed: %v", tc.n, err)
		}
		if len(factors) != 2 || factors[0].Int64() != tc.p || factors[1].Int64() != tc.q {
			t.Errorf("Factor(%d) = %v, want [%d %d]", tc.n, factors, tc.p, tc.q)
		}
	}
}

func TestShorEvenInputShortCircuits(t *testing.T) {
	// The oracle must never be consulted for even inputs; a broken oracle
	// proves the classical path handles them alone.
	alg := newTestShor(t, brokenOracle{})
	factors, err := alg.Factor(context.Background(), big.NewInt(22))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(factors) != 2 || factors[0].Int64() != 2 || factors[1].Int64() != 11 {
		t.Errorf("Factor(22) = %v, want [2 11]", factors)
	}
}

func TestShorPerfectPowerShortCircuits(t *testing.T) {
	alg := newTestShor(t, brokenOracle{})

	t.Run("Cube", func(t *testing.T) {
		factors, err := alg.Factor(context.Background(), big.NewInt(27))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(factors) != 2 || factors[0].Int64() != 3 || factors[1].Int64() != 9 {
			t.Errorf("Factor(27) = %v, want [3 9]", factors)
		}
	})

	t.Run("Square", func(t *testing.T) {
		factors, err := alg.Factor(context.Background(), big.NewInt(49))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(factors) != 2 || factors[0].Int64() != 7 || factors[1].Int64() != 7 {
			t.Errorf("Factor(49) = %v, want [7 7]", factors)
		}
	})
}

func TestShorExhaustsAttempts(t *testing.T) {
	alg := newTestShor(t, noPeriodOracle{})

	_, err := alg.Factor(context.Background(), big.NewInt(15))
	var exhausted apperrors.FactorizationExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected FactorizationExhaustedError, got %v", err)
	}
	if exhausted.Attempts != DefaultMaxIterations {
		t.Errorf("expected %d attempts, got %d", DefaultMaxIterations, exhausted.Attempts)
	}
}

func TestShorPropagatesHardOracleError(t *testing.T) {
	alg := newTestShor(t, brokenOracle{})

	_, err := alg.Factor(context.Background(), big.NewInt(15))
	if err == nil || errors.As(err, &apperrors.FactorizationExhaustedError{}) {
		t.Fatalf("expected a hard oracle error, got %v", err)
	}
}

func TestShorOracleTimeoutCountsAsMiss(t *testing.T) {
	// A per-attempt timeout is an unusable measurement, not a failure: the
	// attempt loop must keep going and exhaust its budget normally.
	cfg := DefaultConfig()
	cfg.OracleTimeout = 10 * time.Millisecond
	cfg.MaxIterations = 3
	alg := NewShor(cfg, slowOracle{}, WithRand(rand.New(rand.NewSource(7))))

	_, err := alg.Factor(context.Background(), big.NewInt(15))
	var exhausted apperrors.FactorizationExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected FactorizationExhaustedError, got %v", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", exhausted.Attempts)
	}
}

func TestShorParentDeadlineAborts(t *testing.T) {
	// When the run context itself expires the call must abort, not burn
	// through the remaining attempts as misses.
	cfg := DefaultConfig()
	cfg.OracleTimeout = time.Minute
	cfg.MaxIterations = 3
	alg := NewShor(cfg, slowOracle{}, WithRand(rand.New(rand.NewSource(7))))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := alg.Factor(ctx, big.NewInt(15))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	var exhausted apperrors.FactorizationExhaustedError
	if errors.As(err, &exhausted) {
		t.Error("a run deadline must not be reported as attempt exhaustion")
	}
}

func TestShorContextCanceled(t *testing.T) {
	alg := newTestShor(t, orderOracle{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := alg.Factor(ctx, big.NewInt(15)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestShorRejectsInvalidInput(t *testing.T) {
	alg := newTestShor(t, orderOracle{})

	for _, n := range []int64{1, 2, 13} {
		if _, err := alg.Factor(context.Background(), big.NewInt(n)); err == nil {
			t.Errorf("expected Factor(%d) to fail", n)
		}
	}
}

func TestShorNilOraclePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected NewShor to panic on a nil oracle")
		}
	}()
	NewShor(DefaultConfig(), nil)
}

// recordingObserver counts attempt notifications.
type recordingObserver struct {
	started  int
	finished int
}

func (r *recordingObserver) AttemptStarted(*big.Int, int, int)   { r.started++ }
func (r *recordingObserver) AttemptFinished(*big.Int, int, bool) { r.finished++ }

func TestShorNotifiesObservers(t *testing.T) {
	obs := &recordingObserver{}
	alg := NewShor(DefaultConfig(), noPeriodOracle{},
		WithRand(rand.New(rand.NewSource(7))),
		WithAttemptObserver(obs))

	_, _ = alg.Factor(context.Background(), big.NewInt(15))

	if obs.started != DefaultMaxIterations {
		t.Errorf("expected %d started notifications, got %d", DefaultMaxIterations, obs.started)
	}
	if obs.finished != DefaultMaxIterations {
		t.Errorf("expected %d finished notifications, got %d", DefaultMaxIterations, obs.finished)
	}
}

func TestExtractFactors(t *testing.T) {
	t.Run("EvenPeriod", func(t *testing.T) {
		// a=7, r=4, n=15: 7^2 mod 15 = 4; gcd(3,15)=3 splits the input.
		factors := extractFactors(big.NewInt(7), big.NewInt(4), big.NewInt(15))
		if len(factors) != 2 || factors[0].Int64() != 3 || factors[1].Int64() != 5 {
			t.Errorf("extractFactors(7,4,15) = %v, want [3 5]", factors)
		}
	})
	t.Run("OddPeriod", func(t *testing.T) {
		if factors := extractFactors(big.NewInt(7), big.NewInt(3), big.NewInt(15)); factors != nil {
			t.Errorf("expected nil for an odd period, got %v", factors)
		}
	})
}

func TestPerfectPowerRoot(t *testing.T) {
	cases := []struct {
		n    int64
		root int64
		ok   bool
	}{
		{27, 3, true},
		{49, 7, true},
		{1024, 32, true}, // the square root wins before higher exponents are tried
		{15, 0, false},
		{77, 0, false},
	}
	for _, tc := range cases {
		root, ok := perfectPowerRoot(big.NewInt(tc.n))
		if ok != tc.ok {
			t.Errorf("perfectPowerRoot(%d) ok = %v, want %v", tc.n, ok, tc.ok)
			continue
		}
		if ok && root.Int64() != tc.root {
			t.Errorf("perfectPowerRoot(%d) = %s, want %d", tc.n, root, tc.root)
		}
	}
}
