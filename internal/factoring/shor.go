package factoring

import (
	"context"
	"errors"
	"math"
	"math/big"
	"math/rand"
	"time"

	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/logging"
)

// coprimeSampleTries bounds the rejection sampling of a random base coprime
// to n within a single attempt.
const coprimeSampleTries = 100

// shorVersion tags the Info snapshot of the period-finding implementation.
const shorVersion = "1.0.0"

// Shor implements the classical control logic of quantum period-finding
// factorization: coprime base selection, the perfect-power pre-check, the
// continued-fraction phase-to-period conversion (delegated to the oracle
// path), and period-to-factor extraction. The quantum measurement substrate
// itself is abstracted behind the injected PeriodOracle.
type Shor struct {
	cfg      Config
	oracle   PeriodOracle
	rng      *rand.Rand
	attempts *AttemptSubject
	logger   logging.Logger
}

// ShorOption configures a Shor instance.
type ShorOption func(*Shor)

// WithRand sets the random source used for coprime base selection.
// Equal seeds yield identical attempt sequences.
func WithRand(rng *rand.Rand) ShorOption {
	return func(s *Shor) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithAttemptObserver registers an observer notified at attempt boundaries.
func WithAttemptObserver(obs AttemptObserver) ShorOption {
	return func(s *Shor) { s.attempts.Register(obs) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logging.Logger) ShorOption {
	return func(s *Shor) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewShor creates a period-finding controller backed by the given oracle.
// Zero-valued configuration fields are filled with package defaults.
func NewShor(cfg Config, oracle PeriodOracle, opts ...ShorOption) *Shor {
	if oracle == nil {
		panic("factoring: the PeriodOracle cannot be nil")
	}
	s := &Shor{
		cfg:      normalizeConfig(cfg),
		oracle:   oracle,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		attempts: NewAttemptSubject(),
		logger:   logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the algorithm display name.
func (s *Shor) Name() string { return "Shor's Algorithm" }

// Config returns the algorithm configuration.
func (s *Shor) Config() Config { return s.cfg }

// ValidateInput applies the shared input contract.
func (s *Shor) ValidateInput(n *big.Int) error { return ValidateInput(n) }

// VerifyFactors applies the shared verification contract.
func (s *Shor) VerifyFactors(n *big.Int, factors []*big.Int) bool {
	return VerifyFactors(n, factors)
}

// Info returns the metadata snapshot for reporting.
func (s *Shor) Info() map[string]any {
	params := configParams(s.cfg)
	params["max_iterations"] = s.cfg.MaxIterations
	return map[string]any{
		"name":       s.Name(),
		"type":       "quantum",
		"backend":    s.cfg.Backend,
		"version":    shorVersion,
		"parameters": params,
	}
}

// Factor runs the period-finding state machine for n.
//
// Even inputs and perfect powers resolve classically without touching the
// oracle. Otherwise up to MaxIterations attempts each select a coprime base,
// query the oracle for a period, and try to extract a factor pair from an
// even period. Exhausting the attempt budget yields a
// FactorizationExhaustedError, which is an expected, reportable outcome.
func (s *Shor) Factor(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	if err := s.ValidateInput(n); err != nil {
		return nil, err
	}

	one := big.NewInt(1)

	if n.Bit(0) == 0 {
		half := new(big.Int).Rsh(n, 1)
		return pair(big.NewInt(2), half), nil
	}

	if root, ok := perfectPowerRoot(n); ok {
		cofactor := new(big.Int).Div(n, root)
		return pair(root, cofactor), nil
	}

	maxAttempts := s.cfg.MaxIterations
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.attempts.NotifyStarted(n, attempt, maxAttempts)

		a, err := s.chooseCoprime(n)
		if err != nil {
			s.attempts.NotifyFinished(n, attempt, false)
			return nil, err
		}

		// Lucky classical short-circuit: a base sharing a factor with n
		// ends the search immediately.
		if g := new(big.Int).GCD(nil, nil, a, n); g.Cmp(one) > 0 {
			s.attempts.NotifyFinished(n, attempt, true)
			return pair(g, new(big.Int).Div(n, g)), nil
		}

		r, err := s.findPeriod(ctx, a, n)
		if err != nil {
			s.attempts.NotifyFinished(n, attempt, false)
			return nil, err
		}
		if r == nil || r.Bit(0) == 1 {
			s.logger.Debug("attempt yielded no usable period",
				logging.Int("attempt", attempt))
			s.attempts.NotifyFinished(n, attempt, false)
			continue
		}

		if factors := extractFactors(a, r, n); factors != nil && VerifyFactors(n, factors) {
			s.attempts.NotifyFinished(n, attempt, true)
			return factors, nil
		}
		s.attempts.NotifyFinished(n, attempt, false)
	}

	return nil, apperrors.FactorizationExhaustedError{N: new(big.Int).Set(n), Attempts: maxAttempts}
}

// chooseCoprime rejection-samples a random a in (1, n) with gcd(a, n) = 1.
func (s *Shor) chooseCoprime(n *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	span := new(big.Int).Sub(n, big.NewInt(2)) // candidates in [2, n-1]
	for try := 0; try < coprimeSampleTries; try++ {
		a := new(big.Int).Rand(s.rng, span)
		a.Add(a, big.NewInt(2))
		if new(big.Int).GCD(nil, nil, a, n).Cmp(one) == 0 {
			return a, nil
		}
	}
	return nil, apperrors.NoCoprimeError{N: new(big.Int).Set(n), Tries: coprimeSampleTries}
}

// findPeriod queries the oracle under the configured per-attempt timeout.
// A timeout of the attempt context and the ErrNoPeriod sentinel both map to
// "no period this attempt" (nil, nil); anything else is a hard error.
func (s *Shor) findPeriod(ctx context.Context, a, n *big.Int) (*big.Int, error) {
	attemptCtx := ctx
	if s.cfg.OracleTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.cfg.OracleTimeout)
		defer cancel()
	}

	r, err := s.oracle.FindPeriod(attemptCtx, a, n, s.cfg.Shots)
	if err != nil {
		if errors.Is(err, ErrNoPeriod) {
			return nil, nil
		}
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			// The attempt timed out but the parent context is alive:
			// treat as "no period" so the attempt loop continues.
			return nil, nil
		}
		return nil, apperrors.WrapError(err, "period oracle failed for a=%s N=%s", a, n)
	}
	return r, nil
}

// extractFactors computes x = a^(r/2) mod n and returns the sorted factor
// pair derived from the first of gcd(x-1, n), gcd(x+1, n) lying strictly
// between 1 and n. It returns nil when both candidates are trivial. The
// candidate order (x-1 before x+1) is deliberate, matching the established
// extraction policy even though the reverse order could occasionally
// succeed where this one wastes the attempt.
func extractFactors(a, r, n *big.Int) []*big.Int {
	if r.Bit(0) == 1 {
		return nil
	}

	halfR := new(big.Int).Rsh(r, 1)
	x := new(big.Int).Exp(a, halfR, n)

	one := big.NewInt(1)
	for _, delta := range []int64{-1, 1} {
		v := new(big.Int).Add(x, big.NewInt(delta))
		g := new(big.Int).GCD(nil, nil, v.Abs(v), n)
		if g.Cmp(one) > 0 && g.Cmp(n) < 0 {
			return pair(g, new(big.Int).Div(n, g))
		}
	}
	return nil
}

// perfectPowerRoot searches exponents b from 2 to floor(log2 n) for an
// integer a with a^b = n. The floating-point root estimate is checked in a
// +-1 neighborhood so rounding error cannot miss an exact root.
func perfectPowerRoot(n *big.Int) (*big.Int, bool) {
	nFloat, _ := new(big.Float).SetInt(n).Float64()
	maxExp := n.BitLen() - 1

	for b := 2; b <= maxExp; b++ {
		estimate := int64(math.Round(math.Pow(nFloat, 1.0/float64(b))))
		for _, cand := range []int64{estimate - 1, estimate, estimate + 1} {
			if cand < 2 {
				continue
			}
			a := big.NewInt(cand)
			if new(big.Int).Exp(a, big.NewInt(int64(b)), nil).Cmp(n) == 0 {
				return a, true
			}
		}
	}
	return nil, false
}

// pair returns the two factors sorted ascending.
func pair(p, q *big.Int) []*big.Int {
	factors := []*big.Int{p, q}
	sortFactors(factors)
	return factors
}
