package factoring

import (
	"context"
	"errors"
	"math/big"
	"math/rand"
	"sync"
)

// ErrNoPeriod is the sentinel returned by a PeriodOracle when a measurement
// round produced no usable signal (empty or ambiguous distribution). It is
// the expected-probability outcome and is distinct from hard oracle failures
// (network, auth, backend errors), which surface as other error values.
var ErrNoPeriod = errors.New("period oracle: no usable measurement")

// PeriodOracle abstracts the quantum measurement substrate that supplies a
// candidate period r of f(x) = a^x mod n. Implementations may take an
// arbitrary wall-clock time (remote queueing on real hardware), so calls
// carry a context. The gate-level circuit construction behind an oracle is
// entirely outside this package.
type PeriodOracle interface {
	// FindPeriod returns a period candidate for (a, n) derived from one
	// probabilistic measurement round, ErrNoPeriod if the round was
	// unusable, or another error for hard backend failures.
	FindPeriod(ctx context.Context, a, n *big.Int, shots int) (*big.Int, error)
}

// SimulatorOracle is the default oracle backend. It derives the true
// multiplicative order of a modulo n classically, then replays it through a
// simulated counting-register measurement: a random multiple of the phase
// 1/r is rounded onto a 2n-bit register and converted back through the
// continued-fraction path. This exercises the full classical post-processing
// without any gate-level simulation.
type SimulatorOracle struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatorOracle creates a simulator oracle seeded with the given value.
func NewSimulatorOracle(seed int64) *SimulatorOracle {
	return &SimulatorOracle{rng: rand.New(rand.NewSource(seed))}
}

// FindPeriod implements PeriodOracle.
//
// The shots parameter is accepted for interface fidelity; the simulator
// draws a single measurement per round, matching the contract of one
// probabilistic measurement round per call.
func (o *SimulatorOracle) FindPeriod(ctx context.Context, a, n *big.Int, shots int) (*big.Int, error) {
	r, err := multiplicativeOrder(ctx, a, n)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNoPeriod
	}

	nCount := 2 * n.BitLen()

	o.mu.Lock()
	k := new(big.Int).Rand(o.rng, r) // [0, r)
	o.mu.Unlock()

	// phase = round(k * 2^nCount / r), the register value an ideal
	// measurement would collapse to.
	phase := new(big.Int).Lsh(k, uint(nCount))
	half := new(big.Int).Rsh(r, 1)
	phase.Add(phase, half)
	phase.Div(phase, r)

	candidate := PhaseToPeriod(phase, nCount, a, n)
	if candidate == nil {
		return nil, ErrNoPeriod
	}
	return candidate, nil
}

// multiplicativeOrder finds the smallest r > 0 with a^r == 1 (mod n) by
// iterated multiplication, or nil when a and n share a factor. The loop is
// bounded by n and polls the context periodically so a slow search can be
// cancelled.
func multiplicativeOrder(ctx context.Context, a, n *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	if new(big.Int).GCD(nil, nil, a, n).Cmp(one) != 0 {
		return nil, nil
	}

	current := new(big.Int).Mod(a, n)
	r := int64(1)
	for bound := new(big.Int).Set(n); big.NewInt(r).Cmp(bound) < 0; r++ {
		if current.Cmp(one) == 0 {
			return big.NewInt(r), nil
		}
		current.Mul(current, a)
		current.Mod(current, n)
		if r%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// PhaseToPeriod converts a measured counting-register value into a candidate
// period using the continued-fraction expansion of phase / 2^nCount, keeping
// the best rational approximation with denominator at most n. The candidate
// is accepted only when a^r == 1 (mod n); otherwise nil is returned and the
// measurement counts as oracle failure for this attempt.
//
// Parameters:
//   - phase: The measured integer register value.
//   - nCount: The counting-register width in bits.
//   - a: The modular-exponentiation base.
//   - n: The modulus being factored.
//
// Returns:
//   - *big.Int: The verified period, or nil when no valid period was found.
func PhaseToPeriod(phase *big.Int, nCount int, a, n *big.Int) *big.Int {
	if phase.Sign() <= 0 {
		return nil
	}

	den := new(big.Int).Lsh(big.NewInt(1), uint(nCount))
	r := bestDenominator(phase, den, n)
	if r == nil || r.Sign() <= 0 {
		return nil
	}

	if new(big.Int).Exp(a, r, n).Cmp(big.NewInt(1)) == 0 {
		return r
	}
	return nil
}

// bestDenominator walks the continued-fraction convergents of num/den and
// returns the denominator of the last convergent not exceeding bound.
func bestDenominator(num, den, bound *big.Int) *big.Int {
	hPrev2, hPrev1 := big.NewInt(0), big.NewInt(1)
	kPrev2, kPrev1 := big.NewInt(1), big.NewInt(0)

	a := new(big.Int).Set(num)
	b := new(big.Int).Set(den)
	var best *big.Int

	for b.Sign() != 0 {
		quot, rem := new(big.Int).QuoRem(a, b, new(big.Int))

		h := new(big.Int).Mul(quot, hPrev1)
		h.Add(h, hPrev2)
		k := new(big.Int).Mul(quot, kPrev1)
		k.Add(k, kPrev2)

		if k.Cmp(bound) > 0 {
			break
		}
		if k.Sign() > 0 {
			best = k
		}

		hPrev2, hPrev1 = hPrev1, h
		kPrev2, kPrev1 = kPrev1, k
		a, b = b, rem
	}
	return best
}
