package factoring

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/pffbench/internal/errors"
	"github.com/agbru/pffbench/internal/numtheory"
)

// trialDivisionLimit is the input bound below which plain trial division is
// used instead of Pollard's rho.
const trialDivisionLimit = 1_000_000

// classicalVersion tags the Info snapshot of the classical implementation.
const classicalVersion = "1.0.0"

// Classical factors integers with trial division for small inputs and
// Pollard's rho with recursive composite splitting for larger ones. It
// serves as the baseline the period-finding algorithms are compared against.
type Classical struct {
	cfg Config
}

// NewClassical creates a classical factorizer with the given configuration.
// Zero-valued configuration fields are filled with package defaults.
func NewClassical(cfg Config) *Classical {
	return &Classical{cfg: normalizeConfig(cfg)}
}

// Name returns the algorithm display name.
func (c *Classical) Name() string { return "Classical Factorization" }

// Config returns the algorithm configuration.
func (c *Classical) Config() Config { return c.cfg }

// ValidateInput applies the shared input contract.
func (c *Classical) ValidateInput(n *big.Int) error { return ValidateInput(n) }

// VerifyFactors applies the shared verification contract.
func (c *Classical) VerifyFactors(n *big.Int, factors []*big.Int) bool {
	return VerifyFactors(n, factors)
}

// Info returns the metadata snapshot for reporting.
func (c *Classical) Info() map[string]any {
	return map[string]any{
		"name":       c.Name(),
		"type":       "classical",
		"backend":    c.cfg.Backend,
		"version":    classicalVersion,
		"method":     "Trial Division / Pollard's Rho",
		"parameters": configParams(c.cfg),
	}
}

// Factor decomposes n into its ascending prime factorization.
//
// Inputs below trialDivisionLimit use trial division; larger inputs use
// Pollard's rho with recursive splitting of composite cofactors. A failed
// final verification is an algorithm defect and surfaces as a
// FactorizationFailedError.
func (c *Classical) Factor(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	if err := c.ValidateInput(n); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var factors []*big.Int
	if n.Cmp(big.NewInt(trialDivisionLimit)) < 0 {
		factors = trialDivision(n)
	} else {
		factors = pollardsRho(n)
	}
	sortFactors(factors)

	if !VerifyFactors(n, factors) {
		return nil, apperrors.FactorizationFailedError{N: new(big.Int).Set(n), Factors: factors}
	}
	return factors, nil
}

// trialDivision returns the prime factorization of n by stripping the factor
// 2 repeatedly and then testing odd divisors while divisor^2 <= remainder.
// The remainder left after the loop, if greater than 1, is itself prime.
func trialDivision(n *big.Int) []*big.Int {
	var factors []*big.Int
	m := new(big.Int).Set(n)

	for m.Bit(0) == 0 {
		factors = append(factors, big.NewInt(2))
		m.Rsh(m, 1)
	}

	i := big.NewInt(3)
	sq := new(big.Int)
	for sq.Mul(i, i); sq.Cmp(m) <= 0; sq.Mul(i, i) {
		for {
			q, r := new(big.Int).QuoRem(m, i, new(big.Int))
			if r.Sign() != 0 {
				break
			}
			factors = append(factors, new(big.Int).Set(i))
			m.Set(q)
		}
		i.Add(i, big.NewInt(2))
	}

	if m.Cmp(big.NewInt(1)) > 0 {
		factors = append(factors, m)
	}
	return factors
}

// pollardsRho factors n using Floyd-cycle Pollard's rho with g(x) = x^2 + 1
// mod n. Even inputs strip a factor of 2 and recurse. A degenerate cycle
// (gcd == n) falls back to trial division. Non-trivial divisors are split
// recursively, primality-checking each side first.
func pollardsRho(n *big.Int) []*big.Int {
	one := big.NewInt(1)

	if n.Bit(0) == 0 {
		half := new(big.Int).Rsh(n, 1)
		return append([]*big.Int{big.NewInt(2)}, splitComposite(half)...)
	}

	g := func(x *big.Int) *big.Int {
		r := new(big.Int).Mul(x, x)
		r.Add(r, one)
		return r.Mod(r, n)
	}

	x := big.NewInt(2)
	y := big.NewInt(2)
	d := big.NewInt(1)
	diff := new(big.Int)
	for d.Cmp(one) == 0 {
		x = g(x)
		y = g(g(y))
		diff.Sub(x, y)
		diff.Abs(diff)
		d = new(big.Int).GCD(nil, nil, diff, n)
	}

	if d.Cmp(n) == 0 {
		return trialDivision(n)
	}

	cofactor := new(big.Int).Div(n, d)
	return append(splitComposite(d), splitComposite(cofactor)...)
}

// splitComposite returns m itself when prime, otherwise recurses into
// Pollard's rho.
func splitComposite(m *big.Int) []*big.Int {
	if numtheory.IsPrime(m) {
		return []*big.Int{new(big.Int).Set(m)}
	}
	return pollardsRho(m)
}
