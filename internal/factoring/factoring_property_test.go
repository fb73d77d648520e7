package factoring

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/pffbench/internal/numtheory"
)

// TestFactor_PropertyBased asserts the postcondition of Factor across the
// supported size range: for generated semiprimes the returned factors pass
// VerifyFactors and recover the generated prime pair.
func TestFactor_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	g := numtheory.NewGenerator(789)
	alg := NewClassical(DefaultConfig())

	properties.Property("factoring a semiprime recovers its prime pair", prop.ForAll(
		func(s int) bool {
			sp, err := g.Semiprime(s)
			if err != nil {
				t.Logf("Semiprime(%d) failed: %v", s, err)
				return false
			}
			factors, err := alg.Factor(context.Background(), sp.N)
			if err != nil {
				t.Logf("Factor(%s) failed: %v", sp.N, err)
				return false
			}
			if !VerifyFactors(sp.N, factors) {
				return false
			}
			lo, hi := sp.P, sp.Q
			if lo.Cmp(hi) > 0 {
				lo, hi = hi, lo
			}
			return len(factors) == 2 &&
				factors[0].Cmp(lo) == 0 && factors[1].Cmp(hi) == 0
		},
		gen.IntRange(4, 16),
	))

	properties.TestingRun(t)
}

// TestVerifyFactors_PropertyBased asserts that verification rejects any
// proper sublist of a valid factorization: a product mismatch can never
// verify.
func TestVerifyFactors_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	g := numtheory.NewGenerator(790)

	properties.Property("dropping a factor breaks verification", prop.ForAll(
		func(s int) bool {
			sp, err := g.Semiprime(s)
			if err != nil {
				t.Logf("Semiprime(%d) failed: %v", s, err)
				return false
			}
			if !VerifyFactors(sp.N, []*big.Int{sp.P, sp.Q}) {
				return false
			}
			return !VerifyFactors(sp.N, []*big.Int{sp.P}) &&
				!VerifyFactors(sp.N, []*big.Int{sp.Q}) &&
				!VerifyFactors(sp.N, nil)
		},
		gen.IntRange(4, 16),
	))

	properties.TestingRun(t)
}
