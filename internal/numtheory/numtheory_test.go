package numtheory

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestIsPrime(t *testing.T) {
	cases := []struct {
		n    int64
		want bool
	}{
		{-7, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{5, true},
		{9, false},
		{97, true},
		{561, false}, // Carmichael number
		{1009, true},
		{1022117, false}, // 1009 * 1013
		{1048573, true},
	}
	for _, tc := range cases {
		if got := IsPrime(big.NewInt(tc.n)); got != tc.want {
			t.Errorf("IsPrime(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestVerifySemiprime(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if !VerifySemiprime(big.NewInt(15), big.NewInt(3), big.NewInt(5)) {
			t.Error("expected 15 = 3*5 to verify")
		}
	})
	t.Run("WrongProduct", func(t *testing.T) {
		if VerifySemiprime(big.NewInt(16), big.NewInt(3), big.NewInt(5)) {
			t.Error("expected 16 != 3*5 to fail")
		}
	})
	t.Run("CompositeFactor", func(t *testing.T) {
		if VerifySemiprime(big.NewInt(36), big.NewInt(4), big.NewInt(9)) {
			t.Error("expected composite factors to fail")
		}
	})
}

func TestGeneratorDeterminism(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	for i := 0; i < 5; i++ {
		na, err := a.Composite(10, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		nb, err := b.Composite(10, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if na.Cmp(nb) != 0 {
			t.Fatalf("equal seeds diverged: %s vs %s", na, nb)
		}
	}
}

func TestPrimeRejectsTinyBitLength(t *testing.T) {
	g := NewGenerator(1)
	if _, err := g.Prime(1); err == nil {
		t.Error("expected an error for bits < 2")
	}
}

func TestSemiprimeRejectsTinySize(t *testing.T) {
	g := NewGenerator(1)
	if _, err := g.Semiprime(3); err == nil {
		t.Error("expected an error for s < 4")
	}
}

func TestCompositeNonSemiprime(t *testing.T) {
	g := NewGenerator(7)
	for i := 0; i < 20; i++ {
		n, err := g.Composite(8, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.BitLen() != 8 {
			t.Errorf("expected 8-bit composite, got %d bits (%s)", n.BitLen(), n)
		}
		if IsPrime(n) {
			t.Errorf("generated value %s is prime", n)
		}
	}
}

// TestPrime_PropertyBased asserts that generated primes have exactly the
// requested bit length and pass the primality test, across the supported
// size range.
func TestPrime_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	g := NewGenerator(123)

	properties.Property("primes have exact bit length and are prime", prop.ForAll(
		func(bits int) bool {
			p, err := g.Prime(bits)
			if err != nil {
				t.Logf("Prime(%d) failed: %v", bits, err)
				return false
			}
			return p.BitLen() == bits && IsPrime(p)
		},
		gen.IntRange(2, 16),
	))

	properties.TestingRun(t)
}

// TestSemiprime_PropertyBased asserts the full semiprime contract: exact bit
// length, correct product, distinct prime factors.
func TestSemiprime_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	g := NewGenerator(456)

	properties.Property("semiprimes satisfy N=p*q with distinct primes and exact size", prop.ForAll(
		func(s int) bool {
			sp, err := g.Semiprime(s)
			if err != nil {
				t.Logf("Semiprime(%d) failed: %v", s, err)
				return false
			}
			if sp.N.BitLen() != s {
				return false
			}
			if sp.P.Cmp(sp.Q) == 0 {
				return false
			}
			return VerifySemiprime(sp.N, sp.P, sp.Q)
		},
		gen.IntRange(4, 16),
	))

	properties.TestingRun(t)
}
