// Package numtheory provides the number-theoretic utilities underpinning the
// benchmark suite: deterministic primality testing, random prime generation,
// and semiprime/composite generation with exact bit-length guarantees.
//
// All generation goes through a Generator carrying an explicit, seedable
// random source, so trial sequences are reproducible for testing. Primality
// testing uses plain trial division up to sqrt(n); this is O(sqrt(n)) and
// deliberate, since the suite targets small integers (the service boundary
// caps sizes at 20 bits).
package numtheory

import (
	"math/big"
	"math/rand"

	apperrors "github.com/agbru/pffbench/internal/errors"
)

// Default attempt budgets for rejection sampling. Prime generation retries
// more because the candidate density drops; both bounds are configurable on
// the Generator.
const (
	DefaultMaxPrimeAttempts     = 10_000
	DefaultMaxCompositeAttempts = 1_000
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// IsPrime reports whether n is prime, using deterministic trial division up
// to sqrt(n). It returns false for any n below 2. The function is pure and
// never fails.
func IsPrime(n *big.Int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.IsUint64() {
		return isPrimeUint64(n.Uint64())
	}
	if n.Bit(0) == 0 {
		return false
	}
	i := big.NewInt(3)
	sq := new(big.Int)
	rem := new(big.Int)
	for sq.Mul(i, i); sq.Cmp(n) <= 0; sq.Mul(i, i) {
		if rem.Mod(n, i).Sign() == 0 {
			return false
		}
		i.Add(i, two)
	}
	return true
}

func isPrimeUint64(n uint64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := uint64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Semiprime is a generated composite N together with its two prime factors.
// Invariant: N = P*Q, P != Q, both prime, and N.BitLen() equals the size the
// tuple was generated for.
type Semiprime struct {
	N *big.Int
	P *big.Int
	Q *big.Int
}

// VerifySemiprime checks that N = p*q and that both p and q are prime.
// It is a pure, total function.
func VerifySemiprime(n, p, q *big.Int) bool {
	if new(big.Int).Mul(p, q).Cmp(n) != 0 {
		return false
	}
	return IsPrime(p) && IsPrime(q)
}

// Generator produces random primes, semiprimes, and composites from an
// explicit random source. It is not safe for concurrent use; give each
// concurrent benchmark run its own Generator.
type Generator struct {
	rng *rand.Rand
	// MaxPrimeAttempts bounds rejection sampling in Prime.
	MaxPrimeAttempts int
	// MaxCompositeAttempts bounds rejection sampling in Semiprime and Composite.
	MaxCompositeAttempts int
}

// NewGenerator creates a Generator seeded with the given value.
// Equal seeds yield identical generation sequences.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorFromRand(rand.New(rand.NewSource(seed)))
}

// NewGeneratorFromRand creates a Generator using the provided random source.
func NewGeneratorFromRand(rng *rand.Rand) *Generator {
	return &Generator{
		rng:                  rng,
		MaxPrimeAttempts:     DefaultMaxPrimeAttempts,
		MaxCompositeAttempts: DefaultMaxCompositeAttempts,
	}
}

// randomWithBitLen returns a uniform random integer in [2^(bits-1), 2^bits-1],
// i.e. an integer with exactly the requested bit length.
func (g *Generator) randomWithBitLen(bits int) *big.Int {
	lo := new(big.Int).Lsh(one, uint(bits-1))
	n := new(big.Int).Rand(g.rng, lo) // [0, 2^(bits-1))
	return n.Add(n, lo)
}

// Prime generates a random prime with exactly the requested bit length by
// rejection-sampling odd candidates in [2^(bits-1), 2^bits-1].
//
// Parameters:
//   - bits: The desired bit length; must be at least 2.
//
// Returns:
//   - *big.Int: A prime with BitLen() == bits.
//   - error: A ValidationError if bits < 2, or a GenerationExhaustedError if
//     MaxPrimeAttempts candidates were rejected.
func (g *Generator) Prime(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, apperrors.NewValidationError("bits", "bit length must be at least 2", bits)
	}
	for attempt := 0; attempt < g.MaxPrimeAttempts; attempt++ {
		candidate := g.randomWithBitLen(bits)
		if candidate.Bit(0) == 0 {
			// Nudging to the next odd value keeps the candidate in range,
			// since the even range maximum is 2^bits - 2.
			candidate.Add(candidate, one)
		}
		if IsPrime(candidate) {
			return candidate, nil
		}
	}
	return nil, apperrors.GenerationExhaustedError{Kind: "prime", Bits: bits, Attempts: g.MaxPrimeAttempts}
}

// Semiprime generates a random semiprime N = p*q with exactly s bits,
// p and q prime and distinct. The first factor gets floor(s/2) bits; the
// second is tried at s-floor(s/2) and s-floor(s/2)+1 bits until the product
// lands on the exact target bit length.
//
// Parameters:
//   - s: The target bit length; must be at least 4.
//
// Returns:
//   - *Semiprime: The generated (N, p, q) tuple.
//   - error: A ValidationError if s < 4, or a GenerationExhaustedError if
//     MaxCompositeAttempts rounds failed to produce an s-bit product.
func (g *Generator) Semiprime(s int) (*Semiprime, error) {
	if s < 4 {
		return nil, apperrors.NewValidationError("s", "semiprime size must be at least 4 bits", s)
	}

	bitsP := s / 2
	bitsQOptions := []int{s - bitsP}
	if s-bitsP+1 < s {
		bitsQOptions = append(bitsQOptions, s-bitsP+1)
	}

	for attempt := 0; attempt < g.MaxCompositeAttempts; attempt++ {
		p, err := g.Prime(bitsP)
		if err != nil {
			continue
		}
		bitsQ := bitsQOptions[g.rng.Intn(len(bitsQOptions))]
		q, err := g.Prime(bitsQ)
		if err != nil {
			continue
		}
		if p.Cmp(q) == 0 {
			continue
		}
		n := new(big.Int).Mul(p, q)
		if n.BitLen() == s {
			return &Semiprime{N: n, P: p, Q: q}, nil
		}
	}
	return nil, apperrors.GenerationExhaustedError{Kind: "semiprime", Bits: s, Attempts: g.MaxCompositeAttempts}
}

// Composite generates a random composite integer with exactly s bits.
// When semiprime is true it delegates to Semiprime; otherwise it
// rejection-samples any non-prime value in [2^(s-1), 2^s-1].
//
// Parameters:
//   - s: The target bit length.
//   - semiprime: Whether the composite must be a product of two primes.
//
// Returns:
//   - *big.Int: The generated composite.
//   - error: A ValidationError for invalid s, or a GenerationExhaustedError
//     if the attempt budget ran out.
func (g *Generator) Composite(s int, semiprime bool) (*big.Int, error) {
	if semiprime {
		sp, err := g.Semiprime(s)
		if err != nil {
			return nil, err
		}
		return sp.N, nil
	}

	if s < 2 {
		return nil, apperrors.NewValidationError("s", "composite size must be at least 2 bits", s)
	}
	for attempt := 0; attempt < g.MaxCompositeAttempts; attempt++ {
		n := g.randomWithBitLen(s)
		if n.Cmp(one) > 0 && !IsPrime(n) {
			return n, nil
		}
	}
	return nil, apperrors.GenerationExhaustedError{Kind: "composite", Bits: s, Attempts: g.MaxCompositeAttempts}
}
