package wave

import (
	"math/rand"

	xrand "golang.org/x/exp/rand"
)

// RNG is the external pseudo-random source WaveFunction.Run draws from.
// Implementations must yield uniform [0,1) doubles from Float64 and
// uniform integers in [0,n) from Intn. Neither method needs to be
// goroutine-safe; a WaveFunction owns its RNG for the duration of one Run.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// mathRand adapts *math/rand.Rand to RNG. seed==0 maps to a fixed,
// arbitrary-but-stable default seed rather than a time-based source,
// keeping default runs reproducible.
type mathRand struct{ r *rand.Rand }

const defaultMathSeed int64 = 1

// NewMathRand returns an RNG backed by the standard library's math/rand.
// seed==0 uses a fixed default seed instead of an unseeded (and thus
// non-reproducible) source.
func NewMathRand(seed int64) RNG {
	if seed == 0 {
		seed = defaultMathSeed
	}

	return mathRand{r: rand.New(rand.NewSource(seed))}
}

func (m mathRand) Float64() float64 { return m.r.Float64() }
func (m mathRand) Intn(n int) int   { return m.r.Intn(n) }

// expRand adapts *golang.org/x/exp/rand.Rand to RNG, seeded directly
// with an unsigned integer.
type expRand struct{ r *xrand.Rand }

// NewExpRand returns an RNG backed by golang.org/x/exp/rand, seeded with
// an explicit uint64 (x/exp/rand has no implicit "use the current time"
// fallback, so there is no seed==0 special case here).
func NewExpRand(seed uint64) RNG {
	return expRand{r: xrand.New(xrand.NewSource(seed))}
}

func (e expRand) Float64() float64 { return e.r.Float64() }
func (e expRand) Intn(n int) int   { return e.r.Intn(n) }
