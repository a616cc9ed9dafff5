package gate

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Random is the source of uniform draws in [0, 1) used by stutter motion.
// Tests inject scripted sequences.
type Random interface {
	Float64() float64
}

// NewRandom returns a PCG-backed source for the given seed.
func NewRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Range is an inclusive [Min, Max] interval. Reversed bounds are normalized.
type Range struct {
	Min float64
	Max float64
}

func (r Range) low() float64  { return min(r.Min, r.Max) }
func (r Range) high() float64 { return max(r.Min, r.Max) }

// Draw returns a uniform value in the range. A zero-length range returns
// its single value without consuming a draw.
func (r Range) Draw(rng Random) float64 {
	lo, hi := r.low(), r.high()
	if lo == hi {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// IsZero reports whether both bounds are zero.
func (r Range) IsZero() bool { return r.Min == 0 && r.Max == 0 }

func (r Range) String() string { return fmt.Sprintf("[%g,%g]", r.Min, r.Max) }

// seconds converts fractional seconds into a Duration.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
