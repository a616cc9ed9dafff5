package testutil

import "fmt"

// SeqRandom returns scripted values in order and repeats the last one once
// the script is exhausted. Draws counts how many values were consumed.
type SeqRandom struct {
	values []float64
	Draws  int
}

// NewSeqRandom creates a scripted random source. Values must be in [0, 1).
func NewSeqRandom(values ...float64) *SeqRandom {
	for _, v := range values {
		if v < 0 || v >= 1 {
			panic(fmt.Sprintf("testutil: random value %v out of [0,1)", v))
		}
	}
	return &SeqRandom{values: values}
}

// Float64 returns the next scripted value.
func (r *SeqRandom) Float64() float64 {
	if len(r.values) == 0 {
		return 0
	}
	i := min(r.Draws, len(r.values)-1)
	r.Draws++
	return r.values[i]
}
