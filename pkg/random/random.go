package random

import (
	"math/rand"
	"time"
)

// Source supplies uniformly distributed integers in [0, n).
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a Source seeded from the current time
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Fixed is a Source that always yields the same value, clamped to [0, n).
// Used to pin offsets in tests and dry runs.
type Fixed int

// Intn implements Source
func (f Fixed) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(f)
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Between returns a uniformly distributed value in [min, max] inclusive.
// When max <= min it returns min.
func Between(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}
