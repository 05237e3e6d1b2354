// Package rng provides the seed-deterministic random sources used by map
// generation. Identical seeds always produce identical streams.
package rng

import (
	"math/rand/v2"
)

// Rand is a deterministic pseudo-random stream bound to one seed.
// It is not safe for concurrent use; each generation run owns its own.
type Rand struct {
	seed  uint64
	src   *rand.Rand
	calls int64
}

// New creates a stream from the given seed.
func New(seed uint64) *Rand {
	s1 := mix(seed)
	s2 := mix(s1)
	return &Rand{
		seed: seed,
		src:  rand.New(rand.NewPCG(s1, s2)),
	}
}

// FirstSeed returns the seed the stream was created with.
func (r *Rand) FirstSeed() uint64 {
	return r.seed
}

// Calls returns how many values have been drawn from the stream.
func (r *Rand) Calls() int64 {
	return r.calls
}

// Uint64 returns the next raw value.
func (r *Rand) Uint64() uint64 {
	r.calls++
	return r.src.Uint64()
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (r *Rand) IntN(n int) int {
	r.calls++
	return r.src.IntN(n)
}

// Range returns a value in [min, max). If max <= min, min is returned
// without consuming the stream.
func (r *Rand) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.IntN(max-min)
}

// Bool returns a fair coin flip.
func (r *Rand) Bool() bool {
	return r.IntN(2) == 0
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	r.calls++
	return r.src.Float64()
}

// Percent returns true with the given chance out of 100.
func (r *Rand) Percent(chance int) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return r.IntN(100) < chance
}

// Derive returns an independent sub-stream keyed by key. The parent's
// cursor is not advanced, so deriving never changes what the parent
// produces next.
func (r *Rand) Derive(key uint64) *Rand {
	return New(DeriveSeed(r.seed, key))
}

// DeriveSeed combines a seed and a key into a new seed.
func DeriveSeed(seed, key uint64) uint64 {
	return mix(seed ^ mix(key+0x632be59bd9b4e019))
}

// Shuffle permutes n elements using swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		swap(i, j)
	}
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
