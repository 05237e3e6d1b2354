package rng

// Noise is a stateless coordinate hash. Looking up a coordinate never
// advances any stream, so results do not depend on visiting order.
type Noise struct {
	seed uint64
}

// NewNoise creates a noise function keyed by seed.
func NewNoise(seed uint64) Noise {
	return Noise{seed: mix(seed)}
}

// Get2D returns the noise value at (x, y).
func (n Noise) Get2D(x, y int) uint64 {
	h := n.seed
	h = mix(h ^ uint64(int64(x)))
	h = mix(h ^ uint64(int64(y)))
	return h
}

// Pick2D returns the noise value at (x, y) reduced to [0, n).
func (n Noise) Pick2D(x, y, count int) int {
	if count <= 1 {
		return 0
	}
	return int(n.Get2D(x, y) % uint64(count))
}
