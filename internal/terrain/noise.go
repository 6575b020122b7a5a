package terrain

import (
	"math"
)

// Noise is seeded fractal value noise in 2D. Output is roughly in [-1, 1].
type Noise struct {
	Seed        int64
	Octaves     int
	Frequency   float64
	Persistence float64
}

// At samples the noise at (x, z)
func (n *Noise) At(x, z float64) float64 {
	total := 0.0
	amp := 1.0
	norm := 0.0
	freq := n.Frequency

	for o := 0; o < n.Octaves; o++ {
		total += value(n.Seed+int64(o)*7919, x*freq, z*freq) * amp
		norm += amp
		amp *= n.Persistence
		freq *= 2
	}

	if norm == 0 {
		return 0
	}
	return total / norm
}

// value returns smoothly interpolated lattice noise in [-1, 1]
func value(seed int64, x, z float64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	tx, tz := smooth(x-x0), smooth(z-z0)
	ix, iz := int64(x0), int64(z0)

	a := lattice(seed, ix, iz)
	b := lattice(seed, ix+1, iz)
	c := lattice(seed, ix, iz+1)
	d := lattice(seed, ix+1, iz+1)

	return lerp(lerp(a, b, tx), lerp(c, d, tx), tz)
}

// lattice returns a pseudo random value in [-1, 1] for an integer point
func lattice(seed, x, z int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x9E3779B97F4A7C15
	h ^= uint64(z) * 0xC2B2AE3D27D4EB4F

	// splitmix64 finaliser
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	h ^= h >> 31

	return float64(h>>11)/float64(1<<53)*2 - 1
}

// smooth is the quintic fade curve
func smooth(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}
