package core

import (
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// FillBinary sets every cell alive with probability one half.
func FillBinary(r *rand.Rand, buf []bool) {
	for i := range buf {
		buf[i] = r.IntN(2) == 1
	}
}

// Noise parameters for FillNoise.
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseScale  = 0.15
)

// FillNoise marks a w-by-h row-major buffer alive wherever a perlin field
// seeded with seed exceeds threshold. Neighbouring cells are correlated, so
// the result forms blobs rather than salt-and-pepper.
func FillNoise(seed int64, buf []bool, w, h int, threshold float64) {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := p.Noise2D(float64(x)*noiseScale, float64(y)*noiseScale)
			buf[y*w+x] = v > threshold
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
