// Package noise is the boundary wrapper spec.md §6 names: an external
// Gaussian source parameterized by a noise-density profile PP. It exists
// so callers construct noise sources the same way they construct any
// other scenario-driven signal, from a *pp.Poly reference and a seed,
// without reaching into source.WhiteNoise's lower-level function-valued
// constructor directly.
package noise

import (
	"github.com/kd9wcc/gnssiq/pp"
	"github.com/kd9wcc/gnssiq/source"
)

// New constructs a white-noise source at rate, with power over signal
// time given by density (a linear power PP, per spec.md's noise-density
// profile), seeded deterministically by seed.
func New(rate float64, density *pp.Poly, seed uint64) (*source.WhiteNoise, error) {
	return source.NewWhiteNoise(rate, density.Eval, seed)
}
