package source

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// WhiteNoise produces complex circularly-symmetric Gaussian samples with a
// power that may vary over signal time according to a caller-supplied
// evaluator, most naturally a *pp.Poly (linear power vs signal time, per
// spec.md's noise-density profile). It is the primitive the noise package
// boundary (spec.md §6, "an external Gaussian source parameterized by a
// power profile") wraps; kept here since it is itself just another
// Source, grounded on the teacher's dtmf.go per-sample generation loop.
type WhiteNoise struct {
	rate    float64
	power   func(t float64) float64
	sigTime float64
	rng     *rand.Rand
}

// NewWhiteNoise constructs a WhiteNoise source at the given rate. power(t)
// must return a non-negative linear power for signal time t; it is
// evaluated once per sample, so callers wrapping a *pp.Poly should expect
// its Eval to be on the hot path.
func NewWhiteNoise(rate float64, power func(t float64) float64, seed uint64) (*WhiteNoise, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("source: white noise rate must be positive, got %v", rate)
	}
	if power == nil {
		return nil, fmt.Errorf("source: white noise requires a power function")
	}
	return &WhiteNoise{
		rate:  rate,
		power: power,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// RequestSamples draws n independent circularly-symmetric Gaussian
// samples, each scaled by sqrt(power(t)) at its own signal time, and
// advances signal time by n/rate.
func (w *WhiteNoise) RequestSamples(n int) []complex128 {
	out := make([]complex128, n)
	dt := 1 / w.rate
	for k := 0; k < n; k++ {
		t := w.sigTime + float64(k)*dt
		scale := math.Sqrt(w.power(t))
		out[k] = complex(scale*w.rng.NormFloat64(), scale*w.rng.NormFloat64())
	}
	w.sigTime += float64(n) * dt
	return out
}

// Advance moves signal time forward by n/rate without drawing samples.
func (w *WhiteNoise) Advance(n int) {
	w.sigTime += float64(n) / w.rate
}

// Rate returns the fixed sample rate.
func (w *WhiteNoise) Rate() float64 { return w.rate }

// UseNeighborInterp is always false: noise has no meaningful "hold" shape.
func (w *WhiteNoise) UseNeighborInterp() bool { return false }
