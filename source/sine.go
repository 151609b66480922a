package source

import (
	"fmt"
	"math"
)

// Sine produces a complex exponential exp(i*2*pi*f*t) at a fixed sample
// rate, used both as a directly synthesizable signal component and as a
// test fixture for the rest of the pipeline (a 0 Hz Sine is a constant
// 1+0i carrier, useful for isolating Doppler-only behavior).
type Sine struct {
	freq float64
	rate float64
	// phase is the accumulated phase in radians, wrapped mod 2*pi at the
	// end of every RequestSamples and Advance call to keep numeric error
	// bounded across very long runs.
	phase float64
}

// NewSine constructs a Sine source at the given frequency (Hz, may be
// negative or zero) and sample rate (Hz, must be positive).
func NewSine(freq, rate float64) (*Sine, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("source: sine rate must be positive, got %v", rate)
	}
	return &Sine{freq: freq, rate: rate}, nil
}

// RequestSamples returns n samples of the complex exponential, continuing
// phase from the previous call.
func (s *Sine) RequestSamples(n int) []complex128 {
	out := make([]complex128, n)
	dphi := 2 * math.Pi * s.freq / s.rate
	for k := 0; k < n; k++ {
		sinv, cosv := math.Sincos(s.phase)
		out[k] = complex(cosv, sinv)
		s.phase += dphi
	}
	s.wrapPhase()
	return out
}

// Advance moves the phase forward by n samples without producing output.
func (s *Sine) Advance(n int) {
	s.phase += 2 * math.Pi * s.freq / s.rate * float64(n)
	s.wrapPhase()
}

func (s *Sine) wrapPhase() {
	s.phase = math.Mod(s.phase, 2*math.Pi)
}

// Rate returns the fixed sample rate.
func (s *Sine) Rate() float64 { return s.rate }

// UseNeighborInterp is always false: a sine wave is smooth and benefits
// from shape-preserving cubic interpolation, not sample-and-hold.
func (s *Sine) UseNeighborInterp() bool { return false }
