package source

import "fmt"

// Repeating produces a fixed-length sample array on endless repeat: a PRN
// chip sequence, an overlay code, or any other periodic table lookup.
// Grounded on the teacher's morse.go table-driven, index-cursor approach to
// stepping through a fixed sequence, generalized from runes to complex
// samples.
type Repeating struct {
	samples  []complex128
	rate     float64
	neighbor bool
	idx      int
}

// NewRepeating constructs a Repeating source. start is the 1-based starting
// offset into samples (matching the user-facing convention in spec.md
// §4.3); internally it is stored 0-based. Construction fails if samples is
// empty, rate is non-positive, or start falls outside [1, len(samples)].
func NewRepeating(samples []complex128, rate float64, start int, useNeighborInterp bool) (*Repeating, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("source: repeating sample array must not be empty")
	}
	if rate <= 0 {
		return nil, fmt.Errorf("source: repeating rate must be positive, got %v", rate)
	}
	if start < 1 || start > len(samples) {
		return nil, fmt.Errorf("source: repeating start must be in [1,%d], got %d", len(samples), start)
	}

	cp := make([]complex128, len(samples))
	copy(cp, samples)

	return &Repeating{
		samples:  cp,
		rate:     rate,
		neighbor: useNeighborInterp,
		idx:      start - 1,
	}, nil
}

// RequestSamples returns n samples starting at the current cursor,
// wrapping around the sequence as many times as needed, and advances the
// cursor by n.
func (r *Repeating) RequestSamples(n int) []complex128 {
	out := make([]complex128, n)
	l := len(r.samples)
	for k := 0; k < n; k++ {
		out[k] = r.samples[(r.idx+k)%l]
	}
	r.Advance(n)
	return out
}

// Advance moves the cursor by n samples without producing output.
func (r *Repeating) Advance(n int) {
	l := len(r.samples)
	r.idx = ((r.idx+n)%l + l) % l
}

// Rate returns the fixed sample rate.
func (r *Repeating) Rate() float64 { return r.rate }

// UseNeighborInterp reports the neighbor-interpolation hint given at
// construction.
func (r *Repeating) UseNeighborInterp() bool { return r.neighbor }

// Len returns the length of the underlying repeating sample array.
func (r *Repeating) Len() int { return len(r.samples) }
