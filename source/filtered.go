package source

import "fmt"

// Filtered wraps an upstream Source with a direct-form-II-transposed
// IIR/FIR filter, applied to every sample the upstream produces before it
// is returned. It is a standalone building block: no other package wraps a
// source in it, and package composite runs its own anti-alias FIR with the
// same delay-line structure rather than using this type.
type Filtered struct {
	upstream Source
	b        []float64
	a        []float64
	// z is the transposed direct-form-II delay line, length
	// max(len(b),len(a))-1. Lazily allocated on first use so a Filtered
	// value can be constructed before its length is known to matter.
	z []complex128
}

// NewFiltered constructs a Filtered source. b is the FIR/IIR numerator, a
// is the denominator (a[0] must be nonzero; pass []float64{1} for a pure
// FIR filter, which is also the default when a is nil or empty).
func NewFiltered(upstream Source, b, a []float64) (*Filtered, error) {
	if upstream == nil {
		return nil, fmt.Errorf("source: filtered requires a non-nil upstream")
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("source: filtered requires at least one numerator coefficient")
	}
	if len(a) == 0 {
		a = []float64{1}
	}
	if a[0] == 0 {
		return nil, fmt.Errorf("source: filtered denominator a[0] must be nonzero")
	}

	return &Filtered{upstream: upstream, b: normalizeCopy(b), a: normalizeCopy(a)}, nil
}

func normalizeCopy(s []float64) []float64 {
	cp := make([]float64, len(s))
	copy(cp, s)
	return cp
}

func (f *Filtered) order() int {
	n := len(f.b)
	if len(f.a) > n {
		n = len(f.a)
	}
	return n - 1
}

func (f *Filtered) ensureDelayLine() {
	if f.z == nil {
		f.z = make([]complex128, f.order())
	}
}

// RequestSamples pulls n samples from upstream and filters them through the
// persistent delay line, so repeated calls behave as one continuous
// filtering pass regardless of chunk boundaries.
func (f *Filtered) RequestSamples(n int) []complex128 {
	f.ensureDelayLine()
	in := f.upstream.RequestSamples(n)
	out := make([]complex128, n)

	a0 := f.a[0]
	for k, x := range in {
		var y complex128
		if len(f.z) > 0 {
			y = (complex(f.b[0], 0)*x + f.z[0]) / complex(a0, 0)
		} else {
			y = complex(f.b[0], 0) * x / complex(a0, 0)
		}

		for i := 0; i < len(f.z); i++ {
			var bTerm complex128
			if i+1 < len(f.b) {
				bTerm = complex(f.b[i+1], 0) * x
			}
			var aTerm complex128
			if i+1 < len(f.a) {
				aTerm = complex(f.a[i+1], 0) * y
			}
			next := bTerm - aTerm
			if i+1 < len(f.z) {
				next += f.z[i+1]
			}
			f.z[i] = next
		}

		out[k] = y
	}
	return out
}

// Advance pulls and discards n samples from upstream, running them through
// the filter so the delay line stays consistent for subsequent calls.
func (f *Filtered) Advance(n int) {
	f.RequestSamples(n)
}

// Rate returns the upstream source's sample rate.
func (f *Filtered) Rate() float64 { return f.upstream.Rate() }

// UseNeighborInterp delegates to the upstream source.
func (f *Filtered) UseNeighborInterp() bool { return f.upstream.UseNeighborInterp() }
