// Package refsignal implements the data-symbol modulator that wraps a raw
// chip source: it multiplies successive fixed-length segments of the chip
// stream by successive complex data symbols, exactly one symbol consumed
// per segment boundary crossed.
package refsignal

import (
	"github.com/kd9wcc/gnssiq/source"
)

// defaultSegmentSeconds is the fallback segment length when no data-symbol
// generator is attached: 20 ms chunks, per spec.md §4.5.
const defaultSegmentSeconds = 0.02

// DataSymbols is a finite ordered symbol stream with a fixed symbol
// period. Once its symbols are exhausted it yields 1+0i indefinitely
// rather than signaling end-of-stream — this is Open Question 4 in
// spec.md §9, preserved here as documented behavior rather than "fixed."
type DataSymbols struct {
	symbols []complex128
	period  float64
	next    int
}

// NewDataSymbols constructs a DataSymbols generator. period is the symbol
// period in seconds and must be positive.
func NewDataSymbols(symbols []complex128, period float64) *DataSymbols {
	cp := make([]complex128, len(symbols))
	copy(cp, symbols)
	return &DataSymbols{symbols: cp, period: period}
}

// Period returns the fixed symbol period in seconds.
func (d *DataSymbols) Period() float64 { return d.period }

// Next returns the next symbol, advancing the cursor. Once the symbol
// list is exhausted it returns 1+0i forever (see the DataSymbols doc
// comment).
func (d *DataSymbols) Next() complex128 {
	if d.next >= len(d.symbols) {
		return 1
	}
	s := d.symbols[d.next]
	d.next++
	return s
}

// ReferenceSignal wraps a source.Source and, if a DataSymbols generator is
// attached, multiplies each fixed-length segment of upstream samples by
// the next data symbol. Segments are pre-generated whole; the invariant is
// that exactly one symbol is consumed per segment boundary crossing,
// regardless of the size of any individual RequestSamples call.
type ReferenceSignal struct {
	upstream   source.Source
	symbols    *DataSymbols
	segmentLen int
	segment    []complex128
	segmentIdx int
}

// New constructs a ReferenceSignal. symbols may be nil, in which case the
// segment length defaults to round(0.02 * rate).
func New(upstream source.Source, symbols *DataSymbols) *ReferenceSignal {
	segLen := int(defaultSegmentSeconds*upstream.Rate() + 0.5)
	if symbols != nil {
		segLen = int(symbols.Period()*upstream.Rate() + 0.5)
	}
	if segLen < 1 {
		segLen = 1
	}

	return &ReferenceSignal{
		upstream:   upstream,
		symbols:    symbols,
		segmentLen: segLen,
		// Start "exhausted" so the first RequestSamples call generates a
		// fresh segment before returning anything.
		segmentIdx: segLen,
	}
}

// RequestSamples returns exactly n samples, drawing new data-modulated
// segments from upstream as needed.
func (r *ReferenceSignal) RequestSamples(n int) []complex128 {
	out := make([]complex128, 0, n)
	for len(out) < n {
		if r.segmentIdx >= r.segmentLen {
			r.fillSegment()
		}
		remaining := n - len(out)
		avail := r.segmentLen - r.segmentIdx
		take := remaining
		if avail < take {
			take = avail
		}
		out = append(out, r.segment[r.segmentIdx:r.segmentIdx+take]...)
		r.segmentIdx += take
	}
	return out
}

func (r *ReferenceSignal) fillSegment() {
	seg := r.upstream.RequestSamples(r.segmentLen)
	if r.symbols != nil {
		sym := r.symbols.Next()
		for i := range seg {
			seg[i] *= sym
		}
	}
	r.segment = seg
	r.segmentIdx = 0
}

// Rate returns the upstream source's sample rate.
func (r *ReferenceSignal) Rate() float64 { return r.upstream.Rate() }

// UseNeighborInterp delegates to the upstream source: data modulation
// doesn't change whether the underlying chip shape needs sample-and-hold
// resampling downstream.
func (r *ReferenceSignal) UseNeighborInterp() bool { return r.upstream.UseNeighborInterp() }
