// Package ringbuf implements a growable double-ended queue of
// (time, sample) pairs, sized for Composite's per-source buffers: append
// to the back as new source output arrives, trim from the front as the
// output-time grid advances past it. Both operations are amortized O(1).
package ringbuf

// Buffer is a deque of time-tagged complex samples. The zero value is an
// empty, ready-to-use Buffer.
type Buffer struct {
	t    []float64
	x    []complex128
	head int // index of the first live element
}

// Len returns the number of live elements.
func (b *Buffer) Len() int { return len(b.t) - b.head }

// Empty reports whether the buffer holds no elements.
func (b *Buffer) Empty() bool { return b.Len() == 0 }

// Append adds one time/sample pair to the back of the buffer.
func (b *Buffer) Append(t float64, x complex128) {
	b.t = append(b.t, t)
	b.x = append(b.x, x)
}

// AppendAll adds a run of time/sample pairs to the back of the buffer.
// ts and xs must have equal length.
func (b *Buffer) AppendAll(ts []float64, xs []complex128) {
	b.t = append(b.t, ts...)
	b.x = append(b.x, xs...)
}

// At returns the i-th live element (0-indexed from the current front).
func (b *Buffer) At(i int) (t float64, x complex128) {
	j := b.head + i
	return b.t[j], b.x[j]
}

// Front returns the first live element's time. Panics if empty.
func (b *Buffer) Front() float64 { return b.t[b.head] }

// Back returns the last live element's time. Panics if empty.
func (b *Buffer) Back() float64 { return b.t[len(b.t)-1] }

// TrimBefore drops leading elements whose time is strictly less than cut.
func (b *Buffer) TrimBefore(cut float64) {
	for b.head < len(b.t) && b.t[b.head] < cut {
		b.head++
	}
	b.compact()
}

// compact reclaims the discarded prefix once it dominates the live
// region, keeping amortized cost O(1) per element without ever letting
// the backing arrays grow without bound.
func (b *Buffer) compact() {
	if b.head == 0 || b.head < len(b.t)/2 {
		return
	}
	n := len(b.t) - b.head
	copy(b.t, b.t[b.head:])
	copy(b.x, b.x[b.head:])
	b.t = b.t[:n]
	b.x = b.x[:n]
	b.head = 0
}

// Times returns the live time axis as a fresh slice.
func (b *Buffer) Times() []float64 {
	out := make([]float64, b.Len())
	copy(out, b.t[b.head:])
	return out
}

// Samples returns the live sample values as a fresh slice.
func (b *Buffer) Samples() []complex128 {
	out := make([]complex128, b.Len())
	copy(out, b.x[b.head:])
	return out
}
