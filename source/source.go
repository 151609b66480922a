// Package source implements the leaf stages of the synthesis pipeline: raw
// complex sample producers running at a fixed rate. Every variant satisfies
// the same small Source interface — request a count of samples, or silently
// advance the internal cursor without producing them — so upstream stages
// (package refsignal, package modsignal) can treat a repeating PRN code,
// a sine wave, and filtered noise identically.
package source

// Source is the capability set every sample producer exposes: pull-based
// generation plus a pure cursor advance, a fixed sample rate, and a hint
// about which resampling policy downstream consumers should use.
type Source interface {
	// RequestSamples returns exactly n samples and advances internal state
	// by n samples.
	RequestSamples(n int) []complex128

	// Advance moves the internal cursor by n samples without producing
	// output. For the deterministic sources this is equivalent to
	// discarding RequestSamples(n); WhiteNoise advances its signal time
	// without drawing random numbers, so its later samples differ from
	// those that follow a discarded RequestSamples(n).
	Advance(n int)

	// Rate is the fixed sample rate, in Hz, at which this source produces
	// samples.
	Rate() float64

	// UseNeighborInterp reports whether downstream composition should
	// resample this source's output with the nearest-lower policy (square
	// wave chip streams) instead of shape-preserving cubic interpolation.
	UseNeighborInterp() bool
}
