// Package resample implements the two interpolation policies the pipeline
// uses to move samples from a source's own irregular time axis onto a
// shared, regularly spaced grid: a nearest-lower ("sample and hold") scan
// for square-wave chip streams, and a shape-preserving cubic fit for
// everything else.
package resample

import (
	"errors"

	"gonum.org/v1/gonum/interp"
)

// ErrNotIncreasing is returned when a caller-supplied output axis is not
// weakly increasing, which the single forward-scan algorithms below require.
var ErrNotIncreasing = errors.New("resample: output axis must be weakly increasing")

// NearestLower computes yi[k] = y[j] where j is the largest index such that
// x[j] <= xi[k], or 0 if no such index exists. Both x and xi are scanned in
// a single forward pass, so x must be strictly increasing and xi must be
// weakly increasing; violating the latter is rejected rather than silently
// misbehaving.
func NearestLower(x, y, xi []float64) ([]float64, error) {
	if !isWeaklyIncreasing(xi) {
		return nil, ErrNotIncreasing
	}
	out := make([]float64, len(xi))
	j := -1
	for k, xik := range xi {
		for j+1 < len(x) && x[j+1] <= xik {
			j++
		}
		if j >= 0 {
			out[k] = y[j]
		}
	}
	return out, nil
}

// NearestLowerComplex is NearestLower over complex128 values, used for the
// baseband sample streams themselves.
func NearestLowerComplex(x []float64, y []complex128, xi []float64) ([]complex128, error) {
	if !isWeaklyIncreasing(xi) {
		return nil, ErrNotIncreasing
	}
	out := make([]complex128, len(xi))
	j := -1
	for k, xik := range xi {
		for j+1 < len(x) && x[j+1] <= xik {
			j++
		}
		if j >= 0 {
			out[k] = y[j]
		}
	}
	return out, nil
}

// Cubic resamples y (real-valued) from axis x onto axis xi using a
// shape-preserving (monotone) cubic fit, avoiding the ringing a natural
// cubic spline would introduce on the sharp transitions of a chip stream.
func Cubic(x, y, xi []float64) ([]float64, error) {
	var fn interp.FritschButland
	if err := fn.Fit(x, y); err != nil {
		return nil, err
	}
	out := make([]float64, len(xi))
	for k, xik := range xi {
		out[k] = clampedPredict(&fn, x, xik)
	}
	return out, nil
}

// CubicComplex is Cubic applied independently to the real and imaginary
// parts of a complex128 sample stream.
func CubicComplex(x []float64, y []complex128, xi []float64) ([]complex128, error) {
	re := make([]float64, len(y))
	im := make([]float64, len(y))
	for i, v := range y {
		re[i] = real(v)
		im[i] = imag(v)
	}

	reOut, err := Cubic(x, re, xi)
	if err != nil {
		return nil, err
	}
	imOut, err := Cubic(x, im, xi)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(xi))
	for i := range out {
		out[i] = complex(reOut[i], imOut[i])
	}
	return out, nil
}

// clampedPredict guards gonum's FritschButland.Predict, which panics on
// out-of-domain input, by clamping to the fitted domain edges first — the
// same silent-extrapolation policy the rest of this pipeline uses for
// piecewise polynomials.
func clampedPredict(fn *interp.FritschButland, x []float64, xi float64) float64 {
	if len(x) == 0 {
		return 0
	}
	if xi <= x[0] {
		return fn.Predict(x[0])
	}
	if xi >= x[len(x)-1] {
		return fn.Predict(x[len(x)-1])
	}
	return fn.Predict(xi)
}

func isWeaklyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}
