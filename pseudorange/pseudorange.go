// Package pseudorange inverts a pseudorange-vs-true-time piecewise
// polynomial into a signal-time-to-true-time piecewise polynomial, for
// use as ModulatedSignal's warp input.
//
// gonum's interp package (interp.NaturalCubic) fits a natural cubic
// spline but only exposes Fit/Predict, not the underlying per-piece
// coefficients — and this stage must hand back an actual *pp.Poly, not
// just an evaluatable function. The natural-cubic-spline coefficient
// derivation below is the standard tridiagonal (Thomas algorithm) solve
// for that reason; see DESIGN.md for the full justification.
package pseudorange

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kd9wcc/gnssiq/pp"
)

// TRes is the fixed evaluation-grid spacing, in seconds, used to densify
// long intervals between the pseudorange PP's own breakpoints before
// fitting the inverse spline.
const TRes = 0.1

// ErrDegenerateAxis is returned when the computed signal-time axis
// ts = t - p(t)/c is not strictly increasing, which happens whenever the
// pseudorange's rate of change equals the speed of light (dp/dt = c):
// every t maps to the same ts, so no function ts -> t exists to fit.
// Scenario 6 in spec.md's testable properties is exactly this case, left
// there as an open question; this package resolves it by rejecting
// rather than degenerating silently into a wrong answer.
var ErrDegenerateAxis = errors.New("pseudorange: signal-time axis is not strictly increasing")

// Invert computes the signal-time-to-true-time warp for pseudorange PP p
// (meters vs. true time) given the speed of light c (meters/second,
// typically 299792458).
func Invert(p *pp.Poly, c float64) (*pp.Poly, error) {
	if c <= 0 {
		return nil, fmt.Errorf("pseudorange: speed of light must be positive, got %g", c)
	}

	tSamples := evaluationGrid(p.Breaks(), TRes)

	ts := make([]float64, len(tSamples))
	for i, t := range tSamples {
		ts[i] = t - p.Eval(t)/c
	}

	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return nil, fmt.Errorf("%w: ts[%d]=%.9g <= ts[%d]=%.9g", ErrDegenerateAxis, i, ts[i], i-1, ts[i-1])
		}
	}

	breaks, coefs := naturalCubicSpline(ts, tSamples)
	return pp.New(breaks, coefs)
}

// evaluationGrid starts from breaks and inserts intermediate points at
// spacing tRes wherever a gap between consecutive breaks exceeds tRes,
// always including the final break, and returns the result deduplicated
// and sorted.
func evaluationGrid(breaks []float64, tRes float64) []float64 {
	if len(breaks) == 0 {
		return nil
	}

	out := []float64{breaks[0]}
	for i := 1; i < len(breaks); i++ {
		lo, hi := breaks[i-1], breaks[i]
		for t := lo + tRes; t < hi; t += tRes {
			out = append(out, t)
		}
		out = append(out, hi)
	}
	return uniqueSorted(out)
}

func uniqueSorted(xs []float64) []float64 {
	sort.Float64s(xs)
	out := xs[:0]
	haveLast := false
	var last float64
	for _, x := range xs {
		if !haveLast || x > last {
			out = append(out, x)
			last = x
			haveLast = true
		}
	}
	return out
}

// naturalCubicSpline fits a natural cubic spline y = S(x) through the
// strictly increasing knots x, returning breaks (== x) and per-piece
// coefficients in descending-power order, ready for pp.New.
func naturalCubicSpline(x, y []float64) ([]float64, [][]float64) {
	n := len(x) - 1 // number of pieces
	h := make([]float64, n)
	for i := 0; i < n; i++ {
		h[i] = x[i+1] - x[i]
	}

	// Standard tridiagonal (Thomas algorithm) solve for the natural
	// cubic spline's second-derivative coefficients c, with natural
	// boundary conditions c[0] = c[n] = 0.
	c := make([]float64, n+1)
	if n >= 2 {
		alpha := make([]float64, n+1)
		for i := 1; i < n; i++ {
			alpha[i] = 3*(y[i+1]-y[i])/h[i] - 3*(y[i]-y[i-1])/h[i-1]
		}

		l := make([]float64, n+1)
		mu := make([]float64, n+1)
		z := make([]float64, n+1)
		l[0] = 1

		for i := 1; i < n; i++ {
			l[i] = 2*(x[i+1]-x[i-1]) - h[i-1]*mu[i-1]
			mu[i] = h[i] / l[i]
			z[i] = (alpha[i] - h[i-1]*z[i-1]) / l[i]
		}
		l[n] = 1

		for j := n - 1; j >= 0; j-- {
			c[j] = z[j] - mu[j]*c[j+1]
		}
	}

	coefs := make([][]float64, n)
	for i := 0; i < n; i++ {
		b := (y[i+1]-y[i])/h[i] - h[i]*(2*c[i]+c[i+1])/3
		d := (c[i+1] - c[i]) / (3 * h[i])
		// Descending power order: d*dx^3 + c*dx^2 + b*dx + a.
		coefs[i] = []float64{d, c[i], b, y[i]}
	}

	return x, coefs
}
