// Package pp implements piecewise-polynomial evaluation: an immutable,
// value-typed representation of a scalar function of one real variable as a
// sequence of polynomials over contiguous intervals.
//
// Poly is the shared currency of the whole pipeline: power, Doppler, signal
// time warp, and pseudorange profiles are all Poly values. Evaluation is
// deliberately silent outside the domain (see Eval) rather than returning an
// error, matching how every other stage in this pipeline treats
// extrapolation as a clamp, not a fault.
package pp

import (
	"fmt"
	"sort"
)

// Poly is an ordered set of breakpoints plus a coefficient matrix, one row
// per piece, coefficients in descending-power order. Piece i is evaluated
// over (breaks[i], breaks[i+1]] as
//
//	sum_k coefs[i][k] * (x - breaks[i])^(order-1-k)
//
// Zero value is not valid; construct with New.
type Poly struct {
	breaks []float64
	coefs  [][]float64
	order  int
}

// New validates and constructs a Poly. breaks must be strictly increasing
// with at least two entries. coefs must have len(breaks)-1 rows; shorter
// rows are left-padded with zeros up to the widest row, matching the binary
// format's variable per-piece coefficient counts (see package ppio).
func New(breaks []float64, coefs [][]float64) (*Poly, error) {
	if len(breaks) < 2 {
		return nil, fmt.Errorf("pp: need at least 2 breakpoints, got %d", len(breaks))
	}
	for i := 1; i < len(breaks); i++ {
		if breaks[i] <= breaks[i-1] {
			return nil, fmt.Errorf("pp: breakpoints must be strictly increasing, breaks[%d]=%v <= breaks[%d]=%v", i, breaks[i], i-1, breaks[i-1])
		}
	}
	if len(coefs) != len(breaks)-1 {
		return nil, fmt.Errorf("pp: expected %d coefficient rows (len(breaks)-1), got %d", len(breaks)-1, len(coefs))
	}

	order := 0
	for _, row := range coefs {
		if len(row) > order {
			order = len(row)
		}
	}
	if order == 0 {
		return nil, fmt.Errorf("pp: coefficient rows are all empty")
	}

	padded := make([][]float64, len(coefs))
	for i, row := range coefs {
		if len(row) == order {
			padded[i] = row
			continue
		}
		p := make([]float64, order)
		copy(p[order-len(row):], row)
		padded[i] = p
	}

	b := make([]float64, len(breaks))
	copy(b, breaks)

	return &Poly{breaks: b, coefs: padded, order: order}, nil
}

// Breaks returns the breakpoint vector. The caller must not mutate it.
func (p *Poly) Breaks() []float64 { return p.breaks }

// Coefs returns the coefficient matrix, descending-power order per row. The
// caller must not mutate it.
func (p *Poly) Coefs() [][]float64 { return p.coefs }

// Order returns the number of coefficients per piece (O in spec terms).
func (p *Poly) Order() int { return p.order }

// piece returns the index of the piece that should be used to evaluate x,
// per the clamped binary-search policy: x <= breaks[0] uses piece 0, x >
// breaks[N-1] uses piece N-2, otherwise the piece i such that
// breaks[i] < x <= breaks[i+1].
func (p *Poly) piece(x float64) int {
	n := len(p.breaks)
	if x <= p.breaks[0] {
		return 0
	}
	if x > p.breaks[n-1] {
		return n - 2
	}
	// First index j such that breaks[j] >= x gives piece j-1, unless
	// breaks[j] == x exactly, in which case piece j-1 still applies
	// (x is at the upper edge of piece j-1, per the half-open (b[i], b[i+1]]
	// convention).
	j := sort.Search(n, func(k int) bool { return p.breaks[k] >= x })
	if j == 0 {
		j = 1
	}
	return j - 1
}

// Eval evaluates the polynomial at x using Horner's method on the located
// piece. Extrapolation outside [breaks[0], breaks[N-1]] silently clamps to
// the nearest end piece; this is documented policy, not an error.
func (p *Poly) Eval(x float64) float64 {
	i := p.piece(x)
	dx := x - p.breaks[i]
	row := p.coefs[i]

	v := row[0]
	for k := 1; k < len(row); k++ {
		v = v*dx + row[k]
	}
	return v
}

// EvalVec evaluates the polynomial at every point in xs, independently.
func (p *Poly) EvalVec(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = p.Eval(x)
	}
	return out
}
