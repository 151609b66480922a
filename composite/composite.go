// Package composite implements Composite: the stage that pulls chunks
// from every added ModulatedSignal, resamples them onto a shared
// high-rate time grid, applies per-source FDMA rotation, sums them, and
// (when oversampling) runs the sum through an anti-alias FIR before
// decimating back down to the output rate.
package composite

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/kd9wcc/gnssiq/internal/firdesign"
	"github.com/kd9wcc/gnssiq/internal/ringbuf"
	"github.com/kd9wcc/gnssiq/modsignal"
	"github.com/kd9wcc/gnssiq/resample"
)

var logger = log.Default().WithPrefix("composite")

// ErrChunkTooSmall is returned when a requested duration rounds down to
// fewer than one high-rate sample.
var ErrChunkTooSmall = errors.New("composite: requested duration yields fewer than one sample")

// ErrNonMonotoneTime is returned when a source's accumulated time axis
// stops being strictly increasing, which would otherwise make the fill
// loop spin forever waiting for the buffer to reach the grid's end time.
var ErrNonMonotoneTime = errors.New("composite: source time axis is not strictly increasing")

// Source is the capability Composite needs from each added signal: pull
// duration seconds of signal time and report whether its underlying
// chip stream wants sample-and-hold resampling downstream.
type Source interface {
	RequestSamples(duration float64) modsignal.Result
	UseNeighborInterp() bool
}

// Config configures a Composite. Zero values for K, FilterOrder, and
// Alpha take the documented defaults.
type Config struct {
	// OutputRate is r_out, the decimated output sample rate in Hz.
	OutputRate float64
	// K is the oversample ratio; the internal clock runs at K*OutputRate.
	// Defaults to 4. K=1 disables the anti-alias filter entirely.
	K int
	// FilterOrder is the anti-alias FIR's order O_f (taps = O_f+1).
	// Defaults to 60. Ignored when K==1.
	FilterOrder int
	// Alpha is the FIR cutoff scale in (0,1], applied as alpha/K.
	// Defaults to 1.0.
	Alpha float64
}

// entry tracks one added signal's buffer state.
type entry struct {
	source    Source
	fdmaHz    float64
	fdmaPhase float64
	buf       ringbuf.Buffer
	ended     bool
}

// Composite sums an arbitrary number of ModulatedSignal sources onto a
// shared time grid and, when oversampling, anti-alias filters and
// decimates the sum back to the configured output rate.
type Composite struct {
	rOut        float64
	k           int
	filterOrder int
	alpha       float64
	rHi         float64
	groupDelay  float64 // tau_g, seconds

	fir   []float64     // nil when k == 1
	z     []complex128  // FIR delay line, persists across calls
	nHiTotal int64      // sample_counter_hi

	sources []*entry
}

// New constructs a Composite from cfg.
func New(cfg Config) (*Composite, error) {
	if cfg.OutputRate <= 0 {
		return nil, fmt.Errorf("composite: output rate must be positive, got %g", cfg.OutputRate)
	}
	k := cfg.K
	if k == 0 {
		k = 4
	}
	if k < 1 {
		return nil, fmt.Errorf("composite: K must be a positive integer, got %d", k)
	}
	order := cfg.FilterOrder
	if order == 0 {
		order = 60
	}
	if order < 1 {
		return nil, fmt.Errorf("composite: filter order must be positive, got %d", order)
	}
	alpha := cfg.Alpha
	if alpha == 0 {
		alpha = 1.0
	}
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("composite: alpha must be in (0,1], got %g", alpha)
	}

	c := &Composite{
		rOut:        cfg.OutputRate,
		k:           k,
		filterOrder: order,
		alpha:       alpha,
		rHi:         float64(k) * cfg.OutputRate,
	}

	if k != 1 {
		taps := order + 1
		c.fir = firdesign.Lowpass(alpha/float64(k), taps)
		c.groupDelay = (float64(order) / 2) / c.rHi
		c.z = make([]complex128, order)
	}

	return c, nil
}

// AddSignal registers a source to be summed into every future
// RequestSamples call. fdmaHz is the FDMA carrier offset in Hz; pass 0
// to disable FDMA rotation for this source.
func (c *Composite) AddSignal(src Source, fdmaHz float64) {
	c.sources = append(c.sources, &entry{source: src, fdmaHz: fdmaHz})
}

// Result is one chunk of Composite output.
type Result struct {
	// Times is the output time axis, at r_out (or r_hi when K==1, which
	// are the same grid).
	Times []float64
	// Samples is the summed, filtered, decimated complex baseband output.
	Samples []complex128
}

// RequestSamples pulls duration seconds of high-rate signal time from
// every added source, sums them on a common grid, and returns the
// (possibly decimated) result.
func (c *Composite) RequestSamples(duration float64) (Result, error) {
	nHi := int(duration * c.rHi)
	if nHi < 1 {
		return Result{}, ErrChunkTooSmall
	}

	tHi := make([]float64, nHi)
	for k := range tHi {
		tHi[k] = (float64(c.nHiTotal) + float64(k)) / c.rHi
	}
	c.nHiTotal += int64(nHi)

	sum := make([]complex128, nHi)
	for _, e := range c.sources {
		xi, err := c.fillAndResample(e, duration, tHi)
		if err != nil {
			return Result{}, err
		}
		if e.fdmaHz != 0 {
			applyFDMA(xi, tHi, e)
		}
		for k := range sum {
			sum[k] += xi[k]
		}
	}

	if c.k == 1 {
		return Result{Times: tHi, Samples: sum}, nil
	}

	filtered := c.applyFIR(sum)

	outN := (nHi + c.k - 1) / c.k
	outT := make([]float64, 0, outN)
	out := make([]complex128, 0, outN)
	for i := 0; i < nHi; i += c.k {
		outT = append(outT, tHi[i])
		out = append(out, filtered[i])
	}

	return Result{Times: outT, Samples: out}, nil
}

// fillAndResample trims e's buffer, fills it forward as needed, and
// resamples it onto tHi.
func (c *Composite) fillAndResample(e *entry, duration float64, tHi []float64) ([]complex128, error) {
	e.buf.TrimBefore(tHi[0])
	last := tHi[len(tHi)-1]

	for !e.ended && (e.buf.Empty() || e.buf.Back() < last) {
		res := e.source.RequestSamples(duration)
		if len(res.Samples) == 0 {
			if res.StreamEnded {
				e.ended = true
				logger.Debug("source stream ended")
			}
			// No progress possible on this call; further calls would
			// behave identically (see modsignal's Open Question 2), so
			// stop rather than spin.
			break
		}

		times := res.TrueTime
		if c.k != 1 {
			times = shifted(times, -c.groupDelay)
		}

		if err := c.checkMonotone(e, times); err != nil {
			return nil, err
		}

		e.buf.AppendAll(times, res.Samples)
		if res.StreamEnded {
			e.ended = true
		}
	}

	if e.buf.Empty() {
		return make([]complex128, len(tHi)), nil
	}

	bufT := e.buf.Times()
	bufX := e.buf.Samples()

	if e.source.UseNeighborInterp() || len(bufT) < 2 {
		return resample.NearestLowerComplex(bufT, bufX, tHi)
	}
	return resample.CubicComplex(bufT, bufX, tHi)
}

func (c *Composite) checkMonotone(e *entry, times []float64) error {
	prev := math.Inf(-1)
	if !e.buf.Empty() {
		prev = e.buf.Back()
	}
	for _, t := range times {
		if t <= prev {
			return fmt.Errorf("%w: got %.9g after %.9g", ErrNonMonotoneTime, t, prev)
		}
		prev = t
	}
	return nil
}

// applyFIR streams x through the anti-alias FIR's persistent delay line
// using the direct-form-II-transposed structure, so successive calls
// filter as one continuous stream.
func (c *Composite) applyFIR(x []complex128) []complex128 {
	out := make([]complex128, len(x))
	b := c.fir
	for k, xk := range x {
		var y complex128
		if len(c.z) > 0 {
			y = complex(b[0], 0)*xk + c.z[0]
		} else {
			y = complex(b[0], 0) * xk
		}
		for i := 0; i < len(c.z); i++ {
			var next complex128
			if i+1 < len(b) {
				next = complex(b[i+1], 0) * xk
			}
			if i+1 < len(c.z) {
				next += c.z[i+1]
			}
			c.z[i] = next
		}
		out[k] = y
	}
	return out
}

func applyFDMA(xi []complex128, tHi []float64, e *entry) {
	t0 := tHi[0]
	for k := range xi {
		trel := tHi[k] - t0
		s, cph := math.Sincos(e.fdmaPhase + 2*math.Pi*e.fdmaHz*trel)
		xi[k] *= complex(cph, s)
	}
	trelEnd := tHi[len(tHi)-1] - t0
	e.fdmaPhase = math.Mod(e.fdmaPhase+2*math.Pi*e.fdmaHz*trelEnd, 2*math.Pi)
	if e.fdmaPhase < 0 {
		e.fdmaPhase += 2 * math.Pi
	}
}

func shifted(ts []float64, delta float64) []float64 {
	if delta == 0 {
		return ts
	}
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = t + delta
	}
	return out
}
