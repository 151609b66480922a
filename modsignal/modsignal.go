// Package modsignal implements ModulatedSignal: the stage that turns a raw
// data-modulated chip stream into baseband samples carrying amplitude
// (power), Doppler carrier rotation, and a signal-time-to-true-time warp.
package modsignal

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/kd9wcc/gnssiq/pp"
)

var logger = log.Default().WithPrefix("modsignal")

// Upstream is the capability ModulatedSignal needs from whatever feeds it
// (normally a *refsignal.ReferenceSignal): pull samples at a fixed rate.
type Upstream interface {
	RequestSamples(n int) []complex128
	Rate() float64
	UseNeighborInterp() bool
}

// ModulatedSignal applies power scaling, Doppler carrier rotation, and an
// optional signal-time-to-true-time warp to samples pulled from an
// upstream reference signal.
//
// Open Question 2 from spec.md §9 is preserved verbatim rather than
// "fixed": signal time advances by the untruncated request duration even
// when the warp clips the tail, so once the warp's domain is exceeded
// every subsequent request returns empty output forever. Open Question 3
// does not apply here: each of power, doppler, and warp is an
// independent, optional *pp.Poly validated only against its own domain
// (by pp.New at construction) — there is no cross-validation between them
// to get wrong.
type ModulatedSignal struct {
	upstream Upstream
	power    *pp.Poly // power (linear) vs true time; nil = disabled
	doppler  *pp.Poly // Doppler (Hz) vs true time; nil = disabled
	warp     *pp.Poly // signal time -> true time; nil = disabled

	signalTime float64
	phase      float64 // carrier phase, radians, kept mod 2*pi

	// dopplerInit, dopplerLastT, dopplerLastF anchor the trapezoidal phase
	// integral to the true-time instant and Doppler frequency at the very
	// end of the previous chunk, so that phase stays continuous across a
	// chunk boundary exactly as it would within a single uninterrupted
	// request — without this anchor, restarting the cumulative integral
	// at zero for every chunk would silently drop the phase contribution
	// of the true-time gap between the last sample of one chunk and the
	// first sample of the next.
	dopplerInit bool
	dopplerLastT float64
	dopplerLastF float64
}

// Rate returns the upstream sample rate, in samples per second of signal
// time.
func (m *ModulatedSignal) Rate() float64 { return m.upstream.Rate() }

// UseNeighborInterp delegates to the upstream source: whether downstream
// resampling should use sample-and-hold (true) or shape-preserving cubic
// interpolation (false).
func (m *ModulatedSignal) UseNeighborInterp() bool { return m.upstream.UseNeighborInterp() }

// New constructs a ModulatedSignal. Any of power, doppler, or warp may be
// nil to disable that stage. phi0 is the initial carrier phase in
// radians.
func New(upstream Upstream, power, doppler, warp *pp.Poly, phi0 float64) *ModulatedSignal {
	return &ModulatedSignal{
		upstream: upstream,
		power:    power,
		doppler:  doppler,
		warp:     warp,
		phase:    math.Mod(phi0, 2*math.Pi),
	}
}

// Result is one chunk of ModulatedSignal output.
type Result struct {
	// TrueTime is the true-time axis for Samples, of equal length.
	TrueTime []float64
	// Samples is the modulated complex baseband output.
	Samples []complex128
	// StreamEnded is true once the signal-time warp's domain has been
	// exceeded and no further non-empty output can be produced.
	StreamEnded bool
}

// RequestSamples pulls duration seconds of signal time from upstream,
// applies the configured warp/power/Doppler stages, and returns the
// result. duration is in seconds of signal time, not output sample count.
func (m *ModulatedSignal) RequestSamples(duration float64) Result {
	rate := m.upstream.Rate()
	tStep := 1 / rate
	count := int(duration*rate + 0.5)
	if count < 1 {
		return Result{}
	}

	samples := m.upstream.RequestSamples(count)

	sigT := make([]float64, count)
	for k := range sigT {
		sigT[k] = m.signalTime + float64(k)*tStep
	}

	var trueT []float64
	var out []complex128
	streamEnded := false

	if m.warp != nil {
		lastBreak := m.warp.Breaks()[len(m.warp.Breaks())-1]
		keep := 0
		for keep < len(sigT) && sigT[keep] < lastBreak {
			keep++
		}
		streamEnded = keep < len(sigT)
		trueT = m.warp.EvalVec(sigT[:keep])
		out = append([]complex128{}, samples[:keep]...)
	} else {
		trueT = sigT
		out = append([]complex128{}, samples...)
	}

	if len(out) == 0 {
		if streamEnded {
			logger.Debug("stream ended: signal time exceeds warp domain", "signalTime", m.signalTime)
		}
		// Signal time is deliberately NOT advanced here: this call
		// produced nothing at all, so there is nothing to advance past.
		return Result{StreamEnded: streamEnded}
	}

	// Signal time advances by the untruncated request duration even when
	// the warp clipped the tail. This is intentional preservation of
	// spec.md Open Question 2: once truncation starts, the next call's
	// signal-time axis starts even further past the warp's domain, so
	// once the warp domain is exceeded every later call returns empty
	// output (and stops advancing, per the branch above) forever.
	m.signalTime += float64(count) * tStep

	if m.power != nil {
		for k := range out {
			out[k] *= complex(math.Sqrt(m.power.Eval(trueT[k])), 0)
		}
	}

	if m.doppler != nil {
		out = m.applyDoppler(out, trueT)
	}

	return Result{TrueTime: trueT, Samples: out, StreamEnded: streamEnded}
}

func (m *ModulatedSignal) applyDoppler(samples []complex128, trueT []float64) []complex128 {
	freq := m.doppler.EvalVec(trueT)
	n := len(freq)

	phaseAt := make([]float64, n)
	if n == 1 {
		phaseAt[0] = m.phase + 2*math.Pi*trueT[0]*freq[0]
	} else {
		// Trapezoidal cumulative integration of freq over trueT, anchored
		// to the previous chunk's last (true_t, freq) pair so the very
		// first segment of this chunk correctly accounts for the true
		// time elapsed since the previous chunk's last sample. On the
		// first-ever call there is no anchor, which degenerates to a
		// zero-width first segment (equivalent to the plain cumtrapz
		// convention of starting at zero).
		anchorT, anchorF := trueT[0], freq[0]
		if m.dopplerInit {
			anchorT, anchorF = m.dopplerLastT, m.dopplerLastF
		}

		acc := 0.5 * (freq[0] + anchorF) * (trueT[0] - anchorT)
		phaseAt[0] = m.phase + 2*math.Pi*acc
		for k := 1; k < n; k++ {
			dt := trueT[k] - trueT[k-1]
			acc += 0.5 * (freq[k] + freq[k-1]) * dt
			phaseAt[k] = m.phase + 2*math.Pi*acc
		}
	}

	out := make([]complex128, n)
	for k, s := range samples {
		sinv, cosv := math.Sincos(phaseAt[k])
		out[k] = s * complex(cosv, sinv)
	}

	m.phase = math.Mod(phaseAt[n-1], 2*math.Pi)
	m.dopplerLastT, m.dopplerLastF = trueT[n-1], freq[n-1]
	m.dopplerInit = true
	return out
}
