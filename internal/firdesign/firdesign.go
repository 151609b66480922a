// Package firdesign builds windowed-sinc FIR lowpass kernels for
// Composite's anti-alias filter.
package firdesign

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Lowpass returns a Hamming-windowed sinc lowpass kernel of length taps
// with normalized cutoff fc (as a fraction of the sample rate, in
// (0, 0.5]), normalized to unity gain at DC.
func Lowpass(fc float64, taps int) []float64 {
	if taps < 1 {
		return nil
	}
	h := make([]float64, taps)
	center := 0.5 * float64(taps-1)

	for j := 0; j < taps; j++ {
		x := float64(j) - center
		var sinc float64
		if x == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
		}
		h[j] = sinc * hamming(taps, j)
	}

	var gain float64
	for _, v := range h {
		gain += v
	}
	if gain != 0 {
		for j := range h {
			h[j] /= gain
		}
	}
	return h
}

// hamming evaluates the Hamming window at tap j of size taps.
func hamming(taps, j int) float64 {
	return 0.53836 - 0.46164*math.Cos((float64(j)*2*math.Pi)/float64(taps-1))
}

// FrequencyResponse zero-pads h to nfft taps and returns the magnitude of
// its real-input FFT, bins 0..nfft/2 inclusive (DC to Nyquist). nfft is
// rounded up to len(h) if smaller. Used by composite's tests to confirm a
// generated kernel actually attenuates past its design cutoff, rather than
// trusting the time-domain windowed-sinc construction alone.
func FrequencyResponse(h []float64, nfft int) []float64 {
	if nfft < len(h) {
		nfft = len(h)
	}
	padded := make([]float64, nfft)
	copy(padded, h)

	fft := fourier.NewFFT(nfft)
	coefs := fft.Coefficients(nil, padded)

	mag := make([]float64, len(coefs))
	for i, c := range coefs {
		mag[i] = cmplx.Abs(c)
	}
	return mag
}
