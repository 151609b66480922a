package modsignal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kd9wcc/gnssiq/pp"
	"github.com/kd9wcc/gnssiq/refsignal"
	"github.com/kd9wcc/gnssiq/source"
)

func TestModulatedSignal_NoProfilesPassesThroughUpstream(t *testing.T) {
	rate := 1000.0
	sine, err := source.NewSine(0, rate)
	require.NoError(t, err)
	rs := refsignal.New(sine, nil)

	sineRef, err := source.NewSine(0, rate)
	require.NoError(t, err)
	rsRef := refsignal.New(sineRef, nil)

	m := New(rsRef, nil, nil, nil, 0)

	upstreamOut := rs.RequestSamples(500)
	res := m.RequestSamples(0.5)

	require.Len(t, res.Samples, len(upstreamOut))
	for i := range upstreamOut {
		assert.InDelta(t, real(upstreamOut[i]), real(res.Samples[i]), 1e-9)
		assert.InDelta(t, imag(upstreamOut[i]), imag(res.Samples[i]), 1e-9)
	}

	for k := range res.TrueTime {
		assert.InDelta(t, float64(k)/rate, res.TrueTime[k]-res.TrueTime[0], 1e-12)
	}
	assert.False(t, res.StreamEnded)
}

// Concrete scenario 4: sine source at 0 Hz (pure DC = 1+0i), constant
// Doppler PP f = 100 Hz, rate 1 kHz, two sequential request(1.0s) calls.
// The last sample of the first call and the first sample of the second
// call must differ in phase by exactly 2*pi*100*(1/1000) radians (mod
// 2*pi).
func TestModulatedSignal_DopplerPhaseContinuity(t *testing.T) {
	rate := 1000.0
	sine, err := source.NewSine(0, rate)
	require.NoError(t, err)
	rs := refsignal.New(sine, nil)

	doppler, err := pp.New([]float64{-1e9, 1e9}, [][]float64{{100}})
	require.NoError(t, err)

	m := New(rs, nil, doppler, nil, 0)

	first := m.RequestSamples(1.0)
	second := m.RequestSamples(1.0)

	lastFirst := phaseOf(first.Samples[len(first.Samples)-1])
	firstSecond := phaseOf(second.Samples[0])

	want := 2 * math.Pi * 100 * (1.0 / 1000.0)
	got := math.Mod(firstSecond-lastFirst+2*math.Pi, 2*math.Pi)
	wantMod := math.Mod(want, 2*math.Pi)

	assert.InDelta(t, wantMod, got, 1e-6)
}

func phaseOf(c complex128) float64 {
	return math.Atan2(imag(c), real(c))
}

func TestModulatedSignal_PowerScalesAmplitude(t *testing.T) {
	rate := 100.0
	sine, err := source.NewSine(0, rate)
	require.NoError(t, err)
	rs := refsignal.New(sine, nil)

	power, err := pp.New([]float64{-1e9, 1e9}, [][]float64{{4}})
	require.NoError(t, err)

	m := New(rs, power, nil, nil, 0)
	res := m.RequestSamples(0.1)
	for _, s := range res.Samples {
		assert.InDelta(t, 2.0, real(s), 1e-9) // sqrt(4) = 2
	}
}

func TestModulatedSignal_WarpTruncatesAndSetsStreamEnded(t *testing.T) {
	rate := 10.0
	sine, err := source.NewSine(0, rate)
	require.NoError(t, err)
	rs := refsignal.New(sine, nil)

	// Signal time to true time: identity up to 0.5s, then domain ends.
	warp, err := pp.New([]float64{0, 0.5}, [][]float64{{1, 0}})
	require.NoError(t, err)

	m := New(rs, nil, nil, warp, 0)
	res := m.RequestSamples(1.0) // requests 10 samples spanning [0, 1.0)

	assert.True(t, res.StreamEnded)
	assert.Less(t, len(res.Samples), 10)

	// Once truncation has occurred, subsequent calls return empty forever
	// (spec.md Open Question 2, preserved intentionally).
	res2 := m.RequestSamples(1.0)
	assert.Empty(t, res2.Samples)
	assert.True(t, res2.StreamEnded)
}
