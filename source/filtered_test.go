package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltered_IdentityFilterPassesThrough(t *testing.T) {
	upstream, err := NewRepeating(chips(1, 2, 3, 4), 1, 1, false)
	require.NoError(t, err)

	f, err := NewFiltered(upstream, []float64{1}, []float64{1})
	require.NoError(t, err)

	got := f.RequestSamples(4)
	assert.Equal(t, chips(1, 2, 3, 4), got)
}

func TestFiltered_ScalesByGain(t *testing.T) {
	upstream, err := NewRepeating(chips(1, 2, 3), 1, 1, false)
	require.NoError(t, err)

	f, err := NewFiltered(upstream, []float64{2}, []float64{1})
	require.NoError(t, err)

	got := f.RequestSamples(3)
	assert.Equal(t, chips(2, 4, 6), got)
}

func TestFiltered_DelayLinePersistsAcrossCalls(t *testing.T) {
	// A simple two-tap moving-average FIR: y[n] = 0.5*x[n] + 0.5*x[n-1].
	mkFiltered := func(vals ...float64) *Filtered {
		upstream, err := NewRepeating(chips(vals...), 1, 1, false)
		require.NoError(t, err)
		f, err := NewFiltered(upstream, []float64{0.5, 0.5}, []float64{1})
		require.NoError(t, err)
		return f
	}

	oneShot := mkFiltered(1, 2, 3, 4)
	wholeOutput := oneShot.RequestSamples(4)

	chunked := mkFiltered(1, 2, 3, 4)
	first := chunked.RequestSamples(2)
	second := chunked.RequestSamples(2)
	chunkedOutput := append(append([]complex128{}, first...), second...)

	for i := range wholeOutput {
		assert.InDelta(t, real(wholeOutput[i]), real(chunkedOutput[i]), 1e-12)
		assert.InDelta(t, imag(wholeOutput[i]), imag(chunkedOutput[i]), 1e-12)
	}
}

func TestFiltered_RejectsNilUpstream(t *testing.T) {
	_, err := NewFiltered(nil, []float64{1}, nil)
	assert.Error(t, err)
}

func TestFiltered_RejectsEmptyNumerator(t *testing.T) {
	upstream, err := NewRepeating(chips(1), 1, 1, false)
	require.NoError(t, err)
	_, err = NewFiltered(upstream, nil, nil)
	assert.Error(t, err)
}
