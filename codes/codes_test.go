package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChips_GPSCAHasCorrectLengthAndAlphabet(t *testing.T) {
	c, err := Chips(GPSL1CA, 1)
	require.NoError(t, err)
	require.Len(t, c, 1023)
	for _, v := range c {
		assert.True(t, v == 1 || v == -1)
	}
}

func TestChips_GPSCADistinctPRNsDiffer(t *testing.T) {
	a, err := Chips(GPSL1CA, 1)
	require.NoError(t, err)
	b, err := Chips(GPSL1CA, 2)
	require.NoError(t, err)

	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	assert.Greater(t, diff, 0)
}

func TestChips_GPSCARejectsOutOfRangePRN(t *testing.T) {
	_, err := Chips(GPSL1CA, 99)
	assert.Error(t, err)
}

func TestChips_GPSCADeterministic(t *testing.T) {
	a, err := Chips(GPSL1CA, 5)
	require.NoError(t, err)
	b, err := Chips(GPSL1CA, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestChips_ModernSignalsHaveDocumentedLength(t *testing.T) {
	for _, sys := range []System{GPSL1C, GPSL5, GalileoE1, GLONASSL1} {
		want, err := CodeLength(sys)
		require.NoError(t, err)
		got, err := Chips(sys, 3)
		require.NoError(t, err)
		assert.Len(t, got, want)
	}
}

func TestOverlay_PresenceMatchesSpec(t *testing.T) {
	_, ok, err := Overlay(GPSL5, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = Overlay(GalileoE1, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = Overlay(GPSL1CA, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBOCUpsample_DoublesLengthAndAlternates(t *testing.T) {
	out, err := BOCUpsample([]float64{1, -1}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1, -1, 1}, out)
}

func TestBOCUpsample_RejectsNonIntegerRatio(t *testing.T) {
	_, err := BOCUpsample([]float64{1}, 1, 3)
	assert.Error(t, err)
}
