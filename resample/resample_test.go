package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNearestLower_ConcreteScenario(t *testing.T) {
	x := []float64{0, 3, 7, 16, 24}
	y := []float64{50, 51, 52, 53, 54}
	xi := []float64{0, 5, 10, 15, 20, 25}

	got, err := NearestLower(x, y, xi)
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 51, 52, 52, 53, 54}, got)
}

func TestNearestLower_BelowRangeIsZero(t *testing.T) {
	x := []float64{10, 20, 30}
	y := []float64{1, 2, 3}

	got, err := NearestLower(x, y, []float64{-5, 9.999})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got)
}

func TestNearestLower_AtOrAboveLastIsLastValue(t *testing.T) {
	x := []float64{10, 20, 30}
	y := []float64{1, 2, 3}

	got, err := NearestLower(x, y, []float64{30, 1000})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3}, got)
}

func TestNearestLower_RejectsDecreasingOutputAxis(t *testing.T) {
	_, err := NearestLower([]float64{0, 1, 2}, []float64{1, 2, 3}, []float64{1, 0})
	assert.ErrorIs(t, err, ErrNotIncreasing)
}

func TestNearestLowerComplex_MatchesRealCase(t *testing.T) {
	x := []float64{0, 3, 7, 16, 24}
	y := []complex128{50, 51, 52, 53, 54}
	xi := []float64{0, 5, 10, 15, 20, 25}

	got, err := NearestLowerComplex(x, y, xi)
	require.NoError(t, err)

	want := []complex128{50, 51, 52, 52, 53, 54}
	assert.Equal(t, want, got)
}

func TestCubic_ReproducesLineExactly(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 2, 3, 4}

	got, err := Cubic(x, y, []float64{0.5, 1.5, 2.5, 3.5})
	require.NoError(t, err)
	for i, v := range got {
		assert.InDelta(t, []float64{0.5, 1.5, 2.5, 3.5}[i], v, 1e-9)
	}
}

func TestCubic_ClampsExtrapolation(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 4}

	got, err := Cubic(x, y, []float64{-10, 0, 2, 10})
	require.NoError(t, err)
	assert.InDelta(t, got[1], got[0], 1e-9) // clamped below
	assert.InDelta(t, got[2], got[3], 1e-9) // clamped above
}

// NearestLower's forward scan is monotone: increasing xi never revisits an
// earlier x index, so the result at any position never uses a stale (too
// old) source sample relative to a brute-force scan.
func TestNearestLower_MatchesBruteForce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		x := make([]float64, n)
		y := make([]float64, n)
		x[0] = rapid.Float64Range(-50, 50).Draw(t, "x0")
		y[0] = rapid.Float64Range(-1000, 1000).Draw(t, "y0")
		for i := 1; i < n; i++ {
			x[i] = x[i-1] + rapid.Float64Range(0.01, 5).Draw(t, "gap")
			y[i] = rapid.Float64Range(-1000, 1000).Draw(t, "y")
		}

		m := rapid.IntRange(0, 20).Draw(t, "m")
		xi := make([]float64, m)
		if m > 0 {
			xi[0] = rapid.Float64Range(x[0]-20, x[n-1]+20).Draw(t, "xi0")
			for i := 1; i < m; i++ {
				xi[i] = xi[i-1] + rapid.Float64Range(0, 5).Draw(t, "xigap")
			}
		}

		got, err := NearestLower(x, y, xi)
		require.NoError(t, err)

		for k, xik := range xi {
			want := 0.0
			for i := range x {
				if x[i] <= xik {
					want = y[i]
				}
			}
			assert.Equal(t, want, got[k])
		}
	})
}
