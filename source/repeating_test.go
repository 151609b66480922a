package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func chips(vals ...float64) []complex128 {
	out := make([]complex128, len(vals))
	for i, v := range vals {
		out[i] = complex(v, 0)
	}
	return out
}

func TestRepeating_ConcreteScenario(t *testing.T) {
	r, err := NewRepeating(chips(1, -1, 1, -1), 1, 1, true)
	require.NoError(t, err)

	got := r.RequestSamples(3)
	assert.Equal(t, chips(1, -1, 1), got)

	r.Advance(2)

	got = r.RequestSamples(3)
	assert.Equal(t, chips(-1, 1, -1), got)
}

func TestRepeating_FullLengthAndWraparound(t *testing.T) {
	r, err := NewRepeating(chips(1, -1, 1, -1), 1, 1, true)
	require.NoError(t, err)

	full := r.RequestSamples(4)
	assert.Equal(t, chips(1, -1, 1, -1), full)

	r2, err := NewRepeating(chips(1, -1, 1, -1), 1, 1, true)
	require.NoError(t, err)
	plusOne := r2.RequestSamples(5)
	assert.Equal(t, chips(1, -1, 1, -1, 1), plusOne)
}

func TestRepeating_RejectsEmpty(t *testing.T) {
	_, err := NewRepeating(nil, 1, 1, false)
	assert.Error(t, err)
}

func TestRepeating_RejectsNonPositiveRate(t *testing.T) {
	_, err := NewRepeating(chips(1), 0, 1, false)
	assert.Error(t, err)
}

func TestRepeating_RejectsOutOfRangeStart(t *testing.T) {
	_, err := NewRepeating(chips(1, 2, 3), 1, 0, false)
	assert.Error(t, err)

	_, err = NewRepeating(chips(1, 2, 3), 1, 4, false)
	assert.Error(t, err)
}

// request(n) followed by request(m) yields the concatenation of
// request(n+m), for any starting offset.
func TestRepeating_ConcatenationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := rapid.IntRange(1, 40).Draw(t, "l")
		vals := make([]float64, l)
		for i := range vals {
			vals[i] = rapid.Float64Range(-1, 1).Draw(t, "v")
		}
		start := rapid.IntRange(1, l).Draw(t, "start")
		n := rapid.IntRange(0, 30).Draw(t, "n")
		m := rapid.IntRange(0, 30).Draw(t, "m")

		r1, err := NewRepeating(chips(vals...), 1, start, false)
		require.NoError(t, err)
		part1 := r1.RequestSamples(n)
		part2 := r1.RequestSamples(m)

		r2, err := NewRepeating(chips(vals...), 1, start, false)
		require.NoError(t, err)
		whole := r2.RequestSamples(n + m)

		assert.Equal(t, append(append([]complex128{}, part1...), part2...), whole)
	})
}
