package iqwriter

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_Int16InterleavesIThenQ(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, Config{Format: Int16, Scale: 1})
	require.NoError(t, err)

	require.NoError(t, w.Write([]complex128{complex(100, -200)}))

	got := buf.Bytes()
	require.Len(t, got, 4)
	i := int16(binary.LittleEndian.Uint16(got[0:2]))
	q := int16(binary.LittleEndian.Uint16(got[2:4]))
	assert.Equal(t, int16(100), i)
	assert.Equal(t, int16(-200), q)
}

func TestWrite_Int16ClampsOverflow(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, Config{Format: Int16, Scale: 1})
	require.NoError(t, err)

	require.NoError(t, w.Write([]complex128{complex(1e9, -1e9)}))
	got := buf.Bytes()
	i := int16(binary.LittleEndian.Uint16(got[0:2]))
	q := int16(binary.LittleEndian.Uint16(got[2:4]))
	assert.Equal(t, int16(math.MaxInt16), i)
	assert.Equal(t, int16(math.MinInt16), q)
}

func TestWrite_Float32RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, Config{Format: Float32, Scale: 1})
	require.NoError(t, err)

	require.NoError(t, w.Write([]complex128{complex(1.5, -2.5)}))
	got := buf.Bytes()
	require.Len(t, got, 8)
	i := math.Float32frombits(binary.LittleEndian.Uint32(got[0:4]))
	q := math.Float32frombits(binary.LittleEndian.Uint32(got[4:8]))
	assert.Equal(t, float32(1.5), i)
	assert.Equal(t, float32(-2.5), q)
}

func TestWrite_CompressedStreamDecompresses(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, Config{Format: Int16, Scale: 1, Compress: true})
	require.NoError(t, err)

	require.NoError(t, w.Write([]complex128{complex(42, -42)}))
	require.NoError(t, w.Close())
	assert.Greater(t, buf.Len(), 0)

	zr, err := zstd.NewReader(&buf)
	require.NoError(t, err)
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Len(t, raw, 4)
	assert.Equal(t, int16(42), int16(binary.LittleEndian.Uint16(raw[0:2])))
	assert.Equal(t, int16(-42), int16(binary.LittleEndian.Uint16(raw[2:4])))
}

func TestScaleFactor_MatchesFormula(t *testing.T) {
	got := ScaleFactor(0)
	assert.InDelta(t, math.MaxInt16, got, 1e-9)
}
