// Package iqwriter is the output adapter spec.md §6 describes: scale a
// complex baseband stream by a caller-chosen factor, convert to 16-bit
// signed integers or 32-bit floats, interleave I then Q, and append to a
// raw binary file — optionally zstd-compressed.
package iqwriter

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Format selects the output sample encoding.
type Format int

const (
	// Int16 scales and rounds to 16-bit signed integers.
	Int16 Format = iota
	// Float32 writes IEEE-754 single precision, unscaled by default.
	Float32
)

// Config configures a Writer.
type Config struct {
	Format Format
	// Scale multiplies each I/Q component before conversion. Zero
	// defaults to 1.0 (no scaling). For Int16 output, callers typically
	// pass something like (2^15-1)/10^(P_fs/20) per spec.md §6.
	Scale float64
	// Compress wraps the output stream in a zstd encoder when true.
	Compress bool
}

// Writer streams interleaved I/Q samples to an underlying io.Writer.
type Writer struct {
	cfg   Config
	out   io.Writer
	zw    *zstd.Encoder
	buf   []byte
}

// New constructs a Writer over w per cfg.
func New(w io.Writer, cfg Config) (*Writer, error) {
	if cfg.Scale == 0 {
		cfg.Scale = 1.0
	}

	wr := &Writer{cfg: cfg, out: w}
	if cfg.Compress {
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("iqwriter: creating zstd encoder: %w", err)
		}
		wr.zw = zw
		wr.out = zw
	}
	return wr, nil
}

// Write appends samples to the output stream, scaling and converting
// each I/Q component per the configured Format.
func (w *Writer) Write(samples []complex128) error {
	switch w.cfg.Format {
	case Int16:
		return w.writeInt16(samples)
	case Float32:
		return w.writeFloat32(samples)
	default:
		return fmt.Errorf("iqwriter: unknown format %d", w.cfg.Format)
	}
}

func (w *Writer) writeInt16(samples []complex128) error {
	buf := ensureCap(w.buf, len(samples)*4)
	for i, s := range samples {
		iv := clampInt16(real(s) * w.cfg.Scale)
		qv := clampInt16(imag(s) * w.cfg.Scale)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(iv))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(qv))
	}
	w.buf = buf
	_, err := w.out.Write(buf)
	return err
}

func (w *Writer) writeFloat32(samples []complex128) error {
	buf := ensureCap(w.buf, len(samples)*8)
	for i, s := range samples {
		iv := math.Float32bits(float32(real(s) * w.cfg.Scale))
		qv := math.Float32bits(float32(imag(s) * w.cfg.Scale))
		binary.LittleEndian.PutUint32(buf[i*8:], iv)
		binary.LittleEndian.PutUint32(buf[i*8+4:], qv)
	}
	w.buf = buf
	_, err := w.out.Write(buf)
	return err
}

// Close flushes and closes the zstd encoder, if compression is enabled.
// It is a no-op otherwise.
func (w *Writer) Close() error {
	if w.zw != nil {
		return w.zw.Close()
	}
	return nil
}

func clampInt16(v float64) int16 {
	if v >= math.MaxInt16 {
		return math.MaxInt16
	}
	if v <= math.MinInt16 {
		return math.MinInt16
	}
	return int16(math.Round(v))
}

// ScaleFactor computes the Int16 full-scale factor spec.md §6 gives as
// an example: (2^15-1)/10^(pFsDB/20), where pFsDB is the desired
// full-scale headroom in dB below the true peak.
func ScaleFactor(pFsDB float64) float64 {
	return (math.MaxInt16) / math.Pow(10, pFsDB/20)
}

func ensureCap(buf []byte, n int) []byte {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]byte, n)
}
