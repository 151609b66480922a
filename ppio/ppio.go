// Package ppio reads and writes the binary piecewise-polynomial file
// format: a magic word, a breakpoint vector, a per-piece byte-offset
// lookup table, and variable-length per-piece coefficient rows.
package ppio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/kd9wcc/gnssiq/pp"
)

// Magic is the file format's magic word, little-endian at bytes 0-3.
const Magic uint32 = 0x70537750

// ErrBadMagic is returned when a file's leading magic word doesn't match.
var ErrBadMagic = fmt.Errorf("ppio: invalid magic word, expected 0x%08x", Magic)

// Read parses a PP binary file from r into a *pp.Poly.
//
// Bytes 4-15 are reserved by the format (version/flags) and are read but
// otherwise ignored, matching the "round-trip-safe reader need not parse
// [the per-piece lookup table]" policy from spec.md's Open Question 1:
// this reader skips straight past the lookup table to the piece data,
// parsing pieces sequentially instead of via the table's byte offsets.
func Read(r io.Reader) (*pp.Poly, error) {
	br := bufio.NewReader(r)

	var header [20]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("ppio: reading header: %w", err)
	}

	magic := binary.LittleEndian.Uint32(header[0:4])
	if magic != Magic {
		return nil, ErrBadMagic
	}
	n := int32(binary.LittleEndian.Uint32(header[16:20]))
	if n < 2 {
		return nil, fmt.Errorf("ppio: N must be >= 2, got %d", n)
	}

	breaks := make([]float64, n)
	if err := readFloat64s(br, breaks); err != nil {
		return nil, fmt.Errorf("ppio: reading breakpoints: %w", err)
	}

	// Per-piece byte-offset lookup table: N-1 int32 entries. Skip it; a
	// sequential reader doesn't need random access into the piece data.
	lut := make([]byte, 4*(n-1))
	if _, err := io.ReadFull(br, lut); err != nil {
		return nil, fmt.Errorf("ppio: reading lookup table: %w", err)
	}

	coefs := make([][]float64, n-1)
	for i := 0; i < int(n-1); i++ {
		var cBuf [4]byte
		if _, err := io.ReadFull(br, cBuf[:]); err != nil {
			return nil, fmt.Errorf("ppio: reading piece %d coefficient count: %w", i, err)
		}
		c := int32(binary.LittleEndian.Uint32(cBuf[:]))
		if c < 0 {
			return nil, fmt.Errorf("ppio: piece %d has negative coefficient count %d", i, c)
		}
		row := make([]float64, c)
		if err := readFloat64s(br, row); err != nil {
			return nil, fmt.Errorf("ppio: reading piece %d coefficients: %w", i, err)
		}
		coefs[i] = row
	}

	return pp.New(breaks, coefs)
}

// ReadFile opens and parses a PP binary file at path.
func ReadFile(path string) (*pp.Poly, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ppio: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func readFloat64s(r io.Reader, out []float64) error {
	buf := make([]byte, 8*len(out))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	for i := range out {
		bits := binary.LittleEndian.Uint64(buf[8*i : 8*i+8])
		out[i] = math.Float64frombits(bits)
	}
	return nil
}

// Write serializes p to w in the PP binary format. The per-piece
// lookup table is emitted as a zero-length-consistent placeholder (all
// zero offsets): Open Question 1 notes a writer need only "emit
// something consistent," and since this reader ignores the table
// entirely, zeros round-trip safely without computing real offsets.
func Write(w io.Writer, p *pp.Poly) error {
	bw := bufio.NewWriter(w)

	var header [20]byte
	binary.LittleEndian.PutUint32(header[0:4], Magic)
	binary.LittleEndian.PutUint32(header[16:20], uint32(len(p.Breaks())))
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("ppio: writing header: %w", err)
	}

	if err := writeFloat64s(bw, p.Breaks()); err != nil {
		return fmt.Errorf("ppio: writing breakpoints: %w", err)
	}

	nPieces := len(p.Breaks()) - 1
	lut := make([]byte, 4*nPieces)
	if _, err := bw.Write(lut); err != nil {
		return fmt.Errorf("ppio: writing lookup table: %w", err)
	}

	for i, row := range p.Coefs() {
		var cBuf [4]byte
		binary.LittleEndian.PutUint32(cBuf[:], uint32(len(row)))
		if _, err := bw.Write(cBuf[:]); err != nil {
			return fmt.Errorf("ppio: writing piece %d coefficient count: %w", i, err)
		}
		if err := writeFloat64s(bw, row); err != nil {
			return fmt.Errorf("ppio: writing piece %d coefficients: %w", i, err)
		}
	}

	return bw.Flush()
}

// WriteFile creates (or truncates) path and writes p to it.
func WriteFile(path string, p *pp.Poly) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ppio: %w", err)
	}
	defer f.Close()
	return Write(f, p)
}

func writeFloat64s(w io.Writer, vals []float64) error {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[8*i:8*i+8], math.Float64bits(v))
	}
	_, err := w.Write(buf)
	return err
}
