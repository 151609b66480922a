//go:build unix

package ppio

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/kd9wcc/gnssiq/pp"
)

// ReadMmap parses a PP binary file at path via a read-only mmap, avoiding
// the buffered-copy overhead of ReadFile for large files. A mapping
// failure is returned directly; the caller can retry with ReadFile.
func ReadMmap(path string) (*pp.Poly, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ppio: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("ppio: %w", err)
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("ppio: empty file %s", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("ppio: mmap %s: %w", path, err)
	}
	defer unix.Munmap(data)

	return Read(bytes.NewReader(data))
}
