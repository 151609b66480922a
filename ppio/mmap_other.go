//go:build !unix

package ppio

import "github.com/kd9wcc/gnssiq/pp"

// ReadMmap falls back to an ordinary buffered read on platforms without
// a POSIX mmap (golang.org/x/sys/unix is unix-only).
func ReadMmap(path string) (*pp.Poly, error) {
	return ReadFile(path)
}
