//go:build unix

package logstream

import (
	"os"

	"golang.org/x/sys/unix"
)

// writevSync performs a single scatter/gather syscall via unix.Writev so a
// multi-record batch reaches disk as one write instead of len(buffers)
// separate ones.
func writevSync(f *os.File, buffers [][]byte) (int, error) {
	if len(buffers) == 0 {
		return 0, nil
	}
	iovecs := make([][]byte, len(buffers))
	copy(iovecs, buffers)
	n, err := unix.Writev(int(f.Fd()), iovecs)
	return n, err
}
