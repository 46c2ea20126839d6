//go:build !unix

package logstream

import "os"

// writevSync falls back to sequential writes on platforms without a
// scatter/gather syscall wired through x/sys/unix.
func writevSync(f *os.File, buffers [][]byte) (int, error) {
	total := 0
	for _, b := range buffers {
		n, err := f.Write(b)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
