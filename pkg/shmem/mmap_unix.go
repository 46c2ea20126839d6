//go:build unix

package shmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mmapRegion is a Region backed by an anonymous or file-backed mmap
// mapping, for the true cross-process or cross-OS-thread case the heap
// implementation can't serve.
type mmapRegion struct {
	heapRegion // embeds the same atomic word operations over r.buf
	fd         int
}

// NewAnonymousMmap creates a page-aligned anonymous shared mapping of at
// least size bytes, usable by multiple OS threads within this process
// with the same visibility guarantees a file-backed mapping gives across
// processes.
func NewAnonymousMmap(size int) (Region, error) {
	buf, err := unix.Mmap(-1, 0, pageAlign(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("shmem: mmap anonymous: %w", err)
	}
	return &mmapRegion{heapRegion: heapRegion{buf: buf[:size]}, fd: -1}, nil
}

// OpenFileMmap maps fd's first size bytes, shared, for use across
// separate processes that open the same file.
func OpenFileMmap(fd int, size int) (Region, error) {
	buf, err := unix.Mmap(fd, 0, pageAlign(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shmem: mmap file: %w", err)
	}
	return &mmapRegion{heapRegion: heapRegion{buf: buf[:size]}, fd: fd}, nil
}

func (r *mmapRegion) Close() error {
	return unix.Munmap(r.heapRegion.buf[:cap(r.heapRegion.buf)])
}

func pageAlign(size int) int {
	const pageSize = 4096
	if rem := size % pageSize; rem != 0 {
		return size + (pageSize - rem)
	}
	return size
}
