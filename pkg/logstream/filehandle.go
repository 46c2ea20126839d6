package logstream

import (
	"os"
	"sync"
)

var defaultPool = newFDPool(0)

// FileHandle is a NativeHandle backed by a pooled *os.File.
type FileHandle struct {
	path string
	pool *fdPool

	mu       sync.Mutex
	watchers map[int]func()
	nextID   int
}

// OpenFileHandle opens (creating if necessary) the file at path through
// the shared descriptor pool.
func OpenFileHandle(path string) (*FileHandle, error) {
	if _, err := defaultPool.Acquire(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644); err != nil {
		return nil, err
	}
	return &FileHandle{path: path, pool: defaultPool, watchers: make(map[int]func())}, nil
}

func (h *FileHandle) file() (*os.File, error) {
	return h.pool.Acquire(h.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
}

func (h *FileHandle) ReadSync(buf []byte, position int64) (int, error) {
	f, err := h.file()
	if err != nil {
		return 0, err
	}
	return f.ReadAt(buf, position)
}

func (h *FileHandle) Peek(length int, position int64) ([]byte, error) {
	f, err := h.file()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	n, err := f.ReadAt(buf, position)
	if err != nil && n == 0 {
		return buf[:0], nil
	}
	return buf[:n], nil
}

func (h *FileHandle) WriteSync(buf []byte) (int, error) {
	f, err := h.file()
	if err != nil {
		return 0, err
	}
	n, err := f.Write(buf)
	if err == nil {
		h.notifyWatchers()
	}
	return n, err
}

func (h *FileHandle) WritevSync(buffers [][]byte) (int, error) {
	f, err := h.file()
	if err != nil {
		return 0, err
	}
	n, err := writevSync(f, buffers)
	if err == nil {
		h.notifyWatchers()
	}
	return n, err
}

func (h *FileHandle) Stat() (int64, error) {
	f, err := h.file()
	if err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Truncate discards every byte at or after size.
func (h *FileHandle) Truncate(size int64) error {
	f, err := h.file()
	if err != nil {
		return err
	}
	return f.Truncate(size)
}

func (h *FileHandle) Watch(callback func()) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.watchers[id] = callback
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.watchers, id)
		h.mu.Unlock()
	}
}

func (h *FileHandle) notifyWatchers() {
	h.mu.Lock()
	callbacks := make([]func(), 0, len(h.watchers))
	for _, cb := range h.watchers {
		callbacks = append(callbacks, cb)
	}
	h.mu.Unlock()
	for _, cb := range callbacks {
		cb()
	}
}

func (h *FileHandle) Close() error {
	return h.pool.Release(h.path)
}
