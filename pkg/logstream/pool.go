package logstream

import (
	"container/list"
	"os"
	"runtime"
	"sync"
)

// fdPool is an LRU cache of open *os.File handles keyed by path, so
// repeated FileHandle construction over the same path doesn't re-open the
// file every time. Capacity defaults to max(1, 1024/NumCPU) file
// descriptors, mirroring a conservative per-core share of a typical
// process fd ulimit.
type fdPool struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // most-recently-used at Front
	entries  map[string]*list.Element
}

type fdPoolEntry struct {
	path string
	file *os.File
}

func defaultPoolCapacity() int {
	n := 1024 / runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return n
}

func newFDPool(capacity int) *fdPool {
	if capacity <= 0 {
		capacity = defaultPoolCapacity()
	}
	return &fdPool{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Acquire returns the pooled *os.File for path, opening it with flag/perm
// if not already cached, and evicting the least-recently-used entry if
// the pool is at capacity.
func (p *fdPool) Acquire(path string, flag int, perm os.FileMode) (*os.File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if el, ok := p.entries[path]; ok {
		p.order.MoveToFront(el)
		return el.Value.(*fdPoolEntry).file, nil
	}

	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	if p.order.Len() >= p.capacity {
		oldest := p.order.Back()
		if oldest != nil {
			entry := oldest.Value.(*fdPoolEntry)
			delete(p.entries, entry.path)
			p.order.Remove(oldest)
			entry.file.Close()
		}
	}

	el := p.order.PushFront(&fdPoolEntry{path: path, file: f})
	p.entries[path] = el
	return f, nil
}

// Release evicts path's entry immediately, closing its file. Used on
// explicit Close so a handle's fd isn't kept open past its owner's
// lifetime just because the pool hasn't needed to evict it yet.
func (p *fdPool) Release(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.entries[path]
	if !ok {
		return nil
	}
	entry := el.Value.(*fdPoolEntry)
	delete(p.entries, path)
	p.order.Remove(el)
	return entry.file.Close()
}
