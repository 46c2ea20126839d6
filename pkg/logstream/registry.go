package logstream

import (
	"sync"

	"github.com/idleman/staabler/pkg/schema"
)

// streamRegistry tracks, per open stream, which schema IDs have already
// had their canonical-JSON blob written to the file. It is distinct from
// schema.Intern's process-wide registry: a schema can be interned
// process-wide yet still need its blob written the first time this
// particular file sees it.
type streamRegistry struct {
	mu      sync.RWMutex
	known   map[uint64]*schema.Schema
	written map[uint64]bool
}

func newStreamRegistry() *streamRegistry {
	return &streamRegistry{
		known:   make(map[uint64]*schema.Schema),
		written: make(map[uint64]bool),
	}
}

func (r *streamRegistry) lookup(id uint64) (*schema.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.known[id]
	return s, ok
}

// learn records a schema seen via an inline blob (during replay, or
// because a writer included one), without marking it as written by us.
func (r *streamRegistry) learn(s *schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known[s.ID()] = s
	r.written[s.ID()] = true
}

// needsBlob reports whether a frame for s must carry its schema blob
// because this stream has not yet recorded it as written.
func (r *streamRegistry) needsBlob(s *schema.Schema) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.written[s.ID()]
}

// markWritten records that s's blob has now been placed in the file and
// registers it for lookups by future frames that omit the blob.
func (r *streamRegistry) markWritten(s *schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known[s.ID()] = s
	r.written[s.ID()] = true
}
