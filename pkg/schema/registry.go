package schema

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"sync"

	"github.com/idleman/staabler/pkg/prim"
)

// deriveID takes the first 8 bytes of the SHA-256 digest of canon,
// interpreted as a big-endian uint64. Schema IDs are stable across
// process restarts and across machines because they depend only on the
// canonical JSON encoding, never on pointer identity or map order.
func deriveID(canon []byte) uint64 {
	sum := sha256.Sum256(canon)
	return binary.BigEndian.Uint64(sum[:8])
}

// registry is the process-wide interning cache, keyed by canonical JSON
// so that every call site describing the same [name, fields] pair shares
// one *Schema. Logstream readers rely on this: a schema decoded off disk
// and a schema built in-process from field descriptors compare equal by
// pointer once both have passed through Intern.
type registry struct {
	mu      sync.RWMutex
	byCanon map[string]*Schema
	byID    map[uint64]*Schema
}

var defaultRegistry = &registry{
	byCanon: make(map[string]*Schema),
	byID:    make(map[uint64]*Schema),
}

// Intern returns the canonical *Schema for name/fields, constructing and
// caching it on first use. Concurrent callers describing the same schema
// always observe the same pointer.
func Intern(name string, fields []FieldDescriptor) (*Schema, error) {
	return defaultRegistry.intern(name, fields)
}

func (r *registry) intern(name string, fields []FieldDescriptor) (*Schema, error) {
	s, err := New(name, fields)
	if err != nil {
		return nil, err
	}

	key := string(s.canon)

	r.mu.RLock()
	if existing, ok := r.byCanon[key]; ok {
		r.mu.RUnlock()
		return existing, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byCanon[key]; ok {
		return existing, nil
	}
	r.byCanon[key] = s
	r.byID[s.id] = s
	return s, nil
}

// Lookup returns a previously interned schema by its ID, or ok=false if
// no schema with that ID has been interned in this process. Readers that
// encounter an unknown schema ID mid-stream should treat it as a decode
// error rather than synthesizing a placeholder schema.
func Lookup(id uint64) (*Schema, bool) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	s, ok := defaultRegistry.byID[id]
	return s, ok
}

// Register interns a schema that was itself decoded from canonical JSON
// (e.g. the header embedded in a log frame), so that its ID becomes
// resolvable via Lookup even though the caller never round-tripped it
// through field descriptors directly.
func Register(s *Schema) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	key := string(s.canon)
	if existing, ok := defaultRegistry.byCanon[key]; ok {
		_ = existing
		return
	}
	defaultRegistry.byCanon[key] = s
	defaultRegistry.byID[s.id] = s
}

// DecodeCanonical parses a canonical JSON [name, fields] pair (as found
// embedded in an on-disk frame header) back into field descriptors and
// interns the result, so a schema seen for the first time on replay gets
// the same treatment as one built programmatically.
func DecodeCanonical(canon []byte) (*Schema, error) {
	type jsonField struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Length int    `json:"length,omitempty"`
	}
	var pair struct {
		Name   string
		Fields []jsonField
	}
	var raw [2]json.RawMessage
	if err := json.Unmarshal(canon, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw[0], &pair.Name); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw[1], &pair.Fields); err != nil {
		return nil, err
	}

	fields := make([]FieldDescriptor, len(pair.Fields))
	for i, rf := range pair.Fields {
		k, err := prim.ParseKind(rf.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = FieldDescriptor{Name: rf.Name, Kind: k, Length: rf.Length}
	}
	return Intern(pair.Name, fields)
}
