package logstream

import (
	"fmt"
	"sync"

	"github.com/idleman/staabler/pkg/bptree"
	"github.com/idleman/staabler/pkg/record"
	"github.com/idleman/staabler/pkg/schema"
)

// Projection is a caller-supplied pair that rebuilds derived state from a
// Stream: Match decides, per frame, whether it's worth decoding at all;
// Handle is invoked for every frame Match accepted, once during replay on
// Open (in file order) and again, synchronously, for every frame a live
// write lands. Handle must be cheap and must never call back into the
// Stream that invoked it — re-entrant writes from inside a projection
// callback are unsupported.
type Projection interface {
	Match(sch *schema.Schema, startPos, endPos int64) bool
	Handle(r *record.Record, startPos, endPos int64) error
}

// span is the (startPos, endPos) byte range a record occupies on disk.
type span struct {
	Start int64
	End   int64
}

// KeyedIndexProjection maintains a sorted index from one record field's
// value to the byte span of the frame that most recently set it,
// rebuilt on replay and kept in sync by live writes. It is a concrete,
// reusable Projection for the common case of "find the latest record for
// key K" (spec's Reset/Transfer replay scenario), backed by the same
// B+Tree the rest of the module already carries.
type KeyedIndexProjection struct {
	sch       *schema.Schema
	fieldName string

	mu   sync.RWMutex
	tree *bptree.BPlusTree[string, span]
}

// NewKeyedIndexProjection returns a projection that indexes sch's
// fieldName (any scalar or variable-width field — its decoded value is
// stringified as the index key) to each frame's span.
func NewKeyedIndexProjection(sch *schema.Schema, fieldName string) *KeyedIndexProjection {
	return &KeyedIndexProjection{
		sch:       sch,
		fieldName: fieldName,
		tree:      bptree.NewBPlusTree[string, span](32),
	}
}

// Match accepts only frames of the indexed schema.
func (p *KeyedIndexProjection) Match(sch *schema.Schema, startPos, endPos int64) bool {
	return sch.Equal(p.sch)
}

// Handle records (or overwrites) the span for this frame's key field.
func (p *KeyedIndexProjection) Handle(r *record.Record, startPos, endPos int64) error {
	key, err := indexKey(r, p.fieldName)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.tree.Insert(key, span{Start: startPos, End: endPos})
	p.mu.Unlock()
	return nil
}

// Lookup returns the span of the most recent frame that set key, or
// ok=false if key was never observed.
func (p *KeyedIndexProjection) Lookup(key string) (startPos, endPos int64, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, found := p.tree.Search(key)
	if !found {
		return 0, 0, false
	}
	return s.Start, s.End, true
}

// indexKey stringifies the named field's current value for use as a
// B+Tree key, reusing Record.ToMap rather than re-dispatching on Kind.
func indexKey(r *record.Record, fieldName string) (string, error) {
	if _, ok := r.Schema().Field(fieldName); !ok {
		return "", fmt.Errorf("%w: %q", record.ErrUnknownField, fieldName)
	}
	v := r.ToMap()[fieldName]
	if b, ok := v.([]byte); ok {
		return string(b), nil
	}
	return fmt.Sprint(v), nil
}
