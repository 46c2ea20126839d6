// Package record implements zero-copy views over schema-laid-out binary
// records: a fixed-width region addressed directly by field offset,
// followed by a variable-length tail for Utf8 and Bytes payloads.
package record

import (
	"fmt"

	"github.com/idleman/staabler/pkg/prim"
	"github.com/idleman/staabler/pkg/schema"
)

// Record is a mutable view over a byte buffer laid out according to a
// *schema.Schema. Field reads and fixed-field writes touch the buffer
// directly with no intermediate allocation; variable-field writes may
// grow or shrink the buffer and shift later payloads, the only case
// where a record mutation is not O(1).
type Record struct {
	schema *schema.Schema
	buffer []byte
}

// MinBytesPerElement returns the smallest buffer New will accept for s:
// the width of the fixed region with every variable field empty.
func MinBytesPerElement(s *schema.Schema) int {
	return s.FixedRegionLen()
}

// New wraps buffer as a record of shape s. If buffer is nil, a fresh
// buffer of exactly MinBytesPerElement(s) length is allocated and its
// variable-field offset slots are initialized to point at the (empty)
// tail. If buffer is non-nil it is used directly with no copy — the
// caller is asserting it already holds a validly laid-out record
// (typically bytes read back off a stream) — and must be at least
// MinBytesPerElement(s) bytes long.
func New(s *schema.Schema, buffer []byte) (*Record, error) {
	if buffer == nil {
		buffer = make([]byte, s.FixedRegionLen())
		r := &Record{schema: s, buffer: buffer}
		r.initVariableSlots()
		return r, nil
	}
	if len(buffer) < s.FixedRegionLen() {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrBufferTooSmall, s.FixedRegionLen(), len(buffer))
	}
	return &Record{schema: s, buffer: buffer}, nil
}

func (r *Record) initVariableSlots() {
	tail := uint32(r.schema.FixedRegionLen())
	for _, f := range r.schema.VariableFields() {
		prim.SetUint32(r.buffer, f.ByteOffset, tail)
	}
}

// Schema returns the record's shape.
func (r *Record) Schema() *schema.Schema { return r.schema }

// Buffer returns the record's full backing byte slice, fixed region plus
// variable tail. Callers that retain it across a subsequent variable-field
// write will observe a stale or truncated slice — reread Buffer() after
// any Set call on a Utf8 or Bytes field.
func (r *Record) Buffer() []byte { return r.buffer }

// field resolves name to its layout, verifying it matches the wanted Kind.
func (r *Record) field(name string, want prim.Kind) (schema.FieldLayout, error) {
	f, ok := r.schema.Field(name)
	if !ok {
		return schema.FieldLayout{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if f.Kind != want {
		return schema.FieldLayout{}, fmt.Errorf("%w: field %q is %s, not %s", ErrKindMismatch, name, f.Kind, want)
	}
	return f, nil
}

func (r *Record) elementOffset(f schema.FieldLayout, index int) (int, error) {
	if index < 0 || index >= f.ElementCount() {
		return 0, fmt.Errorf("%w: field %q index %d, length %d", ErrIndexOutOfRange, f.Name, index, f.ElementCount())
	}
	return f.ByteOffset + index*f.Kind.BytesPerElement(), nil
}

// ToMap decodes every field into a plain map, primarily for diagnostics
// (the HTTP /explain surface) rather than hot-path use.
func (r *Record) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(r.schema.Fields()))
	for _, f := range r.schema.Fields() {
		switch {
		case f.Kind == prim.Utf8:
			v, _ := r.GetUtf8(f.Name)
			out[f.Name] = v
		case f.Kind == prim.Bytes:
			v, _ := r.GetBytes(f.Name)
			out[f.Name] = v
		case f.IsArray():
			vals := make([]interface{}, f.ElementCount())
			for i := range vals {
				off, _ := r.elementOffset(f, i)
				vals[i] = prim.GetValue(f.Kind, r.buffer, off)
			}
			out[f.Name] = vals
		default:
			out[f.Name] = prim.GetValue(f.Kind, r.buffer, f.ByteOffset)
		}
	}
	return out
}
