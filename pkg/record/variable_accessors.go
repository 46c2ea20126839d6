package record

import (
	"github.com/idleman/staabler/pkg/prim"
	"github.com/idleman/staabler/pkg/schema"
)

// Variable-width field accessors. Each field's fixed-region slot holds a
// single offset pointing into the tail; a payload's length is never
// stored, only derived — it runs from that offset to the next variable
// field's offset (in tail order), or to the buffer's end for the last
// variable field. Set grows or shrinks the buffer in place and cascades
// the offset shift to every other variable field whose payload sits
// after the one being resized.

// variableEnd returns the byte offset just past f's payload: the next
// variable field's stored offset, or len(buffer) if f is the last one.
func (r *Record) variableEnd(f schema.FieldLayout) int {
	vars := r.schema.VariableFields()
	if f.VarIndex+1 < len(vars) {
		return int(prim.GetUint32(r.buffer, vars[f.VarIndex+1].ByteOffset))
	}
	return len(r.buffer)
}

func (r *Record) variableSlot(name string, kind prim.Kind) (off, length int, err error) {
	f, err := r.field(name, kind)
	if err != nil {
		return 0, 0, err
	}
	off = int(prim.GetUint32(r.buffer, f.ByteOffset))
	return off, r.variableEnd(f) - off, nil
}

// GetUtf8 decodes a Utf8 field. The returned string is a fresh copy, not
// an alias into the buffer.
func (r *Record) GetUtf8(name string) (string, error) {
	off, length, err := r.variableSlot(name, prim.Utf8)
	if err != nil {
		return "", err
	}
	return prim.DecodeUtf8(r.buffer[off : off+length]), nil
}

// SetUtf8 replaces a Utf8 field's payload with s, resizing the buffer if
// the new encoding is a different length than the old one.
func (r *Record) SetUtf8(name string, s string) error {
	return r.setVariable(name, prim.Utf8, []byte(s))
}

// GetBytes returns a zero-copy view of a Bytes field's payload. The slice
// aliases the record's buffer and is invalidated by any subsequent Set
// call on a variable field.
func (r *Record) GetBytes(name string) ([]byte, error) {
	off, length, err := r.variableSlot(name, prim.Bytes)
	if err != nil {
		return nil, err
	}
	return prim.DecodeBytes(r.buffer[off : off+length]), nil
}

// SetBytes replaces a Bytes field's payload with b, resizing the buffer
// if necessary. b is copied into the buffer; the caller retains ownership
// of b itself.
func (r *Record) SetBytes(name string, b []byte) error {
	return r.setVariable(name, prim.Bytes, b)
}

func (r *Record) setVariable(name string, kind prim.Kind, payload []byte) error {
	f, err := r.field(name, kind)
	if err != nil {
		return err
	}

	oldOff := int(prim.GetUint32(r.buffer, f.ByteOffset))
	tailStart := r.variableEnd(f)
	newLen := len(payload)
	delta := newLen - (tailStart - oldOff)

	if delta > 0 {
		r.buffer = append(r.buffer, make([]byte, delta)...)
		copy(r.buffer[tailStart+delta:], r.buffer[tailStart:len(r.buffer)-delta])
	} else if delta < 0 {
		copy(r.buffer[tailStart+delta:], r.buffer[tailStart:])
		r.buffer = r.buffer[:len(r.buffer)+delta]
	}

	copy(r.buffer[oldOff:oldOff+newLen], payload)

	if delta != 0 {
		r.shiftVariableOffsetsAfter(f.VarIndex, oldOff, delta)
	}
	return nil
}

// shiftVariableOffsetsAfter adds delta to the stored offset of every
// variable field after skipVarIndex in tail order whose payload began at
// or after threshold, keeping every offset slot consistent after a resize.
func (r *Record) shiftVariableOffsetsAfter(skipVarIndex, threshold, delta int) {
	for _, other := range r.schema.Fields() {
		if other.VarIndex <= skipVarIndex {
			continue
		}
		off := int(prim.GetUint32(r.buffer, other.ByteOffset))
		if off >= threshold {
			prim.SetUint32(r.buffer, other.ByteOffset, uint32(off+delta))
		}
	}
}
