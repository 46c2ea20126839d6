package record

import "github.com/idleman/staabler/pkg/prim"

// Fixed-array field accessors: Length() reports the element count and
// each GetXAt/SetXAt pair indexes a single element in place. There is no
// bulk array view — at this kind set's scale, per-element access compiles
// down to the same bounds-checked slice index the caller would write by
// hand against a typed slice.

// Length returns the element count of an array field, or an error if name
// does not name a field of the given kind.
func (r *Record) Length(name string, kind prim.Kind) (int, error) {
	f, err := r.field(name, kind)
	if err != nil {
		return 0, err
	}
	return f.ElementCount(), nil
}

func (r *Record) GetInt8At(name string, i int) (int8, error) {
	f, err := r.field(name, prim.Int8)
	if err != nil {
		return 0, err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return 0, err
	}
	return prim.GetInt8(r.buffer, off), nil
}

func (r *Record) SetInt8At(name string, i int, v int8) error {
	f, err := r.field(name, prim.Int8)
	if err != nil {
		return err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return err
	}
	prim.SetInt8(r.buffer, off, v)
	return nil
}

func (r *Record) GetUint8At(name string, i int) (uint8, error) {
	f, err := r.field(name, prim.Uint8)
	if err != nil {
		return 0, err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return 0, err
	}
	return prim.GetUint8(r.buffer, off), nil
}

func (r *Record) SetUint8At(name string, i int, v uint8) error {
	f, err := r.field(name, prim.Uint8)
	if err != nil {
		return err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return err
	}
	prim.SetUint8(r.buffer, off, v)
	return nil
}

func (r *Record) GetInt16At(name string, i int) (int16, error) {
	f, err := r.field(name, prim.Int16)
	if err != nil {
		return 0, err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return 0, err
	}
	return prim.GetInt16(r.buffer, off), nil
}

func (r *Record) SetInt16At(name string, i int, v int16) error {
	f, err := r.field(name, prim.Int16)
	if err != nil {
		return err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return err
	}
	prim.SetInt16(r.buffer, off, v)
	return nil
}

func (r *Record) GetUint16At(name string, i int) (uint16, error) {
	f, err := r.field(name, prim.Uint16)
	if err != nil {
		return 0, err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return 0, err
	}
	return prim.GetUint16(r.buffer, off), nil
}

func (r *Record) SetUint16At(name string, i int, v uint16) error {
	f, err := r.field(name, prim.Uint16)
	if err != nil {
		return err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return err
	}
	prim.SetUint16(r.buffer, off, v)
	return nil
}

func (r *Record) GetInt32At(name string, i int) (int32, error) {
	f, err := r.field(name, prim.Int32)
	if err != nil {
		return 0, err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return 0, err
	}
	return prim.GetInt32(r.buffer, off), nil
}

func (r *Record) SetInt32At(name string, i int, v int32) error {
	f, err := r.field(name, prim.Int32)
	if err != nil {
		return err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return err
	}
	prim.SetInt32(r.buffer, off, v)
	return nil
}

func (r *Record) GetUint32At(name string, i int) (uint32, error) {
	f, err := r.field(name, prim.Uint32)
	if err != nil {
		return 0, err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return 0, err
	}
	return prim.GetUint32(r.buffer, off), nil
}

func (r *Record) SetUint32At(name string, i int, v uint32) error {
	f, err := r.field(name, prim.Uint32)
	if err != nil {
		return err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return err
	}
	prim.SetUint32(r.buffer, off, v)
	return nil
}

func (r *Record) GetFloat32At(name string, i int) (float32, error) {
	f, err := r.field(name, prim.Float32)
	if err != nil {
		return 0, err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return 0, err
	}
	return prim.GetFloat32(r.buffer, off), nil
}

func (r *Record) SetFloat32At(name string, i int, v float32) error {
	f, err := r.field(name, prim.Float32)
	if err != nil {
		return err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return err
	}
	prim.SetFloat32(r.buffer, off, v)
	return nil
}

func (r *Record) GetFloat64At(name string, i int) (float64, error) {
	f, err := r.field(name, prim.Float64)
	if err != nil {
		return 0, err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return 0, err
	}
	return prim.GetFloat64(r.buffer, off), nil
}

func (r *Record) SetFloat64At(name string, i int, v float64) error {
	f, err := r.field(name, prim.Float64)
	if err != nil {
		return err
	}
	off, err := r.elementOffset(f, i)
	if err != nil {
		return err
	}
	prim.SetFloat64(r.buffer, off, v)
	return nil
}
