package record

import "github.com/idleman/staabler/pkg/prim"

// Scalar field accessors. Each pair resolves the field by name, checks its
// Kind, and reads or writes directly through to the backing buffer — no
// allocation, no copy.

func (r *Record) GetInt8(name string) (int8, error) {
	f, err := r.field(name, prim.Int8)
	if err != nil {
		return 0, err
	}
	return prim.GetInt8(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetInt8(name string, v int8) error {
	f, err := r.field(name, prim.Int8)
	if err != nil {
		return err
	}
	prim.SetInt8(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetUint8(name string) (uint8, error) {
	f, err := r.field(name, prim.Uint8)
	if err != nil {
		return 0, err
	}
	return prim.GetUint8(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetUint8(name string, v uint8) error {
	f, err := r.field(name, prim.Uint8)
	if err != nil {
		return err
	}
	prim.SetUint8(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetBoolean(name string) (bool, error) {
	f, err := r.field(name, prim.Boolean)
	if err != nil {
		return false, err
	}
	return prim.GetBoolean(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetBoolean(name string, v bool) error {
	f, err := r.field(name, prim.Boolean)
	if err != nil {
		return err
	}
	prim.SetBoolean(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetInt16(name string) (int16, error) {
	f, err := r.field(name, prim.Int16)
	if err != nil {
		return 0, err
	}
	return prim.GetInt16(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetInt16(name string, v int16) error {
	f, err := r.field(name, prim.Int16)
	if err != nil {
		return err
	}
	prim.SetInt16(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetUint16(name string) (uint16, error) {
	f, err := r.field(name, prim.Uint16)
	if err != nil {
		return 0, err
	}
	return prim.GetUint16(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetUint16(name string, v uint16) error {
	f, err := r.field(name, prim.Uint16)
	if err != nil {
		return err
	}
	prim.SetUint16(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetInt32(name string) (int32, error) {
	f, err := r.field(name, prim.Int32)
	if err != nil {
		return 0, err
	}
	return prim.GetInt32(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetInt32(name string, v int32) error {
	f, err := r.field(name, prim.Int32)
	if err != nil {
		return err
	}
	prim.SetInt32(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetUint32(name string) (uint32, error) {
	f, err := r.field(name, prim.Uint32)
	if err != nil {
		return 0, err
	}
	return prim.GetUint32(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetUint32(name string, v uint32) error {
	f, err := r.field(name, prim.Uint32)
	if err != nil {
		return err
	}
	prim.SetUint32(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetBigInt64(name string) (int64, error) {
	f, err := r.field(name, prim.BigInt64)
	if err != nil {
		return 0, err
	}
	return prim.GetBigInt64(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetBigInt64(name string, v int64) error {
	f, err := r.field(name, prim.BigInt64)
	if err != nil {
		return err
	}
	prim.SetBigInt64(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetBigUint64(name string) (uint64, error) {
	f, err := r.field(name, prim.BigUint64)
	if err != nil {
		return 0, err
	}
	return prim.GetBigUint64(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetBigUint64(name string, v uint64) error {
	f, err := r.field(name, prim.BigUint64)
	if err != nil {
		return err
	}
	prim.SetBigUint64(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetFloat32(name string) (float32, error) {
	f, err := r.field(name, prim.Float32)
	if err != nil {
		return 0, err
	}
	return prim.GetFloat32(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetFloat32(name string, v float32) error {
	f, err := r.field(name, prim.Float32)
	if err != nil {
		return err
	}
	prim.SetFloat32(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetFloat64(name string) (float64, error) {
	f, err := r.field(name, prim.Float64)
	if err != nil {
		return 0, err
	}
	return prim.GetFloat64(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetFloat64(name string, v float64) error {
	f, err := r.field(name, prim.Float64)
	if err != nil {
		return err
	}
	prim.SetFloat64(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetFloat16(name string) (float32, error) {
	f, err := r.field(name, prim.Float16)
	if err != nil {
		return 0, err
	}
	return prim.GetFloat16(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetFloat16(name string, v float32) error {
	f, err := r.field(name, prim.Float16)
	if err != nil {
		return err
	}
	prim.SetFloat16(r.buffer, f.ByteOffset, v)
	return nil
}

func (r *Record) GetFloat8(name string) (float32, error) {
	f, err := r.field(name, prim.Float8)
	if err != nil {
		return 0, err
	}
	return prim.GetFloat8(r.buffer, f.ByteOffset), nil
}

func (r *Record) SetFloat8(name string, v float32) error {
	f, err := r.field(name, prim.Float8)
	if err != nil {
		return err
	}
	prim.SetFloat8(r.buffer, f.ByteOffset, v)
	return nil
}
