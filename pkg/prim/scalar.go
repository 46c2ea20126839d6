package prim

import (
	"encoding/binary"
	"math"
)

// Fixed-width scalar accessors. All multi-byte integers and floats use
// little-endian byte order, per spec. Each function trusts the caller to
// have supplied a buffer slice at least BytesPerElement(kind) long starting
// at byteOffset — callers (record field accessors) are responsible for the
// bounds check, so the hot path here never allocates.

func GetInt8(buf []byte, byteOffset int) int8 { return int8(buf[byteOffset]) }
func SetInt8(buf []byte, byteOffset int, v int8) { buf[byteOffset] = byte(v) }

func GetUint8(buf []byte, byteOffset int) uint8 { return buf[byteOffset] }
func SetUint8(buf []byte, byteOffset int, v uint8) { buf[byteOffset] = v }

func GetBoolean(buf []byte, byteOffset int) bool { return buf[byteOffset] != 0 }
func SetBoolean(buf []byte, byteOffset int, v bool) {
	if v {
		buf[byteOffset] = 1
	} else {
		buf[byteOffset] = 0
	}
}

func GetInt16(buf []byte, byteOffset int) int16 {
	return int16(binary.LittleEndian.Uint16(buf[byteOffset:]))
}
func SetInt16(buf []byte, byteOffset int, v int16) {
	binary.LittleEndian.PutUint16(buf[byteOffset:], uint16(v))
}

func GetUint16(buf []byte, byteOffset int) uint16 {
	return binary.LittleEndian.Uint16(buf[byteOffset:])
}
func SetUint16(buf []byte, byteOffset int, v uint16) {
	binary.LittleEndian.PutUint16(buf[byteOffset:], v)
}

func GetInt32(buf []byte, byteOffset int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[byteOffset:]))
}
func SetInt32(buf []byte, byteOffset int, v int32) {
	binary.LittleEndian.PutUint32(buf[byteOffset:], uint32(v))
}

func GetUint32(buf []byte, byteOffset int) uint32 {
	return binary.LittleEndian.Uint32(buf[byteOffset:])
}
func SetUint32(buf []byte, byteOffset int, v uint32) {
	binary.LittleEndian.PutUint32(buf[byteOffset:], v)
}

func GetBigInt64(buf []byte, byteOffset int) int64 {
	return int64(binary.LittleEndian.Uint64(buf[byteOffset:]))
}
func SetBigInt64(buf []byte, byteOffset int, v int64) {
	binary.LittleEndian.PutUint64(buf[byteOffset:], uint64(v))
}

func GetBigUint64(buf []byte, byteOffset int) uint64 {
	return binary.LittleEndian.Uint64(buf[byteOffset:])
}
func SetBigUint64(buf []byte, byteOffset int, v uint64) {
	binary.LittleEndian.PutUint64(buf[byteOffset:], v)
}

func GetFloat32(buf []byte, byteOffset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[byteOffset:]))
}
func SetFloat32(buf []byte, byteOffset int, v float32) {
	binary.LittleEndian.PutUint32(buf[byteOffset:], math.Float32bits(v))
}

func GetFloat64(buf []byte, byteOffset int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[byteOffset:]))
}
func SetFloat64(buf []byte, byteOffset int, v float64) {
	binary.LittleEndian.PutUint64(buf[byteOffset:], math.Float64bits(v))
}

func GetFloat16(buf []byte, byteOffset int) float32 {
	return float16BitsToFloat32(binary.LittleEndian.Uint16(buf[byteOffset:]))
}
func SetFloat16(buf []byte, byteOffset int, v float32) {
	binary.LittleEndian.PutUint16(buf[byteOffset:], float32ToFloat16Bits(v))
}

func GetFloat8(buf []byte, byteOffset int) float32 {
	return float8BitsToFloat32(buf[byteOffset])
}
func SetFloat8(buf []byte, byteOffset int, v float32) {
	buf[byteOffset] = float32ToFloat8Bits(v)
}

// GetValue dispatches by Kind, for call sites that don't know the
// field's Go type statically (schema-driven tooling, generic collections).
// Hot-path record accessors use the typed functions above instead.
func GetValue(k Kind, buf []byte, byteOffset int) interface{} {
	switch k {
	case Int8:
		return GetInt8(buf, byteOffset)
	case Int16:
		return GetInt16(buf, byteOffset)
	case Int32:
		return GetInt32(buf, byteOffset)
	case Uint8:
		return GetUint8(buf, byteOffset)
	case Uint16:
		return GetUint16(buf, byteOffset)
	case Uint32:
		return GetUint32(buf, byteOffset)
	case BigInt64:
		return GetBigInt64(buf, byteOffset)
	case BigUint64:
		return GetBigUint64(buf, byteOffset)
	case Float8:
		return GetFloat8(buf, byteOffset)
	case Float16:
		return GetFloat16(buf, byteOffset)
	case Float32:
		return GetFloat32(buf, byteOffset)
	case Float64:
		return GetFloat64(buf, byteOffset)
	case Boolean:
		return GetBoolean(buf, byteOffset)
	default:
		panic("prim: GetValue called on variable-width kind")
	}
}
