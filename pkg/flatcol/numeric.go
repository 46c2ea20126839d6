package flatcol

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// numericCodec is a Codec[T] for any fixed-width integer type, encoded
// little-endian at the width its Go type implies. It exists so callers
// packing a column of offsets, counters, or spans don't have to hand-write
// a Codec the way the package's own tests do for uint32.
type numericCodec[T constraints.Integer] struct {
	width int
}

// NewNumericCodec builds a Codec[T] for integer type T, encoding at width
// bytes little-endian. width must be 1, 2, 4, or 8 and at least as wide as
// T's Go size, or Encode/Decode will truncate or panic.
func NewNumericCodec[T constraints.Integer](width int) Codec[T] {
	return numericCodec[T]{width: width}
}

func (c numericCodec[T]) Width() int { return c.width }

func (c numericCodec[T]) Encode(dst []byte, v T) {
	switch c.width {
	case 1:
		dst[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(dst, uint64(v))
	default:
		panic("flatcol: unsupported numeric codec width")
	}
}

func (c numericCodec[T]) Decode(src []byte) T {
	switch c.width {
	case 1:
		return T(src[0])
	case 2:
		return T(binary.LittleEndian.Uint16(src))
	case 4:
		return T(binary.LittleEndian.Uint32(src))
	case 8:
		return T(binary.LittleEndian.Uint64(src))
	default:
		panic("flatcol: unsupported numeric codec width")
	}
}
