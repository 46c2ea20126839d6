package flatcol

import "errors"

var (
	// ErrInvalidElementType is returned when a codec reports a
	// non-positive element width.
	ErrInvalidElementType = errors.New("flatcol: invalid element width")

	// ErrIndexOutOfRange is returned by index-addressed operations given
	// an index outside the list's current bounds.
	ErrIndexOutOfRange = errors.New("flatcol: index out of range")

	// ErrMisalignedBuffer is returned when an adopted buffer's length is
	// not a multiple of the element width.
	ErrMisalignedBuffer = errors.New("flatcol: buffer length not a multiple of element width")

	// ErrDuplicate is returned by FlatSet.Add when an element comparing
	// equal to an existing one is inserted.
	ErrDuplicate = errors.New("flatcol: duplicate element")
)
