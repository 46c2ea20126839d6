package record

import "errors"

var (
	// ErrBufferTooSmall is returned when a caller supplies an existing
	// buffer shorter than the schema's fixed region.
	ErrBufferTooSmall = errors.New("record: buffer too small for schema")

	// ErrUnknownField is returned by name-based accessors when the schema
	// has no field with that name.
	ErrUnknownField = errors.New("record: unknown field")

	// ErrKindMismatch is returned when an accessor's Go type doesn't match
	// the field's declared Kind.
	ErrKindMismatch = errors.New("record: field kind mismatch")

	// ErrIndexOutOfRange is returned by array accessors given an index
	// outside [0, field length).
	ErrIndexOutOfRange = errors.New("record: array index out of range")

	// ErrNotVariable names the case of a fixed-width field used where a
	// variable-width one is expected. The Utf8/Bytes accessors in this
	// package check the exact Kind and report that case as ErrKindMismatch.
	ErrNotVariable = errors.New("record: field is not variable-width")
)
