package schema

import "errors"

var (
	// ErrInvalidFieldName is returned when a field name does not match
	// ^[A-Za-z_$][A-Za-z0-9_$]*$ or collides with the reserved name "buffer".
	ErrInvalidFieldName = errors.New("schema: invalid field name")

	// ErrInvalidLength is returned when a field declares a negative
	// length (0 and 1 both mean a scalar).
	ErrInvalidLength = errors.New("schema: invalid array length")

	// ErrVariadicUnsupported is returned when a field tries to combine a
	// variable-width kind (Utf8, Bytes) with an array length; only scalar
	// occurrences of variable-width kinds are supported.
	ErrVariadicUnsupported = errors.New("schema: array of variable-width kind is unsupported")

	// ErrDuplicateField is returned when two fields in the same schema
	// share a name.
	ErrDuplicateField = errors.New("schema: duplicate field name")

	// ErrEmptySchema is returned when a schema has no fields.
	ErrEmptySchema = errors.New("schema: schema must declare at least one field")
)
