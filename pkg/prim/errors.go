package prim

import "errors"

// ErrUnknownType is returned when a schema names a primitive type outside
// the closed Kind set.
var ErrUnknownType = errors.New("prim: unknown type")
