// Package logstream implements the append-only record stream: a native
// file-handle abstraction, a replay-on-open Stream, a resumable Cursor,
// and pluggable Projections that keep a derived index in sync with the
// stream as it's written.
package logstream

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSchema is returned when a cursor encounters a schema_id
	// it cannot resolve — neither already known nor accompanied by an
	// inline schema blob.
	ErrUnknownSchema = errors.New("logstream: unknown schema")

	// ErrCorruption is returned when a frame header or body cannot be
	// parsed as a structurally valid frame.
	ErrCorruption = errors.New("logstream: corrupted frame")

	// ErrClosed is returned by operations attempted after Close.
	ErrClosed = errors.New("logstream: handle closed")
)

// StreamWriteError reports a scatter/gather write that transferred fewer
// bytes than the caller's batch required. Partial success is never
// reported as success.
type StreamWriteError struct {
	Wrote    int
	Expected int
}

func (e *StreamWriteError) Error() string {
	return fmt.Sprintf("logstream: short write: wrote %d of %d bytes", e.Wrote, e.Expected)
}
