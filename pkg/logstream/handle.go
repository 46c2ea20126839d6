package logstream

// NativeHandle is the file-like contract the append stream consumes.
// Two implementations ship: FileHandle (pooled OS file descriptors) and
// MemHandle (an in-memory buffer, for tests and embedding without a
// filesystem). Go's goroutine model makes a separate async surface
// unnecessary — every method here is already safe to call from its own
// goroutine. Watch's callbacks run synchronously on the goroutine of the
// write that triggered them, after that write has completed.
type NativeHandle interface {
	// WritevSync performs a single scatter/gather write of buffers, in
	// order, returning the total bytes written. A short write (less than
	// the sum of all buffer lengths) is reported via the returned count,
	// never silently as a full write.
	WritevSync(buffers [][]byte) (int, error)

	// ReadSync reads into buf starting at position, returning the number
	// of bytes read (which may be less than len(buf) at EOF).
	ReadSync(buf []byte, position int64) (int, error)

	// Peek returns up to length bytes available at position without
	// advancing any cursor. A short result (len(result) < length) means
	// that much data is not yet available; it is not an error.
	Peek(length int, position int64) ([]byte, error)

	// WriteSync appends buf, returning the bytes written.
	WriteSync(buf []byte) (int, error)

	// Watch registers callback to be invoked after every write that
	// extends the handle's visible size. The returned func unsubscribes.
	// Watches may deliver spurious wakeups; callers must re-check state.
	Watch(callback func()) (unsubscribe func())

	// Stat returns the handle's current visible size in bytes.
	Stat() (size int64, err error)

	// Close releases the handle's resources.
	Close() error
}
