// Package packet layers length-prefixed framing on top of a ring.Stream,
// so callers can exchange variable-length messages instead of raw bytes.
package packet

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"github.com/idleman/staabler/pkg/ring"
)

// HeaderLen is the fixed width of a frame's header: a little-endian
// uint32 total size (counted from the first byte of this header) plus
// 4 reserved bytes, currently unused but kept for future header fields
// without breaking the wire format's alignment.
const HeaderLen = 8

// ErrPayloadTooLarge is returned when a payload's encoded size would not
// fit in the header's uint32 size field.
var ErrPayloadTooLarge = errors.New("packet: payload too large")

// Header is a reusable frame header plus its payload view.
type Header struct {
	Size  uint32 // total frame size, including HeaderLen
	Bytes []byte // payload, HeaderLen bytes shorter than Size
}

// encode writes payload into a fresh HeaderLen+len(payload) buffer.
func encode(payload []byte) ([]byte, error) {
	total := uint64(HeaderLen) + uint64(len(payload))
	if total > uint64(^uint32(0)) {
		return nil, ErrPayloadTooLarge
	}
	buf := make([]byte, total)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(total))
	copy(buf[HeaderLen:], payload)
	return buf, nil
}

// Stream wraps a ring.Stream with packet framing.
type Stream struct {
	stream *ring.Stream
}

// New wraps an existing byte ring buffer as a packet stream.
func New(stream *ring.Stream) *Stream {
	return &Stream{stream: stream}
}

// TryWrite frames payload and issues a single non-blocking write of the
// whole frame. It returns whether the frame was written; a false result
// with a nil error means the underlying ring lacked capacity.
func (s *Stream) TryWrite(payload []byte) (bool, error) {
	frame, err := encode(payload)
	if err != nil {
		return false, err
	}
	n, err := s.stream.TryWrite(frame)
	if err != nil {
		return false, err
	}
	return n == len(frame), nil
}

// TryRead peeks the size header, then attempts to read one whole frame.
// It returns nil, nil if no frame is fully available yet.
func (s *Stream) TryRead() (*Header, error) {
	sizeBuf := make([]byte, 4)
	n, err := s.stream.Peek(0, sizeBuf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	size := binary.LittleEndian.Uint32(sizeBuf)

	frame := make([]byte, size)
	n, err = s.stream.TryRead(frame)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return &Header{Size: size, Bytes: frame[HeaderLen:]}, nil
}

// Write blocks until the frame is written, ctx is done, or timeout
// elapses.
func (s *Stream) Write(ctx context.Context, payload []byte, timeout time.Duration) (bool, error) {
	frame, err := encode(payload)
	if err != nil {
		return false, err
	}
	n, err := s.stream.Write(ctx, frame, timeout)
	if err != nil {
		return false, err
	}
	return n == len(frame), nil
}

// Read blocks until one frame is available, ctx is done, or timeout
// elapses. timeout <= 0 means no timeout.
func (s *Stream) Read(ctx context.Context, timeout time.Duration) (*Header, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		h, err := s.TryRead()
		if err != nil || h != nil {
			return h, err
		}

		remaining := timeout
		if !deadline.IsZero() {
			remaining = time.Until(deadline)
			if remaining <= 0 {
				return nil, nil
			}
		}
		ready, err := s.stream.SleepUntilReadable(ctx, 4, remaining)
		if err != nil {
			return nil, err
		}
		if !ready {
			return nil, nil
		}
	}
}
