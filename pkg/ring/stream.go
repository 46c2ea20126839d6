// Package ring implements lock-free transports over a shmem.Region: a
// byte-oriented SPSC/MPSC ring buffer (Stream) and a fixed-slot typed
// ring (Queue), both built from nothing but atomic word operations on
// the region's control block.
package ring

import (
	"context"
	"time"

	"github.com/idleman/staabler/pkg/shmem"
)

const (
	headOffset       = 0
	tailOffset       = 4
	writerFlagOffset = 8
	controlBlockLen  = 12
)

// Stream is a byte-oriented ring buffer: one writer cursor (tail), one
// reader cursor (head), and a writer-in-progress flag, all three stored
// as atomic words at the start of the adopted region. The remaining
// region bytes are the data area.
type Stream struct {
	region   shmem.Region
	dataLen  int // data area length in bytes, used to derive head/tail modulo positions
	headCond *shmem.WordCond
	tailCond *shmem.WordCond
}

// NewStream adopts region as a ring buffer's backing storage. The region
// must be at least controlBlockLen+4 bytes, and its data area (everything
// after the control block) must have an even byte length.
func NewStream(region shmem.Region) (*Stream, error) {
	if region.Size() < controlBlockLen+4 {
		return nil, ErrRegionTooSmall
	}
	dataLen := region.Size() - controlBlockLen
	if dataLen%2 != 0 {
		return nil, ErrMisalignedRegion
	}
	return &Stream{
		region:   region,
		dataLen:  dataLen,
		headCond: shmem.NewWordCond(region, headOffset),
		tailCond: shmem.NewWordCond(region, tailOffset),
	}, nil
}

// Capacity returns the number of bytes that can be written before the
// buffer reports full, at this instant.
func (s *Stream) Capacity() (int, error) {
	h, t, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	size := s.sizeOf(h, t)
	return s.dataLen - size - 1, nil
}

func (s *Stream) snapshot() (head, tail uint32, err error) {
	head, err = s.region.AtomicLoad32(headOffset)
	if err != nil {
		return 0, 0, err
	}
	tail, err = s.region.AtomicLoad32(tailOffset)
	return head, tail, err
}

func (s *Stream) sizeOf(head, tail uint32) int {
	if head == tail {
		return 0
	}
	if tail < head {
		return s.dataLen - int(head) + int(tail)
	}
	return int(tail) - int(head)
}

// TryWrite attempts a single, non-blocking write of data. It returns the
// number of bytes written: either len(data) on success, or 0 if the
// buffer lacks capacity, data is empty, or another writer is mid-flight.
func (s *Stream) TryWrite(data []byte) (int, error) {
	n := len(data)
	if n == 0 {
		return 0, nil
	}

	head, tail, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	capacity := s.dataLen - s.sizeOf(head, tail) - 1
	if n > capacity {
		return 0, nil
	}

	prior, err := s.region.AtomicAdd32(writerFlagOffset, 1)
	if err != nil {
		return 0, err
	}
	if prior-1 != 0 {
		// Another writer is mid-flight. Per the protocol this writer's
		// increment is left in place; the in-flight writer's own flag
		// reset races it, and a subsequent successful writer eventually
		// clears the flag back to zero.
		return 0, nil
	}

	next := (int(tail) + n) % s.dataLen
	data2 := s.region.Slice()[controlBlockLen:]
	if tail+uint32(n) <= uint32(s.dataLen) {
		copy(data2[tail:], data)
	} else {
		firstLen := s.dataLen - int(tail)
		copy(data2[tail:], data[:firstLen])
		copy(data2[0:], data[firstLen:])
	}

	if err := s.region.AtomicStore32(tailOffset, uint32(next)); err != nil {
		return 0, err
	}
	if err := s.region.AtomicStore32(writerFlagOffset, 0); err != nil {
		return 0, err
	}
	s.tailCond.Notify()
	return n, nil
}

// TryRead attempts a single, non-blocking read into dest. It returns the
// number of bytes transferred: len(dest) on success, or 0 if fewer bytes
// are available than requested, dest is empty, or a racing reader won.
func (s *Stream) TryRead(dest []byte) (int, error) {
	n := len(dest)
	if n == 0 {
		return 0, nil
	}

	head, tail, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	if s.sizeOf(head, tail) < n {
		return 0, nil
	}

	data := s.region.Slice()[controlBlockLen:]
	next := (int(head) + n) % s.dataLen
	if head+uint32(n) <= uint32(s.dataLen) {
		copy(dest, data[head:int(head)+n])
	} else {
		firstLen := s.dataLen - int(head)
		copy(dest[:firstLen], data[head:])
		copy(dest[firstLen:], data[0:n-firstLen])
	}

	swapped, err := s.region.CompareAndSwap32(headOffset, head, uint32(next))
	if err != nil {
		return 0, err
	}
	if !swapped {
		return 0, nil
	}
	s.headCond.Notify()
	return n, nil
}

// Peek reads len(dest) bytes starting pos bytes after the current head,
// without advancing any cursor. It returns 0 bytes transferred if fewer
// than len(dest) bytes are currently available at that position.
func (s *Stream) Peek(pos int, dest []byte) (int, error) {
	n := len(dest)
	if n == 0 {
		return 0, nil
	}
	head, tail, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	size := s.sizeOf(head, tail)
	if pos+n > size {
		return 0, nil
	}
	data := s.region.Slice()[controlBlockLen:]
	start := (int(head) + pos) % s.dataLen
	if start+n <= s.dataLen {
		copy(dest, data[start:start+n])
	} else {
		firstLen := s.dataLen - start
		copy(dest[:firstLen], data[start:])
		copy(dest[firstLen:], data[0:n-firstLen])
	}
	return n, nil
}

// Scan returns up to n unread bytes starting at the current head, without
// advancing the cursor. The returned slice is a fresh copy.
func (s *Stream) Scan(n int) ([]byte, error) {
	head, tail, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	size := s.sizeOf(head, tail)
	if n > size {
		n = size
	}
	out := make([]byte, n)
	if n == 0 {
		return out, nil
	}
	if _, err := s.Peek(0, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Write blocks, retrying TryWrite and waiting on the head condition
// variable between attempts, until it succeeds, ctx is done, or timeout
// elapses. A timeout or cancellation returns 0 bytes transferred and a
// nil error: callers distinguish a timeout from a hard failure by n == 0
// and err == nil, not by a sentinel error value.
func (s *Stream) Write(ctx context.Context, data []byte, timeout time.Duration) (int, error) {
	deadline := deadlineFrom(timeout)
	for {
		n, err := s.TryWrite(data)
		if err != nil || n > 0 {
			return n, err
		}
		head, err := s.region.AtomicLoad32(headOffset)
		if err != nil {
			return 0, err
		}
		remaining, expired := remainingTimeout(deadline)
		if expired {
			return 0, nil
		}
		if ctxDone(ctx) {
			return 0, nil
		}
		s.headCond.Wait(ctx, head, remaining)
	}
}

// Read blocks symmetrically with Write, waiting on the tail condition
// variable between TryRead attempts.
func (s *Stream) Read(ctx context.Context, dest []byte, timeout time.Duration) (int, error) {
	deadline := deadlineFrom(timeout)
	for {
		n, err := s.TryRead(dest)
		if err != nil || n > 0 {
			return n, err
		}
		tail, err := s.region.AtomicLoad32(tailOffset)
		if err != nil {
			return 0, err
		}
		remaining, expired := remainingTimeout(deadline)
		if expired {
			return 0, nil
		}
		if ctxDone(ctx) {
			return 0, nil
		}
		s.tailCond.Wait(ctx, tail, remaining)
	}
}

// SleepUntilReadable blocks until at least n bytes are visible to a
// reader or timeout elapses, returning whether n bytes became available.
func (s *Stream) SleepUntilReadable(ctx context.Context, n int, timeout time.Duration) (bool, error) {
	deadline := deadlineFrom(timeout)
	for {
		head, tail, err := s.snapshot()
		if err != nil {
			return false, err
		}
		if s.sizeOf(head, tail) >= n {
			return true, nil
		}
		remaining, expired := remainingTimeout(deadline)
		if expired {
			return false, nil
		}
		if ctxDone(ctx) {
			return false, nil
		}
		s.tailCond.Wait(ctx, tail, remaining)
	}
}

func ctxDone(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func deadlineFrom(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}

func remainingTimeout(deadline time.Time) (time.Duration, bool) {
	if deadline.IsZero() {
		return 0, false
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, true
	}
	return remaining, false
}
