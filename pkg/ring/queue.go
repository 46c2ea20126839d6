package ring

import (
	"context"
	"time"

	"github.com/idleman/staabler/pkg/shmem"
)

// Queue is a fixed-length circular buffer of Uint32 slots sharing the
// same head/tail control-block discipline as Stream, but operating on
// whole slots instead of arbitrary byte ranges. Writers use a
// store-then-CAS sequence (write the value, then try to advance tail);
// readers CAS head after reading, so a losing writer's write is simply
// overwritten by the next successful one.
type Queue struct {
	region   shmem.Region
	slotLen  int // number of Uint32 slots
	headCond *shmem.WordCond
	tailCond *shmem.WordCond
}

// NewQueue adopts region as a Queue's backing storage. The data area
// (region bytes after the control block) must hold a whole number of
// 4-byte slots.
func NewQueue(region shmem.Region) (*Queue, error) {
	if region.Size() < controlBlockLen+4 {
		return nil, ErrRegionTooSmall
	}
	dataBytes := region.Size() - controlBlockLen
	if dataBytes%4 != 0 {
		return nil, ErrMisalignedRegion
	}
	return &Queue{
		region:   region,
		slotLen:  dataBytes / 4,
		headCond: shmem.NewWordCond(region, headOffset),
		tailCond: shmem.NewWordCond(region, tailOffset),
	}, nil
}

func (q *Queue) slotOffset(index uint32) int {
	return controlBlockLen + int(index%uint32(q.slotLen))*4
}

func (q *Queue) snapshot() (head, tail uint32, err error) {
	head, err = q.region.AtomicLoad32(headOffset)
	if err != nil {
		return 0, 0, err
	}
	tail, err = q.region.AtomicLoad32(tailOffset)
	return head, tail, err
}

func (q *Queue) sizeOf(head, tail uint32) int {
	if head == tail {
		return 0
	}
	if tail < head {
		return q.slotLen - int(head) + int(tail)
	}
	return int(tail) - int(head)
}

// TryPush attempts to enqueue v, returning ErrQueueFull if no slot is
// free at this instant.
func (q *Queue) TryPush(v uint32) error {
	head, tail, err := q.snapshot()
	if err != nil {
		return err
	}
	if q.sizeOf(head, tail) >= q.slotLen-1 {
		return ErrQueueFull
	}

	if err := q.region.AtomicStore32(q.slotOffset(tail), v); err != nil {
		return err
	}
	next := (tail + 1) % uint32(q.slotLen)
	swapped, err := q.region.CompareAndSwap32(tailOffset, tail, next)
	if err != nil {
		return err
	}
	if !swapped {
		// Lost the race; the winning writer's store already landed in
		// this slot by the time its CAS succeeded, or will on its own
		// retry — the caller should retry TryPush.
		return ErrQueueFull
	}
	q.tailCond.Notify()
	return nil
}

// TryShift attempts to dequeue the oldest value, returning ErrQueueEmpty
// if no slot is ready.
func (q *Queue) TryShift() (uint32, error) {
	head, tail, err := q.snapshot()
	if err != nil {
		return 0, err
	}
	if head == tail {
		return 0, ErrQueueEmpty
	}

	v, err := q.region.AtomicLoad32(q.slotOffset(head))
	if err != nil {
		return 0, err
	}
	next := (head + 1) % uint32(q.slotLen)
	swapped, err := q.region.CompareAndSwap32(headOffset, head, next)
	if err != nil {
		return 0, err
	}
	if !swapped {
		return 0, ErrQueueEmpty
	}
	q.headCond.Notify()
	return v, nil
}

// Peek returns the value i slots ahead of the current head without
// advancing it.
func (q *Queue) Peek(i int) (uint32, error) {
	head, tail, err := q.snapshot()
	if err != nil {
		return 0, err
	}
	if i >= q.sizeOf(head, tail) {
		return 0, ErrQueueEmpty
	}
	return q.region.AtomicLoad32(q.slotOffset(head + uint32(i)))
}

// Push blocks, retrying TryPush and waiting on the head condition
// variable, until it succeeds, ctx is done, or timeout elapses.
func (q *Queue) Push(ctx context.Context, v uint32, timeout time.Duration) error {
	deadline := deadlineFrom(timeout)
	for {
		err := q.TryPush(v)
		if err == nil {
			return nil
		}
		if err != ErrQueueFull {
			return err
		}
		head, loadErr := q.region.AtomicLoad32(headOffset)
		if loadErr != nil {
			return loadErr
		}
		remaining, expired := remainingTimeout(deadline)
		if expired || ctxDone(ctx) {
			return ErrQueueFull
		}
		q.headCond.Wait(ctx, head, remaining)
	}
}

// Shift blocks symmetrically with Push, waiting on the tail condition
// variable between TryShift attempts.
func (q *Queue) Shift(ctx context.Context, timeout time.Duration) (uint32, error) {
	deadline := deadlineFrom(timeout)
	for {
		v, err := q.TryShift()
		if err == nil {
			return v, nil
		}
		if err != ErrQueueEmpty {
			return 0, err
		}
		tail, loadErr := q.region.AtomicLoad32(tailOffset)
		if loadErr != nil {
			return 0, loadErr
		}
		remaining, expired := remainingTimeout(deadline)
		if expired || ctxDone(ctx) {
			return 0, ErrQueueEmpty
		}
		q.tailCond.Wait(ctx, tail, remaining)
	}
}
