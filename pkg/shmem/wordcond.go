package shmem

import (
	"context"
	"sync"
	"time"
)

// WordCond is a portable stand-in for a futex: it lets one goroutine wait
// for a control word at a fixed offset within a Region to change value,
// and another wake waiters after storing a new value. Unlike a real
// futex, waiters only observe the wake if they're parked on the same
// WordCond instance — callers sharing a Region across an OS-thread or
// process boundary should pair every writer's Notify call with the
// reader's own WordCond over that Region rather than relying on the
// memory alone.
type WordCond struct {
	mu     sync.Mutex
	cond   *sync.Cond
	region Region
	offset int
}

// NewWordCond binds a WordCond to the 4-byte-aligned word at offset in
// region.
func NewWordCond(region Region, offset int) *WordCond {
	w := &WordCond{region: region, offset: offset}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Wait blocks until the word no longer equals want, ctx is done, or
// timeout elapses (timeout <= 0 means no timeout). It returns the word's
// current value and whether the wait ended because the value changed
// (false means ctx/timeout fired first).
func (w *WordCond) Wait(ctx context.Context, want uint32, timeout time.Duration) (uint32, bool) {
	var expired chan struct{}
	if timeout > 0 || ctx != nil {
		expired = make(chan struct{})
		done := make(chan struct{})
		go w.wakeOnDeadline(ctx, timeout, done, expired)
		defer close(done)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		cur, err := w.region.AtomicLoad32(w.offset)
		if err != nil || cur != want {
			return cur, err == nil
		}
		select {
		case <-expired:
			cur, _ := w.region.AtomicLoad32(w.offset)
			return cur, false
		default:
		}
		w.cond.Wait()
	}
}

// wakeOnDeadline closes expired and forces a Broadcast when ctx is
// cancelled or timeout elapses, so a blocked Wait re-checks the word and
// the expired channel rather than sleeping forever. It exits without
// doing either once done is closed.
func (w *WordCond) wakeOnDeadline(ctx context.Context, timeout time.Duration, done, expired chan struct{}) {
	var timer *time.Timer
	var timerC <-chan time.Time
	if timeout > 0 {
		timer = time.NewTimer(timeout)
		timerC = timer.C
		defer timer.Stop()
	}
	var ctxDone <-chan struct{}
	if ctx != nil {
		ctxDone = ctx.Done()
	}
	select {
	case <-timerC:
	case <-ctxDone:
	case <-done:
		return
	}
	close(expired)
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}

// Notify wakes every goroutine blocked in Wait on this WordCond. Callers
// should Notify after storing the new value with AtomicStore32/AtomicAdd32
// so waiters observe it on their next load.
func (w *WordCond) Notify() {
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}
