package shmem

import (
	"context"
	"testing"
	"time"
)

func TestHeapRegionAtomics(t *testing.T) {
	r := NewHeap(16)

	if err := r.AtomicStore32(0, 42); err != nil {
		t.Fatal(err)
	}
	got, err := r.AtomicLoad32(0)
	if err != nil || got != 42 {
		t.Fatalf("AtomicLoad32 = %v, %v", got, err)
	}

	next, err := r.AtomicAdd32(0, 8)
	if err != nil || next != 50 {
		t.Fatalf("AtomicAdd32 = %v, %v", next, err)
	}

	swapped, err := r.CompareAndSwap32(0, 50, 100)
	if err != nil || !swapped {
		t.Fatalf("CompareAndSwap32 should have succeeded: %v, %v", swapped, err)
	}
	swapped2, err := r.CompareAndSwap32(0, 50, 200)
	if err != nil || swapped2 {
		t.Fatalf("CompareAndSwap32 on stale expected value should fail: %v, %v", swapped2, err)
	}
}

func TestHeapRegionRejectsOutOfBoundsAndMisaligned(t *testing.T) {
	r := NewHeap(8)
	if _, err := r.AtomicLoad32(6); err != ErrOutOfBounds {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := r.AtomicLoad32(3); err != ErrMisaligned {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
}

func TestWordCondWakesOnNotify(t *testing.T) {
	r := NewHeap(4)
	cond := NewWordCond(r, 0)

	woke := make(chan uint32, 1)
	go func() {
		val, changed := cond.Wait(context.Background(), 0, 0)
		if !changed {
			t.Error("expected Wait to report a value change")
		}
		woke <- val
	}()

	time.Sleep(10 * time.Millisecond)
	r.AtomicStore32(0, 7)
	cond.Notify()

	select {
	case v := <-woke:
		if v != 7 {
			t.Fatalf("Wait returned %d, want 7", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Notify")
	}
}

func TestWordCondTimesOut(t *testing.T) {
	r := NewHeap(4)
	cond := NewWordCond(r, 0)

	_, changed := cond.Wait(context.Background(), 0, 20*time.Millisecond)
	if changed {
		t.Fatal("expected Wait to time out, not observe a change")
	}
}
