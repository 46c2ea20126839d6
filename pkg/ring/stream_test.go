package ring

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/idleman/staabler/pkg/shmem"
)

func newTestStream(t *testing.T, dataLen int) *Stream {
	t.Helper()
	s, err := NewStream(shmem.NewHeap(controlBlockLen + dataLen))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTryWriteTryReadRoundTrip(t *testing.T) {
	s := newTestStream(t, 16)
	n, err := s.TryWrite([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("TryWrite = %d, %v", n, err)
	}
	dest := make([]byte, 5)
	n, err = s.TryRead(dest)
	if err != nil || n != 5 || string(dest) != "hello" {
		t.Fatalf("TryRead = %d %q, %v", n, dest, err)
	}
}

func TestTryWriteFailsWhenOverCapacity(t *testing.T) {
	s := newTestStream(t, 8) // capacity 7
	n, err := s.TryWrite(make([]byte, 8))
	if err != nil || n != 0 {
		t.Fatalf("expected write over capacity to return 0, got %d, %v", n, err)
	}
}

func TestTryReadFailsWhenNotEnoughData(t *testing.T) {
	s := newTestStream(t, 16)
	s.TryWrite([]byte("ab"))
	n, err := s.TryRead(make([]byte, 5))
	if err != nil || n != 0 {
		t.Fatalf("expected short read to return 0, got %d, %v", n, err)
	}
}

func TestWrapAroundPreservesOrdering(t *testing.T) {
	s := newTestStream(t, 8) // dataLen 8, usable capacity 7

	// Fill most of the buffer, drain it, then write again so the next
	// write straddles the wrap point.
	if _, err := s.TryWrite([]byte("ABCDEF")); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 6)
	if n, err := s.TryRead(buf); err != nil || n != 6 {
		t.Fatalf("drain failed: %d, %v", n, err)
	}
	if _, err := s.TryWrite([]byte("0123456")); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 7)
	if n, err := s.TryRead(out); err != nil || n != 7 || string(out) != "0123456" {
		t.Fatalf("wrap-around read = %d %q, %v", n, out, err)
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	s := newTestStream(t, 16)
	s.TryWrite([]byte("xyz"))

	dest := make([]byte, 3)
	if n, err := s.Peek(0, dest); err != nil || n != 3 || string(dest) != "xyz" {
		t.Fatalf("Peek = %d %q, %v", n, dest, err)
	}
	// Still readable after peeking.
	n, err := s.TryRead(dest)
	if err != nil || n != 3 || string(dest) != "xyz" {
		t.Fatalf("TryRead after Peek = %d %q, %v", n, dest, err)
	}
}

func TestBlockingWriteAndReadAcrossGoroutines(t *testing.T) {
	s := newTestStream(t, 4096)
	var wg sync.WaitGroup
	wg.Add(2)

	const messages = 200
	go func() {
		defer wg.Done()
		for i := 0; i < messages; i++ {
			n, err := s.Write(context.Background(), []byte{byte(i)}, time.Second)
			if err != nil || n != 1 {
				t.Errorf("Write(%d) = %d, %v", i, n, err)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < messages; i++ {
			buf := make([]byte, 1)
			n, err := s.Read(context.Background(), buf, time.Second)
			if err != nil || n != 1 || buf[0] != byte(i) {
				t.Errorf("Read(%d) = %d %v, %v", i, n, buf, err)
				return
			}
		}
	}()

	wg.Wait()
}

func TestReadTimesOutWhenEmpty(t *testing.T) {
	s := newTestStream(t, 16)
	n, err := s.Read(context.Background(), make([]byte, 4), 20*time.Millisecond)
	if err != nil || n != 0 {
		t.Fatalf("expected timeout to return 0, nil, got %d, %v", n, err)
	}
}
