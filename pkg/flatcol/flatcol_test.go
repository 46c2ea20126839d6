package flatcol

import (
	"encoding/binary"
	"testing"
)

// uint32Codec is a minimal Codec[uint32] for exercising FlatList/FlatSet
// without pulling in the record package.
type uint32Codec struct{}

func (uint32Codec) Width() int { return 4 }
func (uint32Codec) Encode(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}
func (uint32Codec) Decode(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

func newUint32List(t *testing.T) *FlatList[uint32] {
	t.Helper()
	l, err := New[uint32](uint32Codec{})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestPushPopUnshiftShift(t *testing.T) {
	l := newUint32List(t)
	l.Push(1)
	l.Push(2)
	l.Push(3)
	if l.Len() != 3 {
		t.Fatalf("Len = %d", l.Len())
	}

	v, err := l.Pop()
	if err != nil || v != 3 {
		t.Fatalf("Pop = %d, %v", v, err)
	}

	l.Unshift(0)
	want := []uint32{0, 1, 2}
	for i, w := range want {
		got, err := l.At(i)
		if err != nil || got != w {
			t.Fatalf("At(%d) = %d, %v, want %d", i, got, err, w)
		}
	}

	v, err = l.Shift()
	if err != nil || v != 0 {
		t.Fatalf("Shift = %d, %v", v, err)
	}
}

func TestInsertDeleteSwap(t *testing.T) {
	l := newUint32List(t)
	for _, v := range []uint32{10, 20, 30} {
		l.Push(v)
	}
	l.Insert(1, 15)
	want := []uint32{10, 15, 20, 30}
	for i, w := range want {
		got, _ := l.At(i)
		if got != w {
			t.Fatalf("after Insert, At(%d) = %d, want %d", i, got, w)
		}
	}

	l.Delete(1)
	for i, w := range []uint32{10, 20, 30} {
		got, _ := l.At(i)
		if got != w {
			t.Fatalf("after Delete, At(%d) = %d, want %d", i, got, w)
		}
	}

	l.Swap(0, 2)
	for i, w := range []uint32{30, 20, 10} {
		got, _ := l.At(i)
		if got != w {
			t.Fatalf("after Swap, At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestNegativeIndices(t *testing.T) {
	l := newUint32List(t)
	for _, v := range []uint32{1, 2, 3} {
		l.Push(v)
	}
	got, err := l.At(-1)
	if err != nil || got != 3 {
		t.Fatalf("At(-1) = %d, %v", got, err)
	}
}

func TestHandleIsRawView(t *testing.T) {
	l := newUint32List(t)
	l.Push(100)
	h, err := l.Handle(0)
	if err != nil {
		t.Fatal(err)
	}
	binary.LittleEndian.PutUint32(h, 999)
	got, _ := l.At(0)
	if got != 999 {
		t.Fatalf("mutating Handle should mutate the list in place, got %d", got)
	}
}

func TestResizeAndReserve(t *testing.T) {
	l := newUint32List(t)
	l.Resize(5)
	if l.Len() != 5 {
		t.Fatalf("Len after Resize = %d", l.Len())
	}
	got, _ := l.At(4)
	if got != 0 {
		t.Fatalf("new elements should be zero-filled, got %d", got)
	}
	l.Resize(2)
	if l.Len() != 2 {
		t.Fatalf("Len after shrink = %d", l.Len())
	}
}

func TestFindFilterForEach(t *testing.T) {
	l := newUint32List(t)
	for _, v := range []uint32{1, 2, 3, 4, 5} {
		l.Push(v)
	}
	idx := l.FindIndex(func(v uint32) bool { return v == 3 })
	if idx != 2 {
		t.Fatalf("FindIndex = %d", idx)
	}
	evens := l.Filter(func(v uint32) bool { return v%2 == 0 })
	if evens.Len() != 2 {
		t.Fatalf("Filter = %d elements", evens.Len())
	}
	var sum uint32
	l.ForEach(func(_ int, v uint32) { sum += v })
	if sum != 15 {
		t.Fatalf("sum = %d", sum)
	}
	if !l.Some(func(v uint32) bool { return v == 5 }) {
		t.Fatal("Some should find 5")
	}
	if l.Every(func(v uint32) bool { return v < 5 }) {
		t.Fatal("Every should be false, 5 is not < 5")
	}
}

func TestSortHeapSortAscending(t *testing.T) {
	l := newUint32List(t)
	for _, v := range []uint32{5, 3, 4, 1, 2} {
		l.Push(v)
	}
	l.Sort(func(a, b uint32) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
	for i, want := range []uint32{1, 2, 3, 4, 5} {
		got, _ := l.At(i)
		if got != want {
			t.Fatalf("sorted[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestReverse(t *testing.T) {
	l := newUint32List(t)
	for _, v := range []uint32{1, 2, 3} {
		l.Push(v)
	}
	l.Reverse()
	for i, want := range []uint32{3, 2, 1} {
		got, _ := l.At(i)
		if got != want {
			t.Fatalf("reversed[%d] = %d, want %d", i, got, want)
		}
	}
}

func numericCmp(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func TestFlatSetAddRejectsDuplicates(t *testing.T) {
	s, err := NewSet[uint32](uint32Codec{}, numericCmp)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []uint32{5, 1, 3} {
		if _, err := s.Add(v); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Add(3); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	for i, want := range []uint32{1, 3, 5} {
		got, _ := s.List.At(i)
		if got != want {
			t.Fatalf("set[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestFlatSetRange(t *testing.T) {
	s, err := NewSet[uint32](uint32Codec{}, numericCmp)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []uint32{1, 2, 2, 3, 4} {
		s.Add(v) // duplicate 2 silently rejected
	}
	lo, hi := s.Range(func(v uint32) int { return numericCmp(v, 2) })
	if lo != 1 || hi != 1 {
		t.Fatalf("Range(2) = [%d, %d], want [1, 1]", lo, hi)
	}

	lo, hi = s.Range(func(v uint32) int { return numericCmp(v, 99) })
	if lo != -1 || hi != -1 {
		t.Fatalf("Range(99) = [%d, %d], want empty", lo, hi)
	}
}
