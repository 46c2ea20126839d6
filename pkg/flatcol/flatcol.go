// Package flatcol implements packed, fixed-stride collections over a
// single contiguous byte buffer: FlatList, a resizable packed array, and
// FlatSet, a sorted FlatList with uniqueness. Both avoid per-element heap
// allocation by keeping every element's encoding inline in one buffer.
package flatcol

// Element is the contract a type must satisfy to back a FlatList/FlatSet:
// a fixed, positive encoded byte width. It exists mainly so call sites
// reading a schema or record type can assert compatibility before
// constructing a Codec; FlatList itself is driven by Codec, not Element.
type Element interface {
	BytesPerElement() int
}

// Codec knows how to encode and decode one element type to and from a
// fixed-width byte slot. Width must return the same positive value on
// every call.
type Codec[R any] interface {
	Width() int
	Encode(dst []byte, v R)
	Decode(src []byte) R
}

// FlatList is a resizable packed array of R, stored as one contiguous
// byte buffer of length*Width() bytes.
type FlatList[R any] struct {
	codec  Codec[R]
	buf    []byte
	length int
}

// New constructs an empty FlatList using codec.
func New[R any](codec Codec[R]) (*FlatList[R], error) {
	if codec.Width() <= 0 {
		return nil, ErrInvalidElementType
	}
	return &FlatList[R]{codec: codec}, nil
}

// Adopt wraps an existing buffer as a FlatList without copying. len(buf)
// must be a multiple of codec.Width().
func Adopt[R any](codec Codec[R], buf []byte) (*FlatList[R], error) {
	if codec.Width() <= 0 {
		return nil, ErrInvalidElementType
	}
	if len(buf)%codec.Width() != 0 {
		return nil, ErrMisalignedBuffer
	}
	return &FlatList[R]{codec: codec, buf: buf, length: len(buf) / codec.Width()}, nil
}

// Len returns the current element count.
func (l *FlatList[R]) Len() int { return l.length }

// Width returns the fixed per-element byte width.
func (l *FlatList[R]) Width() int { return l.codec.Width() }

func (l *FlatList[R]) slot(i int) []byte {
	w := l.codec.Width()
	return l.buf[i*w : i*w+w]
}

func (l *FlatList[R]) normalizeIndex(i int) (int, error) {
	if i < 0 {
		i += l.length
	}
	if i < 0 || i >= l.length {
		return 0, ErrIndexOutOfRange
	}
	return i, nil
}

// Reserve ensures the backing buffer can hold at least n elements without
// reallocating, growing geometrically unless force is set (exact size).
func (l *FlatList[R]) Reserve(n int, force ...bool) {
	w := l.codec.Width()
	want := n * w
	if cap(l.buf) >= want {
		return
	}
	exact := len(force) > 0 && force[0]
	newCap := want
	if !exact {
		cur := cap(l.buf)
		if cur == 0 {
			cur = w
		}
		for cur < want {
			cur *= 2
		}
		newCap = cur
	}
	next := make([]byte, len(l.buf), newCap)
	copy(next, l.buf)
	l.buf = next
}

// Resize changes the element count to n, zero-filling new elements or
// truncating extras.
func (l *FlatList[R]) Resize(n int) {
	w := l.codec.Width()
	l.Reserve(n, true)
	if n > l.length {
		l.buf = append(l.buf, make([]byte, (n-l.length)*w)...)
	} else {
		l.buf = l.buf[:n*w]
	}
	l.length = n
}

// ShrinkToFit releases any excess reserved capacity.
func (l *FlatList[R]) ShrinkToFit() {
	if cap(l.buf) == len(l.buf) {
		return
	}
	next := make([]byte, len(l.buf))
	copy(next, l.buf)
	l.buf = next
}

// At decodes the element at index i (negative counts from the end).
func (l *FlatList[R]) At(i int) (R, error) {
	var zero R
	idx, err := l.normalizeIndex(i)
	if err != nil {
		return zero, err
	}
	return l.codec.Decode(l.slot(idx)), nil
}

// Handle returns a reusable raw byte view into slot i. It is valid until
// the next structural mutation (push past capacity, insert, delete, sort,
// swap, resize) — callers must not retain it across such a call.
func (l *FlatList[R]) Handle(i int) ([]byte, error) {
	idx, err := l.normalizeIndex(i)
	if err != nil {
		return nil, err
	}
	return l.slot(idx), nil
}

// Set overwrites the element at index i.
func (l *FlatList[R]) Set(i int, v R) error {
	idx, err := l.normalizeIndex(i)
	if err != nil {
		return err
	}
	l.codec.Encode(l.slot(idx), v)
	return nil
}

// Push appends v to the end.
func (l *FlatList[R]) Push(v R) {
	w := l.codec.Width()
	l.Reserve(l.length+1)
	l.buf = append(l.buf, make([]byte, w)...)
	l.codec.Encode(l.buf[l.length*w:], v)
	l.length++
}

// Pop removes and returns the last element.
func (l *FlatList[R]) Pop() (R, error) {
	var zero R
	if l.length == 0 {
		return zero, ErrIndexOutOfRange
	}
	v := l.codec.Decode(l.slot(l.length - 1))
	l.length--
	l.buf = l.buf[:l.length*l.codec.Width()]
	return v, nil
}

// Unshift inserts v at the front.
func (l *FlatList[R]) Unshift(v R) {
	l.Insert(0, v)
}

// Shift removes and returns the first element.
func (l *FlatList[R]) Shift() (R, error) {
	var zero R
	if l.length == 0 {
		return zero, ErrIndexOutOfRange
	}
	v := l.codec.Decode(l.slot(0))
	l.Delete(0)
	return v, nil
}

// Insert places v at index i, shifting later elements back.
func (l *FlatList[R]) Insert(i int, v R) {
	w := l.codec.Width()
	if i < 0 {
		i += l.length + 1
	}
	if i < 0 {
		i = 0
	}
	if i > l.length {
		i = l.length
	}
	l.Reserve(l.length + 1)
	l.buf = append(l.buf, make([]byte, w)...)
	copy(l.buf[(i+1)*w:], l.buf[i*w:l.length*w])
	l.codec.Encode(l.buf[i*w:], v)
	l.length++
}

// Delete removes the element at index i, shifting later elements forward.
func (l *FlatList[R]) Delete(i int) error {
	idx, err := l.normalizeIndex(i)
	if err != nil {
		return err
	}
	w := l.codec.Width()
	copy(l.buf[idx*w:], l.buf[(idx+1)*w:l.length*w])
	l.length--
	l.buf = l.buf[:l.length*w]
	return nil
}

// Swap exchanges the elements at i and j in place.
func (l *FlatList[R]) Swap(i, j int) error {
	ii, err := l.normalizeIndex(i)
	if err != nil {
		return err
	}
	jj, err := l.normalizeIndex(j)
	if err != nil {
		return err
	}
	if ii == jj {
		return nil
	}
	a, b := l.slot(ii), l.slot(jj)
	for k := range a {
		a[k], b[k] = b[k], a[k]
	}
	return nil
}

// Reverse reverses the list in place.
func (l *FlatList[R]) Reverse() {
	for i, j := 0, l.length-1; i < j; i, j = i+1, j-1 {
		l.Swap(i, j)
	}
}

// ForEach visits every element in order.
func (l *FlatList[R]) ForEach(fn func(i int, v R)) {
	for i := 0; i < l.length; i++ {
		fn(i, l.codec.Decode(l.slot(i)))
	}
}

// FindIndex returns the index of the first element satisfying pred, or
// -1 if none does.
func (l *FlatList[R]) FindIndex(pred func(v R) bool) int {
	for i := 0; i < l.length; i++ {
		if pred(l.codec.Decode(l.slot(i))) {
			return i
		}
	}
	return -1
}

// Find returns the first element satisfying pred.
func (l *FlatList[R]) Find(pred func(v R) bool) (R, bool) {
	i := l.FindIndex(pred)
	if i < 0 {
		var zero R
		return zero, false
	}
	v, _ := l.At(i)
	return v, true
}

// Some reports whether any element satisfies pred.
func (l *FlatList[R]) Some(pred func(v R) bool) bool { return l.FindIndex(pred) >= 0 }

// Every reports whether every element satisfies pred.
func (l *FlatList[R]) Every(pred func(v R) bool) bool {
	for i := 0; i < l.length; i++ {
		if !pred(l.codec.Decode(l.slot(i))) {
			return false
		}
	}
	return true
}

// Reduce folds the list to a single accumulated value.
func (l *FlatList[R]) Reduce(init any, fn func(acc any, v R) any) any {
	acc := init
	for i := 0; i < l.length; i++ {
		acc = fn(acc, l.codec.Decode(l.slot(i)))
	}
	return acc
}

// Map applies fn to every element and returns the results in a plain
// slice (the result is not packed — a transformed element may have a
// different shape than R entirely).
func (l *FlatList[R]) Map(fn func(v R) any) []any {
	out := make([]any, l.length)
	for i := 0; i < l.length; i++ {
		out[i] = fn(l.codec.Decode(l.slot(i)))
	}
	return out
}

// Filter returns a new FlatList containing only the elements satisfying
// pred.
func (l *FlatList[R]) Filter(pred func(v R) bool) *FlatList[R] {
	out := &FlatList[R]{codec: l.codec}
	for i := 0; i < l.length; i++ {
		v := l.codec.Decode(l.slot(i))
		if pred(v) {
			out.Push(v)
		}
	}
	return out
}
