package flatcol

import "bytes"

// CompareFn compares two elements, returning <0, 0, or >0 the way
// bytes.Compare does. The zero value (nil) selects byte-lexicographic
// comparison of each element's raw encoding.
type CompareFn[R any] func(a, b R) int

// Sort orders the list in place using heap-sort: O(1) extra space, with
// swaps exchanging slot bytes directly and no per-element allocation by
// Sort itself. cmp may be nil to compare elements byte-lexicographically
// via their encoding; a non-nil cmp receives values decoded by the codec.
func (l *FlatList[R]) Sort(cmp CompareFn[R]) {
	less := l.lessFn(cmp)
	n := l.length
	if n < 2 {
		return
	}

	// Build max-heap.
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(l, less, i, n)
	}
	// Repeatedly move the max to the end.
	for end := n - 1; end > 0; end-- {
		l.Swap(0, end)
		siftDown(l, less, 0, end)
	}
}

func (l *FlatList[R]) lessFn(cmp CompareFn[R]) func(i, j int) bool {
	if cmp != nil {
		return func(i, j int) bool {
			a, _ := l.At(i)
			b, _ := l.At(j)
			return cmp(a, b) < 0
		}
	}
	return func(i, j int) bool {
		return bytes.Compare(l.slot(i), l.slot(j)) < 0
	}
}

func siftDown[R any](l *FlatList[R], less func(i, j int) bool, root, n int) {
	for {
		largest := root
		left := 2*root + 1
		right := 2*root + 2
		if left < n && less(largest, left) {
			largest = left
		}
		if right < n && less(largest, right) {
			largest = right
		}
		if largest == root {
			return
		}
		l.Swap(root, largest)
		root = largest
	}
}
