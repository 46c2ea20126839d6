package flatcol

// FlatSet is a FlatList kept sorted by cmp, with uniqueness enforced on
// insertion. All read-side FlatList methods apply equally to a FlatSet's
// underlying List.
type FlatSet[R any] struct {
	List *FlatList[R]
	cmp  CompareFn[R]
}

// NewSet constructs an empty FlatSet ordered by cmp. A nil cmp compares
// elements byte-lexicographically by their encoding.
func NewSet[R any](codec Codec[R], cmp CompareFn[R]) (*FlatSet[R], error) {
	list, err := New(codec)
	if err != nil {
		return nil, err
	}
	return &FlatSet[R]{List: list, cmp: cmp}, nil
}

func (s *FlatSet[R]) compare(a, b R) int {
	if s.cmp != nil {
		return s.cmp(a, b)
	}
	w := s.List.codec.Width()
	bufA := make([]byte, w)
	bufB := make([]byte, w)
	s.List.codec.Encode(bufA, a)
	s.List.codec.Encode(bufB, b)
	for i := range bufA {
		if bufA[i] != bufB[i] {
			if bufA[i] < bufB[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// searchBy returns the smallest index i such that pred(list[i]) >= 0,
// or s.List.Len() if no such index exists (standard lower-bound binary
// search over a predicate that is monotonically non-decreasing across
// the set's sort order).
func (s *FlatSet[R]) searchBy(pred func(v R) int) int {
	lo, hi := 0, s.List.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		v, _ := s.List.At(mid)
		if pred(v) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Add inserts x in sorted position, rejecting it with ErrDuplicate if an
// equal element (by s.cmp) already exists.
func (s *FlatSet[R]) Add(x R) (int, error) {
	idx := s.searchBy(func(v R) int { return s.compare(v, x) })
	if idx < s.List.Len() {
		existing, _ := s.List.At(idx)
		if s.compare(existing, x) == 0 {
			return idx, ErrDuplicate
		}
	}
	s.List.Insert(idx, x)
	return idx, nil
}

// FindIndex returns the index of the element where pred reports 0, or -1.
// pred must be monotonically non-decreasing across the set's sort order
// (the same contract binary search requires).
func (s *FlatSet[R]) FindIndex(pred func(v R) int) int {
	idx := s.searchBy(pred)
	if idx >= s.List.Len() {
		return -1
	}
	v, _ := s.List.At(idx)
	if pred(v) == 0 {
		return idx
	}
	return -1
}

// Find returns the element where pred reports 0.
func (s *FlatSet[R]) Find(pred func(v R) int) (R, bool) {
	i := s.FindIndex(pred)
	if i < 0 {
		var zero R
		return zero, false
	}
	v, _ := s.List.At(i)
	return v, true
}

// Lower returns the smallest index i such that pred(list[i]) >= 0.
func (s *FlatSet[R]) Lower(pred func(v R) int) int { return s.searchBy(pred) }

// Upper returns the smallest index i such that pred(list[i]) > 0.
func (s *FlatSet[R]) Upper(pred func(v R) int) int {
	return s.searchBy(func(v R) int {
		r := pred(v)
		if r > 0 {
			return 1
		}
		return -1
	})
}

// Range returns the inclusive [lo, hi] span of indices where pred reports
// 0, or (-1, -1) if no element matches.
func (s *FlatSet[R]) Range(pred func(v R) int) (lo, hi int) {
	l := s.Lower(pred)
	u := s.Upper(pred)
	if l >= u {
		return -1, -1
	}
	return l, u - 1
}

// Delete removes the element at position i.
func (s *FlatSet[R]) Delete(i int) error { return s.List.Delete(i) }

// Len returns the element count.
func (s *FlatSet[R]) Len() int { return s.List.Len() }
