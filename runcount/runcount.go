package runcount

import (
	"iter"

	"github.com/hupe1980/skipfield/internal/bounds"
)

// Counter is the per-slot storage type. It must be able to hold the length
// of the longest possible run, which is the length of the index space.
type Counter interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Skipfield is a jump-counting skipfield.
//
// Each slot stores 0 when active. A skipped slot belongs to a maximal run
// [s, e] and the slots s and e both store e-s+1. Interior slots store some
// non-zero marker that is never read as a length.
//
// It is not safe for concurrent use.
type Skipfield[T Counter] struct {
	nodes []T
}

// New creates a Skipfield of n slots, all active, with uint32 counters.
func New(n int) *Skipfield[uint32] {
	return NewWithCounter[uint32](n)
}

// NewWithCounter creates a Skipfield of n slots, all active, storing one T
// per slot. It panics if n does not fit in T.
func NewWithCounter[T Counter](n int) *Skipfield[T] {
	bounds.CheckLength(n, uint64(^T(0)))
	return &Skipfield[T]{
		nodes: make([]T, n),
	}
}

// Len returns the number of slots.
func (s *Skipfield[T]) Len() int {
	return len(s.nodes)
}

// Skip marks slot i as skipped, merging with neighboring runs.
//
// Only the two boundaries of the resulting run are written, so Skip is O(1)
// no matter how long the runs around i are. Skipping a skipped slot is a no-op.
func (s *Skipfield[T]) Skip(i int) {
	bounds.Check(i, len(s.nodes))
	if s.nodes[i] != 0 {
		return
	}

	// i-1 can only be the end of a run and i+1 only the start of one, so both
	// neighbor values are authoritative lengths.
	var left, right T
	if i > 0 {
		left = s.nodes[i-1]
	}
	if i+1 < len(s.nodes) {
		right = s.nodes[i+1]
	}

	switch {
	case left == 0 && right == 0:
		s.nodes[i] = 1
	case left == 0:
		v := right + 1
		s.nodes[i] = v
		s.nodes[i+int(right)] = v
	case right == 0:
		v := left + 1
		s.nodes[i-int(left)] = v
		s.nodes[i] = v
	default:
		v := left + right + 1
		s.nodes[i-int(left)] = v
		s.nodes[i+int(right)] = v
		s.nodes[i] = v // interior marker
	}
}

// UnskipWithin marks slot i as active, given the bounds [start, end] of the
// run that contains it.
//
// The bounds are checked against the stored run in O(1) before anything is
// written; a mismatch panics with an IndexOutOfRangeError. Unskipping an
// active slot is a no-op and ignores start and end.
func (s *Skipfield[T]) UnskipWithin(i, start, end int) {
	bounds.Check(i, len(s.nodes))
	if s.nodes[i] == 0 {
		return
	}
	if !s.isRun(start, end) || i < start || i > end {
		bounds.RunMismatch(i, len(s.nodes), start, end)
	}

	switch {
	case start == end:
		s.nodes[i] = 0
	case i == start:
		v := T(end - i)
		s.nodes[i+1] = v
		s.nodes[end] = v
		s.nodes[i] = 0
	case i == end:
		v := T(i - start)
		s.nodes[start] = v
		s.nodes[i-1] = v
		s.nodes[i] = 0
	default:
		lv := T(i - start)
		rv := T(end - i)
		s.nodes[start] = lv
		s.nodes[i-1] = lv
		s.nodes[i+1] = rv
		s.nodes[end] = rv
		s.nodes[i] = 0
	}
}

// Unskip marks slot i as active.
//
// The run bounds are recovered by walking left to the run start, so this
// costs O(run length). Callers that already know the bounds should use
// UnskipWithin.
func (s *Skipfield[T]) Unskip(i int) {
	start, end, ok := s.RunBounds(i)
	if !ok {
		return
	}
	s.UnskipWithin(i, start, end)
}

// RunBounds returns the run [start, end] containing slot i, or false if i is
// active.
func (s *Skipfield[T]) RunBounds(i int) (start, end int, ok bool) {
	bounds.Check(i, len(s.nodes))
	if s.nodes[i] == 0 {
		return 0, 0, false
	}
	start = i
	for start > 0 && s.nodes[start-1] != 0 {
		start--
	}
	return start, start + int(s.nodes[start]) - 1, true
}

// isRun reports whether [start, end] is exactly one maximal stored run.
func (s *Skipfield[T]) isRun(start, end int) bool {
	n := len(s.nodes)
	if start < 0 || end >= n || start > end {
		return false
	}
	length := T(end - start + 1)
	if s.nodes[start] != length || s.nodes[end] != length {
		return false
	}
	if start > 0 && s.nodes[start-1] != 0 {
		return false
	}
	return end == n-1 || s.nodes[end+1] == 0
}

// IsSkipped reports whether slot i is skipped.
func (s *Skipfield[T]) IsSkipped(i int) bool {
	bounds.Check(i, len(s.nodes))
	return s.nodes[i] != 0
}

// CountSkipped returns the number of skipped slots in O(runs + active).
func (s *Skipfield[T]) CountSkipped() int {
	total := 0
	for i := 0; i < len(s.nodes); {
		if s.nodes[i] == 0 {
			i++
			continue
		}
		skip := int(s.nodes[i])
		total += skip
		i += skip
	}
	return total
}

// CountActive returns the number of active slots.
func (s *Skipfield[T]) CountActive() int {
	return len(s.nodes) - s.CountSkipped()
}

// FirstActive returns the lowest active slot.
func (s *Skipfield[T]) FirstActive() (int, bool) {
	for i := 0; i < len(s.nodes); {
		if s.nodes[i] == 0 {
			return i, true
		}
		i += int(s.nodes[i])
	}
	return 0, false
}

// ActiveIndices returns the active slots in ascending order, jumping over each
// skipped run in one step.
func (s *Skipfield[T]) ActiveIndices() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.Iter()
		for i, ok := it.Next(); ok; i, ok = it.Next() {
			if !yield(i) {
				return
			}
		}
	}
}

// Runs yields (start, length) for every skipped run in ascending order.
func (s *Skipfield[T]) Runs() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 0; i < len(s.nodes); {
			if s.nodes[i] == 0 {
				i++
				continue
			}
			length := int(s.nodes[i])
			if !yield(i, length) {
				return
			}
			i += length
		}
	}
}

// Iter returns a forward iterator over the active slots.
func (s *Skipfield[T]) Iter() *Iterator[T] {
	return &Iterator[T]{nodes: s.nodes}
}

// Iterator walks active slots left to right. A scan position that lands on
// a skipped slot is always at a run start, so it jumps by the stored length.
type Iterator[T Counter] struct {
	nodes []T
	pos   int
}

// Next returns the next active slot, or false once exhausted.
func (it *Iterator[T]) Next() (int, bool) {
	for it.pos < len(it.nodes) {
		if v := it.nodes[it.pos]; v != 0 {
			it.pos += int(v)
			continue
		}
		i := it.pos
		it.pos++
		return i, true
	}
	return 0, false
}
