// Package flagarray implements the baseline skipfield: one bool per slot.
//
// Every operation is the obvious one, so the other encodings are validated
// against it.
package flagarray

import (
	"iter"
	"math"

	"github.com/hupe1980/skipfield/internal/bounds"
)

// Skipfield tracks skipped slots with one flag each. true means skipped.
// It is not safe for concurrent use.
type Skipfield struct {
	flags []bool
}

// New creates a Skipfield of n slots, all active.
func New(n int) *Skipfield {
	bounds.CheckLength(n, math.MaxInt)
	return &Skipfield{
		flags: make([]bool, n),
	}
}

// Len returns the number of slots.
func (s *Skipfield) Len() int {
	return len(s.flags)
}

// Skip marks slot i as skipped.
func (s *Skipfield) Skip(i int) {
	bounds.Check(i, len(s.flags))
	s.flags[i] = true
}

// Unskip marks slot i as active.
func (s *Skipfield) Unskip(i int) {
	bounds.Check(i, len(s.flags))
	s.flags[i] = false
}

// IsSkipped reports whether slot i is skipped.
func (s *Skipfield) IsSkipped(i int) bool {
	bounds.Check(i, len(s.flags))
	return s.flags[i]
}

// CountSkipped returns the number of skipped slots. O(n).
func (s *Skipfield) CountSkipped() int {
	count := 0
	for _, skipped := range s.flags {
		if skipped {
			count++
		}
	}
	return count
}

// CountActive returns the number of active slots. O(n).
func (s *Skipfield) CountActive() int {
	return len(s.flags) - s.CountSkipped()
}

// FirstActive returns the lowest active slot.
func (s *Skipfield) FirstActive() (int, bool) {
	for i, skipped := range s.flags {
		if !skipped {
			return i, true
		}
	}
	return 0, false
}

// ActiveIndices returns the active slots in ascending order.
func (s *Skipfield) ActiveIndices() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.Iter()
		for i, ok := it.Next(); ok; i, ok = it.Next() {
			if !yield(i) {
				return
			}
		}
	}
}

// Iter returns a forward iterator over the active slots.
func (s *Skipfield) Iter() *Iterator {
	return &Iterator{flags: s.flags}
}

// Iterator walks active slots left to right. It is single-pass.
type Iterator struct {
	flags []bool
	pos   int
}

// Next returns the next active slot, or false once exhausted.
func (it *Iterator) Next() (int, bool) {
	for it.pos < len(it.flags) {
		i := it.pos
		it.pos++
		if !it.flags[i] {
			return i, true
		}
	}
	return 0, false
}
