// Package atomicflag implements a skipfield of independent atomic flags for
// concurrent single-slot claiming.
//
// Unlike the other encodings a new Skipfield starts with every slot skipped:
// a slot becomes usable only after a successful Unskip, which doubles as a
// claim.
//
// Each Skip, Unskip and IsActive is linearizable with respect to other
// operations on the same slot. sync/atomic operations are sequentially
// consistent, so a load observes every store that happened before it in the
// slot's modification order (acquire), and a swap publishes everything the
// caller wrote before it (release). There is no ordering across slots: the
// multi-slot reads (AliveIndices, CountActive, FirstActive) are best-effort
// snapshots that may interleave with concurrent writers.
package atomicflag

import (
	"iter"
	"math"
	"sync/atomic"

	"github.com/hupe1980/skipfield/internal/bounds"
)

// Skipfield is a fixed-length array of atomic liveness flags. true means
// active. It is safe for concurrent use.
type Skipfield struct {
	flags []atomic.Bool
}

// New creates a Skipfield of n slots, all skipped.
func New(n int) *Skipfield {
	bounds.CheckLength(n, math.MaxInt)
	return &Skipfield{
		flags: make([]atomic.Bool, n),
	}
}

// Len returns the number of slots.
func (s *Skipfield) Len() int {
	return len(s.flags)
}

// Skip marks slot i as skipped and reports whether it was active, i.e.
// whether this call is the one that released it.
func (s *Skipfield) Skip(i int) bool {
	bounds.Check(i, len(s.flags))
	return s.flags[i].Swap(false)
}

// Unskip marks slot i as active and reports whether it was skipped. A true
// result grants the caller exclusive claim on i until it skips it again.
func (s *Skipfield) Unskip(i int) bool {
	bounds.Check(i, len(s.flags))
	return !s.flags[i].Swap(true)
}

// IsActive reports whether slot i is active.
func (s *Skipfield) IsActive(i int) bool {
	bounds.Check(i, len(s.flags))
	return s.flags[i].Load()
}

// IsSkipped reports whether slot i is skipped.
func (s *Skipfield) IsSkipped(i int) bool {
	return !s.IsActive(i)
}

// AliveIndices yields the slots observed active, in ascending order. Each
// slot is loaded once, when the scan reaches it.
func (s *Skipfield) AliveIndices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range s.flags {
			if !s.flags[i].Load() {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

// ActiveIndices is AliveIndices.
func (s *Skipfield) ActiveIndices() iter.Seq[int] {
	return s.AliveIndices()
}

// CountActive returns the number of slots observed active during one scan.
func (s *Skipfield) CountActive() int {
	count := 0
	for i := range s.flags {
		if s.flags[i].Load() {
			count++
		}
	}
	return count
}

// CountSkipped returns the number of slots observed skipped during one scan.
// Under concurrent writers CountActive()+CountSkipped() may differ from Len.
func (s *Skipfield) CountSkipped() int {
	return len(s.flags) - s.CountActive()
}

// FirstActive returns the lowest slot observed active.
func (s *Skipfield) FirstActive() (int, bool) {
	for i := range s.flags {
		if s.flags[i].Load() {
			return i, true
		}
	}
	return 0, false
}
