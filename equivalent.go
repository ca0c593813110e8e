package skipfield

import (
	"iter"
)

// Equivalent reports whether a and b have the same length and the same set
// of active slots. It compares the two ActiveIndices sequences in lockstep
// and stops at the first difference.
func Equivalent(a, b Reader) bool {
	if a.Len() != b.Len() {
		return false
	}

	nextA, stopA := iter.Pull(a.ActiveIndices())
	defer stopA()
	nextB, stopB := iter.Pull(b.ActiveIndices())
	defer stopB()

	for {
		ia, okA := nextA()
		ib, okB := nextB()
		if okA != okB || ia != ib {
			return false
		}
		if !okA {
			return true
		}
	}
}

// Snapshot copies the skipped state of r into a fresh bitmask-backed
// Skipfield. Useful for freezing an atomic skipfield before comparing it.
func Snapshot(r Reader) Skipfield {
	out, _ := New(KindBitmask, r.Len())
	for i := range r.Len() {
		out.Skip(i)
	}
	for i := range r.ActiveIndices() {
		out.Unskip(i)
	}
	return out
}
