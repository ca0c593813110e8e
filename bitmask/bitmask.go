package bitmask

import (
	"iter"
	"math"
	"math/bits"

	"github.com/hupe1980/skipfield/internal/bounds"
	"github.com/hupe1980/skipfield/internal/wordops"
)

// Skipfield packs one skip bit per slot into 64-bit words. A set bit means
// skipped. It is not safe for concurrent use.
//
// Memory layout:
//
//	┌──────────────────────┬──────────────────────┬─────────────────────────┐
//	│  word 0              │  word 1              │  word k (last)          │
//	│  slots [0, 63]       │  slots [64, 127]     │  slots [64k, n) + pad   │
//	└──────────────────────┴──────────────────────┴─────────────────────────┘
//
// Padding bits (positions >= n in the last word) are set at construction and
// never touched again, so the complement of a word only ever exposes real
// active slots.
type Skipfield struct {
	words []uint64
	n     int
}

// New creates a Skipfield of n slots, all active.
func New(n int) *Skipfield {
	bounds.CheckLength(n, math.MaxInt-(wordops.WordBits-1))

	words := make([]uint64, (n+wordops.WordBits-1)/wordops.WordBits)
	if tail := uint(n % wordops.WordBits); tail != 0 {
		words[len(words)-1] = ^wordops.LowMask(tail)
	}

	return &Skipfield{
		words: words,
		n:     n,
	}
}

// bitPos returns the word index and the single-bit mask for slot i.
//
//go:nosplit
func bitPos(i int) (int, uint64) {
	return i >> 6, uint64(1) << (uint(i) & 63)
}

// Len returns the number of slots.
func (s *Skipfield) Len() int {
	return s.n
}

// Skip marks slot i as skipped.
func (s *Skipfield) Skip(i int) {
	bounds.Check(i, s.n)
	w, mask := bitPos(i)
	s.words[w] |= mask
}

// Unskip marks slot i as active.
func (s *Skipfield) Unskip(i int) {
	bounds.Check(i, s.n)
	w, mask := bitPos(i)
	s.words[w] &^= mask
}

// IsSkipped reports whether slot i is skipped.
func (s *Skipfield) IsSkipped(i int) bool {
	bounds.Check(i, s.n)
	w, mask := bitPos(i)
	return s.words[w]&mask != 0
}

// CountSkipped returns the number of skipped slots.
// Padding bits in the last word are physically set but never counted.
func (s *Skipfield) CountSkipped() int {
	full := s.n / wordops.WordBits
	count := wordops.PopcountWords(s.words[:full])
	if tail := uint(s.n % wordops.WordBits); tail != 0 {
		count += wordops.PopcountLow(s.words[full], tail)
	}
	return count
}

// CountActive returns the number of active slots.
func (s *Skipfield) CountActive() int {
	return s.n - s.CountSkipped()
}

// FirstActive returns the lowest active slot.
func (s *Skipfield) FirstActive() (int, bool) {
	for w, word := range s.words {
		if inv := ^word; inv != 0 {
			return w*wordops.WordBits + bits.TrailingZeros64(inv), true
		}
	}
	return 0, false
}

// ActiveIndices returns the active slots in ascending order, one word at a
// time: take the lowest set bit of the complement, clear it, repeat.
func (s *Skipfield) ActiveIndices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for w, word := range s.words {
			base := w * wordops.WordBits
			for inv := ^word; inv != 0; inv &= inv - 1 {
				if !yield(base + bits.TrailingZeros64(inv)) {
					return
				}
			}
		}
	}
}

// ActiveIndicesNaive returns the same sequence as ActiveIndices by testing
// every slot individually.
func (s *Skipfield) ActiveIndicesNaive() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < s.n; i++ {
			if s.IsSkipped(i) {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

// Iter returns a standalone forward iterator over the active slots.
func (s *Skipfield) Iter() *Iterator {
	return newIterator(s.words)
}
