package bitmask

import (
	"math/bits"

	"github.com/hupe1980/skipfield/internal/wordops"
)

// Iterator walks the active slots of a Skipfield left to right.
//
// It holds the current word index and the complement bits of that word not
// yet returned. Fully skipped words are passed over without emitting
// anything, so driving it to exhaustion costs one visit per word plus one
// step per active slot.
//
// The Skipfield must not be mutated while an Iterator is in use.
type Iterator struct {
	words   []uint64
	word    int
	pending uint64
}

func newIterator(words []uint64) *Iterator {
	it := &Iterator{words: words}
	if len(words) > 0 {
		it.pending = ^words[0]
	}
	return it
}

// Next returns the next active slot, or false once exhausted.
func (it *Iterator) Next() (int, bool) {
	for it.pending == 0 {
		if it.word+1 >= len(it.words) {
			it.word = len(it.words)
			return 0, false
		}
		it.word++
		it.pending = ^it.words[it.word]
	}

	tz := bits.TrailingZeros64(it.pending)
	it.pending &= it.pending - 1
	return it.word*wordops.WordBits + tz, true
}
