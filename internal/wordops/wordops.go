package wordops

import "math/bits"

// WordBits is the number of slots tracked by one word.
const WordBits = 64

// kernelPopcountWords is swapped by initCapabilities.
var kernelPopcountWords = popcountWordsNative

// PopcountWords counts all set bits across words.
func PopcountWords(words []uint64) int {
	return kernelPopcountWords(words)
}

// LowMask returns a word with the lowest n bits set. n must be in [0, 64].
func LowMask(n uint) uint64 {
	if n >= WordBits {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// PopcountLow counts the set bits among the lowest n bits of w.
func PopcountLow(w uint64, n uint) int {
	return bits.OnesCount64(w & LowMask(n))
}

func popcountWordsNative(words []uint64) int {
	count := 0
	// Process 4 words at a time
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += bits.OnesCount64(words[i])
		count += bits.OnesCount64(words[i+1])
		count += bits.OnesCount64(words[i+2])
		count += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		count += bits.OnesCount64(words[i])
	}
	return count
}

const (
	m1  = 0x5555555555555555
	m2  = 0x3333333333333333
	m4  = 0x0f0f0f0f0f0f0f0f
	h01 = 0x0101010101010101
)

func swar(x uint64) int {
	x -= (x >> 1) & m1
	x = (x & m2) + ((x >> 2) & m2)
	x = (x + (x >> 4)) & m4
	return int((x * h01) >> 56)
}

func popcountWordsGeneric(words []uint64) int {
	count := 0
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += swar(words[i])
		count += swar(words[i+1])
		count += swar(words[i+2])
		count += swar(words[i+3])
	}
	for ; i < len(words); i++ {
		count += swar(words[i])
	}
	return count
}
