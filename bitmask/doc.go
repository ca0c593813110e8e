// Package bitmask implements a packed skipfield: one bit per slot in 64-bit
// words.
//
// Counting uses word popcount (internal/wordops) and locating active slots
// uses trailing-zero counts on the word complement, so scans touch n/64 words
// instead of n slots.
//
// Two ActiveIndices strategies are provided and always agree:
//   - ActiveIndices: word at a time, x &= x-1 to step through set bits
//   - ActiveIndicesNaive: per-slot IsSkipped filter, kept as a baseline
//
// Iter returns the same word-at-a-time walk as an explicit state machine for
// callers that want to pull one index at a time.
package bitmask
