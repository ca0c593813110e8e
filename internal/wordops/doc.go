// Package wordops provides the uint64 word kernels used by the packed
// skipfield encodings, and reports the CPU features that decide their cost.
//
// Two popcount kernels exist:
//   - Native: math/bits.OnesCount64, lowered to POPCNT (amd64) or CNT (arm64)
//   - Generic: a branch-free SWAR reduction that uses no intrinsic
//
// Native is selected when the CPU advertises hardware popcount. The
// SKIPFIELD_WORDOPS environment variable ("generic" or "native") overrides
// the choice, which is mainly useful for benchmarking both kernels.
package wordops
