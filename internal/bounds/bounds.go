// Package bounds holds the contract checks shared by every skipfield encoding.
//
// A violated contract is a programmer error. The checks panic with a typed
// error before any state is touched, so a recovered caller never observes a
// half-applied mutation.
package bounds

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is wrapped by every IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidLength is returned (or panicked) when an index space length
	// is negative or cannot be represented by the encoding.
	ErrInvalidLength = errors.New("invalid length")
)

// IndexOutOfRangeError reports an index outside [0, Len), or run bounds that
// do not match the run containing Index.
//
// Start and End are -1 unless the violation came from a bounded unskip.
type IndexOutOfRangeError struct {
	Index int
	Len   int
	Start int
	End   int
}

func (e *IndexOutOfRangeError) Error() string {
	if e.Start >= 0 || e.End >= 0 {
		return fmt.Sprintf("skipfield: run bounds [%d, %d] do not match the run containing index %d (len %d)", e.Start, e.End, e.Index, e.Len)
	}
	return fmt.Sprintf("skipfield: index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// Check panics with an *IndexOutOfRangeError unless 0 <= i < n.
func Check(i, n int) {
	if uint(i) >= uint(n) {
		panic(&IndexOutOfRangeError{Index: i, Len: n, Start: -1, End: -1})
	}
}

// RunMismatch panics with an *IndexOutOfRangeError describing bad run bounds.
func RunMismatch(i, n, start, end int) {
	panic(&IndexOutOfRangeError{Index: i, Len: n, Start: start, End: end})
}

// CheckLength panics unless 0 <= n <= limit.
func CheckLength(n int, limit uint64) {
	if n < 0 || uint64(n) > limit {
		panic(fmt.Errorf("%w: %d (limit %d)", ErrInvalidLength, n, limit))
	}
}
