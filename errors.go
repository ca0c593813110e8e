package skipfield

import (
	"errors"

	"github.com/hupe1980/skipfield/internal/bounds"
)

var (
	// ErrIndexOutOfRange is wrapped by every contract violation: an index
	// outside [0, Len) or run bounds that do not match the stored run.
	ErrIndexOutOfRange = bounds.ErrIndexOutOfRange

	// ErrInvalidLength is returned when an index space length is negative or
	// too large for the chosen encoding.
	ErrInvalidLength = bounds.ErrInvalidLength

	// ErrUnknownKind is returned by New for a Kind it does not know.
	ErrUnknownKind = errors.New("unknown skipfield kind")
)

// IndexOutOfRangeError is the panic value of a contract violation.
//
// Operations fail fast: the check runs before any state is written, so a
// recovered caller still holds a consistent skipfield.
type IndexOutOfRangeError = bounds.IndexOutOfRangeError

// Guard runs fn and converts a contract-violation panic into an error.
// Any other panic is re-raised.
//
// Example:
//
//	err := skipfield.Guard(func() { sf.Skip(i) })
//	if errors.Is(err, skipfield.ErrIndexOutOfRange) { ... }
func Guard(fn func()) (err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if e, ok := v.(error); ok && isContractViolation(e) {
			err = e
			return
		}
		panic(v)
	}()

	fn()
	return nil
}

func isContractViolation(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange) || errors.Is(err, ErrInvalidLength)
}
