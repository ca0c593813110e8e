package skipfield

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/hupe1980/skipfield/atomicflag"
	"github.com/hupe1980/skipfield/bitmask"
	"github.com/hupe1980/skipfield/flagarray"
	"github.com/hupe1980/skipfield/runcount"
)

// Reader is the read side shared by every encoding.
type Reader interface {
	// Len returns the fixed number of slots.
	Len() int
	// IsSkipped reports whether slot i is skipped. It panics with an
	// *IndexOutOfRangeError unless 0 <= i < Len().
	IsSkipped(i int) bool
	// CountSkipped returns the number of skipped slots.
	CountSkipped() int
	// CountActive returns the number of active slots.
	CountActive() int
	// FirstActive returns the lowest active slot, or false if there is none.
	FirstActive() (int, bool)
	// ActiveIndices returns the active slots in ascending order. Each call
	// starts a fresh scan.
	ActiveIndices() iter.Seq[int]
}

// Skipfield is a Reader that can be mutated one slot at a time.
type Skipfield interface {
	Reader
	// Skip marks slot i as skipped.
	Skip(i int)
	// Unskip marks slot i as active. Unskipping an active slot is a no-op.
	Unskip(i int)
}

var (
	_ Skipfield = (*flagarray.Skipfield)(nil)
	_ Skipfield = (*bitmask.Skipfield)(nil)
	_ Skipfield = (*runcount.Skipfield[uint32])(nil)
	_ Reader    = (*atomicflag.Skipfield)(nil)
)

// Kind selects an encoding.
type Kind uint8

const (
	// KindFlagArray is one bool per slot.
	KindFlagArray Kind = iota
	// KindBitmask is one bit per slot packed into 64-bit words.
	KindBitmask
	// KindRunCount is the jump-counting run-length encoding.
	KindRunCount
	// KindAtomicFlag is one atomic flag per slot. It starts fully skipped.
	KindAtomicFlag
)

// Kinds lists every encoding in declaration order.
var Kinds = []Kind{KindFlagArray, KindBitmask, KindRunCount, KindAtomicFlag}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindFlagArray:
		return "flagarray"
	case KindBitmask:
		return "bitmask"
	case KindRunCount:
		return "runcount"
	case KindAtomicFlag:
		return "atomicflag"
	default:
		return "unknown"
	}
}

// Footprint returns the approximate heap size in bytes of an n-slot
// skipfield of this kind.
func (k Kind) Footprint(n int) int64 {
	switch k {
	case KindFlagArray:
		return int64(n)
	case KindBitmask:
		return int64((n+63)/64) * 8
	case KindRunCount, KindAtomicFlag:
		return int64(n) * 4
	default:
		return 0
	}
}

// ParseKind parses a string into a Kind value.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flagarray", "flag", "bool":
		return KindFlagArray, true
	case "bitmask", "bits":
		return KindBitmask, true
	case "runcount", "jump", "lcjc":
		return KindRunCount, true
	case "atomicflag", "atomic":
		return KindAtomicFlag, true
	default:
		return KindFlagArray, false
	}
}

// New creates a Skipfield of n slots using the given encoding.
//
// Every kind starts fully active except KindAtomicFlag, which starts fully
// skipped. If a logger or metrics collector is configured the result is
// wrapped so that operations are recorded.
//
// Example:
//
//	sf, err := skipfield.New(skipfield.KindRunCount, 1<<20,
//	    skipfield.WithLogLevel(slog.LevelDebug))
func New(kind Kind, n int, optFns ...Option) (Skipfield, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	o := applyOptions(optFns)

	var sf Skipfield
	switch kind {
	case KindFlagArray:
		sf = flagarray.New(n)
	case KindBitmask:
		bm := bitmask.New(n)
		if o.scanStrategy == ScanNaive {
			sf = naiveBitmask{bm}
		} else {
			sf = bm
		}
	case KindRunCount:
		if uint64(n) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %d exceeds the uint32 run counter", ErrInvalidLength, n)
		}
		sf = runcount.New(n)
	case KindAtomicFlag:
		sf = atomicAdapter{atomicflag.New(n)}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	if o.instrumented() {
		sf = newInstrumented(sf, kind, n, o)
	}
	return sf, nil
}

// naiveBitmask routes ActiveIndices to the per-slot strategy.
type naiveBitmask struct {
	*bitmask.Skipfield
}

func (b naiveBitmask) ActiveIndices() iter.Seq[int] {
	return b.ActiveIndicesNaive()
}

// atomicAdapter drops the claim results so the atomic encoding satisfies
// Skipfield. Use atomicflag directly when the results matter.
type atomicAdapter struct {
	*atomicflag.Skipfield
}

func (a atomicAdapter) Skip(i int) {
	a.Skipfield.Skip(i)
}

func (a atomicAdapter) Unskip(i int) {
	a.Skipfield.Unskip(i)
}
