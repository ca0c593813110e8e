// Package skipfield tracks which slots of a fixed index space are skipped.
//
// A skipfield sits beside a container of n elements and answers two
// questions quickly: is slot i skipped, and which slots are active. Four
// encodings trade memory, mutation cost, and scan speed differently:
//
//   - flagarray: one bool per slot. The baseline.
//   - bitmask: one bit per slot. Counting and scanning work a 64-bit word
//     at a time.
//   - runcount: one counter per slot holding the length of the skipped run
//     at each run boundary. Skips merge runs in O(1) and scans jump over
//     whole runs.
//   - atomicflag: one atomic flag per slot, safe for concurrent use. It
//     starts fully skipped and Skip/Unskip report whether they changed the
//     slot.
//
// # Quick Start
//
//	sf, _ := skipfield.New(skipfield.KindRunCount, 1000)
//	sf.Skip(3)
//	sf.Skip(4)
//	for i := range sf.ActiveIndices() {
//	    fmt.Println(i) // 0 1 2 5 6 ...
//	}
//
// The concrete packages can also be used directly. runcount exposes
// UnskipWithin for callers that already know the run bounds, and atomicflag
// exposes the claim results of Skip and Unskip.
//
// # Contract Violations
//
// An index outside [0, Len) is a programming error. Every operation checks
// it before touching state and panics with an *IndexOutOfRangeError, which
// wraps ErrIndexOutOfRange. Guard converts such a panic into an error:
//
//	if err := skipfield.Guard(func() { sf.Skip(i) }); err != nil {
//	    // errors.Is(err, skipfield.ErrIndexOutOfRange)
//	}
//
// # Observability
//
// New accepts WithLogger and WithMetricsCollector. When either is set every
// operation of the returned Skipfield is recorded:
//
//	metrics := &skipfield.BasicMetricsCollector{}
//	sf, _ := skipfield.New(skipfield.KindBitmask, n,
//	    skipfield.WithMetricsCollector(metrics),
//	    skipfield.WithLogLevel(slog.LevelDebug))
//
// # Interop
//
// SkippedBitmap and ActiveBitmap export any Reader as a roaring bitmap;
// SkipAll applies one. Equivalent compares two Readers slot for slot.
package skipfield
