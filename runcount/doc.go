// Package runcount implements the jump-counting skipfield.
//
// Skipped slots are grouped into maximal runs. The first and last slot of a
// run both store the run length, so:
//
//   - Skip merges with the runs on either side by rewriting two boundaries
//   - a forward scan landing on a run start jumps past the whole run
//
// Counting and iteration therefore cost O(runs + active slots) instead of
// O(n). The price is on the way back: UnskipWithin needs the caller to supply
// the bounds of the run being split. Unskip recovers them itself at O(run
// length).
//
//	slots:  0  1  2  3  4  5  6  7
//	state:  .  x  x  x  .  x  .  .
//	nodes:  0  3  ?  3  0  1  0  0     (? = non-zero marker)
package runcount
