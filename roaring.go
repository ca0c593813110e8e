package skipfield

import (
	"fmt"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/skipfield/internal/bounds"
)

// runLister is implemented by encodings that can list their skipped runs
// without visiting every slot.
type runLister interface {
	Runs() iter.Seq2[int, int]
}

// SkippedBitmap returns the skipped slots of r as a compressed bitmap.
//
// Run-length encodings are exported run by run. Other encodings start from
// the full range and remove the active slots.
func SkippedBitmap(r Reader) (*roaring.Bitmap, error) {
	n := r.Len()
	if err := checkUniverse(n); err != nil {
		return nil, err
	}

	bm := roaring.New()
	if runs, ok := runsOf(r); ok {
		for start, length := range runs {
			bm.AddRange(uint64(start), uint64(start+length))
		}
	} else {
		bm.AddRange(0, uint64(n))
		for i := range r.ActiveIndices() {
			bm.Remove(uint32(i))
		}
	}
	bm.RunOptimize()
	return bm, nil
}

// ActiveBitmap returns the active slots of r as a compressed bitmap.
func ActiveBitmap(r Reader) (*roaring.Bitmap, error) {
	if err := checkUniverse(r.Len()); err != nil {
		return nil, err
	}

	bm := roaring.New()
	for i := range r.ActiveIndices() {
		bm.Add(uint32(i))
	}
	bm.RunOptimize()
	return bm, nil
}

// SkipAll skips every slot set in bm. The whole bitmap is checked against
// sf.Len() before any slot is written; an out-of-range member is returned as
// an *IndexOutOfRangeError instead of panicking.
func SkipAll(sf Skipfield, bm *roaring.Bitmap) error {
	if bm == nil || bm.IsEmpty() {
		return nil
	}

	n := sf.Len()
	if maxIdx := int(bm.Maximum()); maxIdx >= n {
		return &bounds.IndexOutOfRangeError{Index: maxIdx, Len: n, Start: -1, End: -1}
	}

	it := bm.Iterator()
	for it.HasNext() {
		sf.Skip(int(it.Next()))
	}
	return nil
}

// runsOf returns the skipped runs of r when its encoding can list them,
// looking through the instrumented wrapper.
func runsOf(r Reader) (iter.Seq2[int, int], bool) {
	if in, ok := r.(*instrumented); ok {
		r = in.sf
	}
	rl, ok := r.(runLister)
	if !ok {
		return nil, false
	}
	return rl.Runs(), true
}

func checkUniverse(n int) error {
	if uint64(n) > math.MaxUint32+1 {
		return fmt.Errorf("%w: %d exceeds the 32-bit bitmap universe", ErrInvalidLength, n)
	}
	return nil
}
