package skipfield

import (
	"math/rand"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
)

// Comparative benchmarks: every encoding vs a roaring bitmap of skipped slots
// Run with: go test -bench=. -benchmem .

const (
	benchLen   = 1_000_000
	benchRatio = 0.3
)

func benchRand() *rand.Rand { return rand.New(rand.NewSource(42)) }

func benchField(b *testing.B, k Kind, opts ...Option) Skipfield {
	b.Helper()

	sf, err := New(k, benchLen, opts...)
	if err != nil {
		b.Fatal(err)
	}
	if k == KindAtomicFlag {
		for i := range benchLen {
			sf.Unskip(i)
		}
	}
	rng := benchRand()
	for i := range benchLen {
		if rng.Float64() < benchRatio {
			sf.Skip(i)
		}
	}
	return sf
}

func benchRoaring() *roaring.Bitmap {
	bm := roaring.New()
	rng := benchRand()
	for i := range benchLen {
		if rng.Float64() < benchRatio {
			bm.Add(uint32(i))
		}
	}
	bm.RunOptimize()
	return bm
}

// ==============================================================================
// Counting
// ==============================================================================

func BenchmarkCountSkipped(b *testing.B) {
	for _, k := range Kinds {
		b.Run(k.String(), func(b *testing.B) {
			sf := benchField(b, k)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = sf.CountSkipped()
			}
		})
	}

	b.Run("roaring", func(b *testing.B) {
		bm := benchRoaring()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = bm.GetCardinality()
		}
	})
}

// ==============================================================================
// Iteration
// ==============================================================================

func BenchmarkActiveIndices(b *testing.B) {
	for _, k := range Kinds {
		b.Run(k.String(), func(b *testing.B) {
			sf := benchField(b, k)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sum := 0
				for j := range sf.ActiveIndices() {
					sum += j
				}
				_ = sum
			}
		})
	}

	b.Run("bitmask-naive", func(b *testing.B) {
		sf := benchField(b, KindBitmask, WithScanStrategy(ScanNaive))
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			sum := 0
			for j := range sf.ActiveIndices() {
				sum += j
			}
			_ = sum
		}
	})

	b.Run("roaring-flip", func(b *testing.B) {
		bm := benchRoaring()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			active := roaring.Flip(bm, 0, benchLen)
			sum := 0
			it := active.Iterator()
			for it.HasNext() {
				sum += int(it.Next())
			}
			_ = sum
		}
	})
}

func BenchmarkFirstActive_DenseSkipped(b *testing.B) {
	for _, k := range Kinds {
		b.Run(k.String(), func(b *testing.B) {
			sf, err := New(k, benchLen)
			if err != nil {
				b.Fatal(err)
			}
			if k == KindAtomicFlag {
				sf.Unskip(benchLen - 1)
			} else {
				for i := range benchLen - 1 {
					sf.Skip(i)
				}
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = sf.FirstActive()
			}
		})
	}
}

// ==============================================================================
// Mutation
// ==============================================================================

func BenchmarkSkipUnskip(b *testing.B) {
	for _, k := range Kinds {
		b.Run(k.String(), func(b *testing.B) {
			sf := benchField(b, k)
			rng := benchRand()
			idx := make([]int, 4096)
			for i := range idx {
				idx[i] = rng.Intn(benchLen)
			}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				j := idx[i&(len(idx)-1)]
				sf.Skip(j)
				sf.Unskip(j)
			}
		})
	}

	b.Run("roaring", func(b *testing.B) {
		bm := benchRoaring()
		rng := benchRand()
		idx := make([]uint32, 4096)
		for i := range idx {
			idx[i] = uint32(rng.Intn(benchLen))
		}
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			j := idx[i&(len(idx)-1)]
			bm.Add(j)
			bm.Remove(j)
		}
	})
}
