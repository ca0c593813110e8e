package bitmask

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/skipfield/internal/bounds"
)

func TestSkipfield_SkipAndUnskip(t *testing.T) {
	sf := New(100)
	assert.Equal(t, 0, sf.CountSkipped())
	assert.Equal(t, 100, sf.CountActive())
	first, ok := sf.FirstActive()
	require.True(t, ok)
	assert.Equal(t, 0, first)

	sf.Skip(0)
	sf.Skip(64)
	sf.Skip(99)

	assert.True(t, sf.IsSkipped(0))
	assert.True(t, sf.IsSkipped(64))
	assert.True(t, sf.IsSkipped(99))
	assert.False(t, sf.IsSkipped(1))
	assert.False(t, sf.IsSkipped(98))

	assert.Equal(t, 3, sf.CountSkipped())
	assert.Equal(t, 97, sf.CountActive())

	sf.Unskip(64)
	assert.False(t, sf.IsSkipped(64))
	assert.Equal(t, 2, sf.CountSkipped())

	// Unskip of an active slot is a no-op.
	sf.Unskip(64)
	assert.Equal(t, 2, sf.CountSkipped())
}

func TestSkipfield_FirstActive(t *testing.T) {
	sf := New(5)
	i, ok := sf.FirstActive()
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	sf.Skip(0)
	i, ok = sf.FirstActive()
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	for j := 1; j < 5; j++ {
		sf.Skip(j)
	}
	_, ok = sf.FirstActive()
	assert.False(t, ok, "padding bits must not surface as active")
}

func TestSkipfield_FirstActiveAcrossWords(t *testing.T) {
	sf := New(200)
	for i := 0; i < 130; i++ {
		sf.Skip(i)
	}
	i, ok := sf.FirstActive()
	require.True(t, ok)
	assert.Equal(t, 130, i)
}

func TestSkipfield_ActiveIndicesNaive(t *testing.T) {
	sf := New(8)
	sf.Skip(2)
	sf.Skip(4)
	sf.Skip(7)

	assert.Equal(t, []int{0, 1, 3, 5, 6}, slices.Collect(sf.ActiveIndicesNaive()))
}

func TestSkipfield_Len70(t *testing.T) {
	sf := New(70)
	for _, i := range []int{1, 5, 64, 69} {
		sf.Skip(i)
	}

	var want []int
	for i := 0; i < 70; i++ {
		if i != 1 && i != 5 && i != 64 && i != 69 {
			want = append(want, i)
		}
	}

	assert.Len(t, want, 66)
	assert.Equal(t, want, slices.Collect(sf.ActiveIndices()))
	assert.Equal(t, want, slices.Collect(sf.ActiveIndicesNaive()))
	assert.Equal(t, want, collect(sf.Iter()))
	assert.Equal(t, 4, sf.CountSkipped(), "padding bits 70..127 must not be counted")
	assert.Equal(t, 66, sf.CountActive())
}

func TestSkipfield_WordBoundary(t *testing.T) {
	sf := New(128)
	sf.Skip(63)
	sf.Skip(64)
	sf.Skip(65)

	assert.True(t, sf.IsSkipped(63))
	assert.True(t, sf.IsSkipped(64))
	assert.True(t, sf.IsSkipped(65))
	assert.Equal(t, 3, sf.CountSkipped())

	assert.Equal(t, slices.Collect(sf.ActiveIndicesNaive()), slices.Collect(sf.ActiveIndices()))
}

func TestSkipfield_Empty(t *testing.T) {
	sf := New(0)
	assert.Equal(t, 0, sf.CountSkipped())
	assert.Equal(t, 0, sf.CountActive())
	_, ok := sf.FirstActive()
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(sf.ActiveIndices()))
	assert.Empty(t, slices.Collect(sf.ActiveIndicesNaive()))
	_, ok = sf.Iter().Next()
	assert.False(t, ok)
}

func TestSkipfield_PaddingBits(t *testing.T) {
	for _, n := range []int{1, 63, 65, 70, 127, 129} {
		sf := New(n)
		total := len(sf.words) * 64
		for i := n; i < total; i++ {
			w, mask := bitPos(i)
			assert.NotZero(t, sf.words[w]&mask, "n=%d: padding bit %d should be set", n, i)
		}

		// Toggle every real slot both ways; padding must survive.
		for i := 0; i < n; i++ {
			sf.Skip(i)
		}
		assert.Equal(t, n, sf.CountSkipped())
		for i := 0; i < n; i++ {
			sf.Unskip(i)
		}
		assert.Equal(t, 0, sf.CountSkipped())
		assert.Equal(t, n, sf.CountActive())

		for i := n; i < total; i++ {
			w, mask := bitPos(i)
			assert.NotZero(t, sf.words[w]&mask, "n=%d: padding bit %d cleared", n, i)
		}
		for i := range sf.ActiveIndices() {
			assert.Less(t, i, n)
		}
	}
}

func TestSkipfield_PaddingOutOfRange(t *testing.T) {
	sf := New(70)
	// 70..127 are addressable in the word but outside the index space.
	assertOutOfRange(t, func() { sf.Unskip(70) })
	assertOutOfRange(t, func() { sf.Skip(127) })
	assertOutOfRange(t, func() { sf.IsSkipped(-1) })
	assert.Equal(t, 0, sf.CountSkipped())
	assert.Equal(t, 70, sf.CountActive())
}

func TestSkipfield_ActiveIndicesTailBits(t *testing.T) {
	sf := New(70)
	sf.Skip(0)
	sf.Skip(69)

	indices := slices.Collect(sf.ActiveIndices())
	assert.NotContains(t, indices, 0)
	assert.NotContains(t, indices, 69)
	for _, i := range indices {
		assert.Less(t, i, 70)
	}
}

func TestSkipfield_StrategiesAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 64, 65, 1000, 4097} {
		sf := New(n)
		for i := 0; i < n; i++ {
			if rng.Float64() < 0.3 {
				sf.Skip(i)
			}
		}
		words := slices.Collect(sf.ActiveIndices())
		assert.Equal(t, slices.Collect(sf.ActiveIndicesNaive()), words, "n=%d", n)
		assert.Equal(t, words, collect(sf.Iter()), "n=%d", n)
		assert.Equal(t, len(words), sf.CountActive(), "n=%d", n)
		assert.Equal(t, n, sf.CountActive()+sf.CountSkipped(), "n=%d", n)
	}
}

func TestSkipfield_ActiveIndicesEarlyStop(t *testing.T) {
	sf := New(200)
	var got []int
	for i := range sf.ActiveIndices() {
		got = append(got, i)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestIterator_SingleActiveBit(t *testing.T) {
	sf := New(64)
	for i := 0; i < 64; i++ {
		sf.Skip(i)
	}
	sf.Unskip(7)

	it := sf.Iter()
	i, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 7, i)
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestIterator_MultipleActiveIndices(t *testing.T) {
	sf := New(128)
	for i := 0; i < 128; i++ {
		sf.Skip(i)
	}
	active := []int{3, 66, 100}
	for _, i := range active {
		sf.Unskip(i)
	}
	assert.Equal(t, active, collect(sf.Iter()))
}

func TestIterator_NoActiveBits(t *testing.T) {
	sf := New(128)
	for i := 0; i < 128; i++ {
		sf.Skip(i)
	}
	_, ok := sf.Iter().Next()
	assert.False(t, ok)
}

func TestIterator_AllActiveBits(t *testing.T) {
	sf := New(128)
	want := make([]int, 128)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, collect(sf.Iter()))
}

func TestIterator_LastWordOnly(t *testing.T) {
	sf := New(70)
	for i := 0; i < 70; i++ {
		if i != 69 {
			sf.Skip(i)
		}
	}
	i, ok := sf.Iter().Next()
	require.True(t, ok)
	assert.Equal(t, 69, i)
}

func TestIterator_SkipsFullySkippedWords(t *testing.T) {
	sf := New(64 * 5)
	for i := 0; i < 64*4; i++ {
		sf.Skip(i)
	}
	sf.Unskip(10)

	it := sf.Iter()
	i, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 10, i)

	i, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, 256, i)
}

func TestIterator_StaysExhausted(t *testing.T) {
	sf := New(3)
	it := sf.Iter()
	assert.Equal(t, []int{0, 1, 2}, collect(it))
	for range 3 {
		_, ok := it.Next()
		assert.False(t, ok)
	}
}

func collect(it *Iterator) []int {
	var out []int
	for i, ok := it.Next(); ok; i, ok = it.Next() {
		out = append(out, i)
	}
	return out
}

func assertOutOfRange(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "expected an error panic")
		assert.ErrorIs(t, err, bounds.ErrIndexOutOfRange)
	}()
	fn()
}
