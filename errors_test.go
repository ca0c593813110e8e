package skipfield

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			sf, err := New(k, 10)
			require.NoError(t, err)

			before := sf.CountSkipped()
			err = Guard(func() { sf.Skip(10) })
			require.ErrorIs(t, err, ErrIndexOutOfRange)

			var oob *IndexOutOfRangeError
			require.True(t, errors.As(err, &oob))
			assert.Equal(t, 10, oob.Index)
			assert.Equal(t, 10, oob.Len)
			assert.Equal(t, before, sf.CountSkipped())

			require.ErrorIs(t, Guard(func() { sf.IsSkipped(-1) }), ErrIndexOutOfRange)
			require.NoError(t, Guard(func() { sf.Skip(9) }))
		})
	}
}

func TestGuard_RepanicsOtherValues(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = Guard(func() { panic("boom") })
	})

	other := errors.New("other")
	assert.PanicsWithError(t, "other", func() {
		_ = Guard(func() { panic(other) })
	})
}
