package shape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeSizeAndEqual(t *testing.T) {
	assert.Equal(t, 1, Shape{}.Size())
	assert.Equal(t, 6, Shape{2, 3}.Size())
	assert.Equal(t, 0, Shape{2, 0, 4}.Size())
	assert.True(t, Shape{2, 3}.Equal(Shape{2, 3}))
	assert.False(t, Shape{2, 3}.Equal(Shape{3, 2}))
}

func TestShapeStridesCanonicalizeExtentOne(t *testing.T) {
	st := Shape{1, 3, 1}.Strides(RowMajor)
	for i, extent := range Shape{1, 3, 1} {
		if extent == 1 {
			assert.Equal(t, 0, st[i])
		}
	}
}

func TestBackstrides(t *testing.T) {
	s := Shape{2, 3}
	st := s.Strides(RowMajor)
	back := s.Backstrides(st)
	require.Len(t, back, 2)
	assert.Equal(t, st[0]*1, back[0])
	assert.Equal(t, st[1]*2, back[1])
}

func TestBroadcastShape(t *testing.T) {
	t.Run("equal shapes are trivial", func(t *testing.T) {
		out := Shape{2, 3}
		trivial, err := BroadcastShape(Shape{2, 3}, &out)
		require.NoError(t, err)
		assert.True(t, trivial)
		assert.Equal(t, Shape{2, 3}, out)
	})

	t.Run("row vector broadcasts against matrix", func(t *testing.T) {
		out := Shape{2, 3}
		trivial, err := BroadcastShape(Shape{3}, &out)
		require.NoError(t, err)
		assert.False(t, trivial)
		assert.Equal(t, Shape{2, 3}, out)
	})

	t.Run("scalar shape never changes out", func(t *testing.T) {
		out := Shape{2, 3}
		trivial, err := BroadcastShape(Shape{}, &out)
		require.NoError(t, err)
		assert.False(t, trivial)
		assert.Equal(t, Shape{2, 3}, out)
	})

	t.Run("incompatible shapes fail", func(t *testing.T) {
		out := Shape{3, 4}
		_, err := BroadcastShape(Shape{3, 5}, &out)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBroadcastIncompatible))
		assert.Equal(t, Shape{3, 4}, out) // unchanged on failure
	})

	t.Run("narrower operand aligns to trailing axis", func(t *testing.T) {
		out := Shape{1}
		trivial, err := BroadcastShape(Shape{2, 3}, &out)
		require.NoError(t, err)
		assert.False(t, trivial)
		assert.Equal(t, Shape{2, 3}, out)
	})
}

func TestBroadcastStrides(t *testing.T) {
	shape := Shape{3}
	strides := shape.Strides(RowMajor)
	target := Shape{2, 3}

	out := BroadcastStrides(target, shape, strides)
	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0], "leading broadcast axis gets stride 0")
	assert.Equal(t, strides[0], out[1])
}

func TestCheckTrivialBroadcast(t *testing.T) {
	a := Strides{3, 1}
	b := Strides{3, 1}
	c := Strides{0, 1}
	assert.True(t, CheckTrivialBroadcast(a, b))
	assert.False(t, CheckTrivialBroadcast(a, c))
	assert.False(t, CheckTrivialBroadcast(a, Strides{1}))
}

func TestDataOffsetTrailingAxisAddressing(t *testing.T) {
	strides := Strides{12, 4, 1}
	assert.Equal(t, 0, DataOffset(strides))
	assert.Equal(t, 4*2+1*3, DataOffset(strides, 2, 3))
	assert.Equal(t, 12*1+4*2+1*3, DataOffset(strides, 1, 2, 3))
}
