package array

import (
	"testing"

	"github.com/itohio/ndexpr/expr"
	"github.com/itohio/ndexpr/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignElementwiseAdd(t *testing.T) {
	a := New[float64](shape.Shape{2, 2})
	b := New[float64](shape.Shape{2, 2})
	for i := range a.buf {
		a.buf[i] = float64(i + 1)
		b.buf[i] = float64((i + 1) * 10)
	}
	dst := New[float64](shape.Shape{2, 2})

	require.NoError(t, Assign(dst, expr.Add(a, b)))
	assert.Equal(t, []float64{11, 22, 33, 44}, dst.buf)
}

func TestAssignRowVectorBroadcast(t *testing.T) {
	mat := New[float64](shape.Shape{2, 3})
	for i := range mat.buf {
		mat.buf[i] = float64(i + 1)
	}
	row := New[float64](shape.Shape{3})
	row.buf[0], row.buf[1], row.buf[2] = 10, 20, 30

	dst := New[float64](shape.Shape{2, 3})
	require.NoError(t, Assign(dst, expr.Add(mat, row)))
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, dst.buf)
}

func TestAssignScalarLiftMixedTypes(t *testing.T) {
	src := New[int32](shape.Shape{2})
	src.buf[0], src.buf[1] = 1, 2
	dst := New[float64](shape.Shape{2})

	require.NoError(t, Assign(dst, expr.Mul(src, expr.NewScalar(float32(1.5)))))
	assert.Equal(t, []float64{1.5, 3}, dst.buf)
}

func TestAssignExpressionComposition(t *testing.T) {
	a := New[float64](shape.Shape{2})
	a.buf[0], a.buf[1] = 0, 1
	dst := New[float64](shape.Shape{2})

	require.NoError(t, Assign(dst, expr.ExpOf(a)))
	assert.InDelta(t, 1.0, dst.buf[0], 1e-9)
	assert.InDelta(t, 2.718281828, dst.buf[1], 1e-6)
}

func TestAssignBroadcastErrorIncompatibleShapes(t *testing.T) {
	a := New[float64](shape.Shape{3})
	b := New[float64](shape.Shape{2})
	dst := New[float64](shape.Shape{2})

	err := Assign(dst, expr.Add(a, b))
	assert.Error(t, err)
}

func TestAssignReshapesDestinationOnShapeMismatch(t *testing.T) {
	a := New[float64](shape.Shape{2, 3})
	for i := range a.buf {
		a.buf[i] = float64(i)
	}
	dst := New[float64](shape.Shape{3})

	require.NoError(t, Assign(dst, a))
	assert.Equal(t, shape.Shape{2, 3}, dst.Shape())
	assert.Equal(t, a.buf, dst.buf)
}

func TestCompoundAssignSameShapeInPlace(t *testing.T) {
	dst := New[float64](shape.Shape{2})
	dst.buf[0], dst.buf[1] = 1, 2
	rhs := New[float64](shape.Shape{2})
	rhs.buf[0], rhs.buf[1] = 10, 20

	require.NoError(t, AddAssign(dst, rhs))
	assert.Equal(t, []float64{11, 22}, dst.buf)
}

func TestCompoundAssignWideningUsesTemporary(t *testing.T) {
	dst := New[float64](shape.Shape{3})
	dst.buf[0], dst.buf[1], dst.buf[2] = 1, 2, 3
	rhs := New[float64](shape.Shape{2, 3})
	for i := range rhs.buf {
		rhs.buf[i] = float64(i * 10)
	}

	require.NoError(t, AddAssign(dst, rhs))
	assert.Equal(t, shape.Shape{2, 3}, dst.Shape())
	assert.Equal(t, []float64{1, 12, 23, 31, 42, 53}, dst.buf)
}
