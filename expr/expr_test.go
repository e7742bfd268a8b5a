package expr_test

import (
	"errors"
	"iter"
	"math"
	"testing"

	"github.com/itohio/ndexpr/dtype"
	"github.com/itohio/ndexpr/expr"
	"github.com/itohio/ndexpr/shape"
	"github.com/itohio/ndexpr/stepper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leaf is a minimal Expression backed by a flat buffer, used only to
// exercise Node/Scalar composition without depending on the array
// package.
type leaf struct {
	data []float64
	sh   shape.Shape
	st   shape.Strides
}

func newLeaf(data []float64, sh shape.Shape) *leaf {
	return &leaf{data: data, sh: sh, st: sh.Strides(shape.RowMajor)}
}

func (l *leaf) Dim() int             { return len(l.sh) }
func (l *leaf) Shape() shape.Shape   { return l.sh }
func (l *leaf) DType() dtype.DType   { return dtype.Float64 }

func (l *leaf) BroadcastShape(out *shape.Shape) (bool, error) {
	return shape.BroadcastShape(l.sh, out)
}

func (l *leaf) IsTrivialBroadcast(strides shape.Strides) bool {
	return shape.CheckTrivialBroadcast(l.st, strides)
}

func (l *leaf) At(indices ...int) float64 {
	return l.data[shape.DataOffset(l.st, indices...)]
}

func (l *leaf) Stepper(target shape.Shape, layout shape.Layout) stepper.Stepper {
	offset := expr.OffsetFor(l.Dim(), target)
	strides := shape.BroadcastStrides(target, l.sh, l.st)[offset:]
	back := shape.Shape(target[offset:]).Backstrides(strides)
	return stepper.NewLeaf(l.data, strides, back, offset, 0)
}

func (l *leaf) Broadcast(target shape.Shape, layout shape.Layout) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		it := stepper.NewBroadcastIter(l.Stepper(target, layout), target, layout, l)
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

func (l *leaf) Seq() iter.Seq[float64] { return l.Broadcast(l.sh, shape.RowMajor) }

func TestScalarBroadcastIdentity(t *testing.T) {
	s := expr.NewScalar(2.0)
	assert.Equal(t, 0, s.Dim())
	assert.Equal(t, shape.Shape{}, s.Shape())

	out := shape.Shape{2, 3}
	trivial, err := s.BroadcastShape(&out)
	require.NoError(t, err)
	assert.False(t, trivial)
	assert.Equal(t, shape.Shape{2, 3}, out, "scalar contributes no constraint to the target shape")
}

func TestScalarSeqYieldsOneValue(t *testing.T) {
	s := expr.NewScalar(float32(7))
	var got []float64
	for v := range s.Seq() {
		got = append(got, v)
	}
	assert.Equal(t, []float64{7}, got)
}

func TestNodeAddElementwise(t *testing.T) {
	a := newLeaf([]float64{1, 2, 3, 4}, shape.Shape{2, 2})
	b := newLeaf([]float64{10, 20, 30, 40}, shape.Shape{2, 2})
	n := expr.Add(a, b)

	assert.Equal(t, 2, n.Dim())
	assert.Equal(t, shape.Shape{2, 2}, n.Shape())
	assert.Equal(t, float64(11), n.At(0, 0))
	assert.Equal(t, float64(44), n.At(1, 1))

	var got []float64
	for v := range n.Seq() {
		got = append(got, v)
	}
	assert.Equal(t, []float64{11, 22, 33, 44}, got)
}

func TestNodeBroadcastRowVectorAgainstMatrix(t *testing.T) {
	mat := newLeaf([]float64{1, 2, 3, 4, 5, 6}, shape.Shape{2, 3})
	row := newLeaf([]float64{10, 20, 30}, shape.Shape{3})
	n := expr.Add(mat, row)

	target := shape.Shape{2, 3}
	var got []float64
	for v := range n.Broadcast(target, shape.RowMajor) {
		got = append(got, v)
	}
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, got)
}

func TestNodeComposedWithUnary(t *testing.T) {
	a := newLeaf([]float64{0, 0}, shape.Shape{2})
	n := expr.ExpOf(a)
	for v := range n.Seq() {
		assert.Equal(t, float64(1), v)
	}
}

func TestNodeArityMismatchPanics(t *testing.T) {
	a := newLeaf([]float64{1}, shape.Shape{1})
	assert.Panics(t, func() { expr.NewNode(expr.AddOp, a) })
}

func TestNodeIncompatibleShapesError(t *testing.T) {
	a := newLeaf([]float64{1, 2, 3}, shape.Shape{3})
	b := newLeaf([]float64{1, 2}, shape.Shape{2})
	n := expr.Add(a, b)

	assert.Panics(t, func() { n.Shape() })

	out := shape.Shape{1}
	_, err := n.BroadcastShape(&out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shape.ErrBroadcastIncompatible))
}

func TestFmaSingleRounding(t *testing.T) {
	// (1+2^-27)^2 - (1+2^-26) is exactly 2^-54; rounding the product
	// before the add would drop the 2^-54 term and give 0.
	a := expr.NewScalar(1 + math.Ldexp(1, -27))
	b := expr.NewScalar(1 + math.Ldexp(1, -27))
	c := expr.NewScalar(-(1 + math.Ldexp(1, -26)))
	n := expr.Fma(a, b, c)
	assert.Equal(t, math.Ldexp(1, -54), n.At())
}

func TestCompositeStepperMatchesNode(t *testing.T) {
	a := newLeaf([]float64{1, 2}, shape.Shape{2})
	b := newLeaf([]float64{3, 4}, shape.Shape{2})
	n := expr.Mul(a, b)

	st := n.Stepper(shape.Shape{2}, shape.RowMajor)
	it := stepper.NewBroadcastIter(st, shape.Shape{2}, shape.RowMajor, st)
	var got []float64
	for it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []float64{3, 8}, got)
}
