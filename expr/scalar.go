package expr

import (
	"iter"

	"github.com/itohio/ndexpr/dtype"
	"github.com/itohio/ndexpr/shape"
	"github.com/itohio/ndexpr/stepper"
)

// Scalar is a 0-dim expression: a single value that
// broadcasts against any shape without itself constraining the result
// shape at all.
type Scalar struct {
	value float64
	dt    dtype.DType
}

// NewScalar lifts a single value of concrete type T into an Expression.
func NewScalar[T dtype.Numeric](v T) *Scalar {
	return &Scalar{value: float64(v), dt: dtype.Of[T]()}
}

func (s *Scalar) Dim() int           { return 0 }
func (s *Scalar) Shape() shape.Shape { return shape.Shape{} }
func (s *Scalar) DType() dtype.DType { return s.dt }

func (s *Scalar) BroadcastShape(out *shape.Shape) (bool, error) {
	return shape.BroadcastShape(s.Shape(), out)
}

// IsTrivialBroadcast always reports true: a scalar has broadcast
// identity against any target strides, per spec.md §4.3.
func (s *Scalar) IsTrivialBroadcast(strides shape.Strides) bool {
	return true
}

func (s *Scalar) At(indices ...int) float64 { return s.value }

func (s *Scalar) Seq() iter.Seq[float64] {
	return s.Broadcast(s.Shape(), shape.RowMajor)
}

func (s *Scalar) Broadcast(target shape.Shape, layout shape.Layout) iter.Seq[float64] {
	return drive(s.Stepper(target, layout), target, layout, s)
}

func (s *Scalar) Stepper(target shape.Shape, layout shape.Layout) stepper.Stepper {
	return stepper.NewConstant(s.value)
}
