// Package expr implements the lazy expression graph (components C2, C3
// and C5): the Expression trait every leaf and composed node satisfies, the
// zero-dimension Scalar lift, and the fixed-arity functor Node. Nothing
// here ever allocates a result buffer -- materialization only happens
// when the array package's assignment engine drives a Stepper.
package expr

import (
	"iter"

	"github.com/itohio/ndexpr/dtype"
	"github.com/itohio/ndexpr/shape"
	"github.com/itohio/ndexpr/stepper"
)

// Expression is the common trait every leaf (array.Dense, Scalar) and
// composed (Node) value satisfies. Element access always surfaces
// float64 regardless of the declared DType -- the same design the
// teacher's Tensor.At/SetAt interface uses, so a mixed int32/float64
// expression graph needs no generic result-type deduction at each
// operator (Go's type system cannot express that kind of deduction
// across differently-instantiated generic operands anyway).
type Expression interface {
	// Dim is the expression's own rank, before any broadcast.
	Dim() int
	// Shape is the expression's own shape. For a composed Node this is
	// the broadcast of its children's shapes; it panics if those are
	// broadcast-incompatible. Use BroadcastShape directly for a
	// fallible query.
	Shape() shape.Shape
	// BroadcastShape grows *out in place to the broadcast of *out and
	// this expression's shape, reporting true iff no
	// broadcasting was needed.
	BroadcastShape(out *shape.Shape) (bool, error)
	// IsTrivialBroadcast reports whether this expression, re-indexed
	// against a target described by strides, needs no restriding at
	// all -- the condition the C8 assignment engine's fast path tests.
	IsTrivialBroadcast(strides shape.Strides) bool
	// DType is the value type this expression's elements are tagged
	// with, used only to decide what concrete buffer to allocate on
	// materialization.
	DType() dtype.DType
	// At evaluates the expression at the given index vector, following
	// the trailing-axis addressing rule.
	At(indices ...int) float64
	// Seq iterates this expression's own shape: a Node or Scalar in
	// row-major order, an array.Dense in its own layout's order.
	Seq() iter.Seq[float64]
	// Broadcast iterates this expression re-indexed against target, in
	// layout order.
	Broadcast(target shape.Shape, layout shape.Layout) iter.Seq[float64]
	// Stepper builds a fresh cursor over this expression re-indexed
	// against target. Every call returns an independent cursor
	// positioned at the first element.
	Stepper(target shape.Shape, layout shape.Layout) stepper.Stepper
}

// drive wraps a freshly built Stepper in a broadcast iterator and turns
// it into a range-over-func sequence, the traversal every Expression
// implementation's Seq/Broadcast methods reduce to.
func drive(st stepper.Stepper, target shape.Shape, layout shape.Layout, parent any) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		it := stepper.NewBroadcastIter(st, target, layout, parent)
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// OffsetFor computes how many leading axes of target an expression of
// the given rank lacks -- the Leaf/Composite stepper "offset" that lets
// a lower-rank value participate in a higher-rank broadcast without
// materializing.
func OffsetFor(dim int, target shape.Shape) int {
	diff := len(target) - dim
	if diff < 0 {
		return 0
	}
	return diff
}
