// Package array implements the dense strided container, the
// assignment engine that materializes a lazy expr.Expression into one,
// and the compound-assignment operator mixin built on top of it.
// Grounded on an eager_tensor.Tensor design
// (pkg/core/math/tensor/eager_tensor/tensor.go): a shape plus a flat
// backing buffer, with reshape/view/transpose as thin metadata edits
// over the same buffer rather than a copy.
package array

import (
	"fmt"
	"iter"

	"github.com/itohio/ndexpr/dtype"
	"github.com/itohio/ndexpr/expr"
	"github.com/itohio/ndexpr/internal/kernel"
	"github.com/itohio/ndexpr/logging"
	"github.com/itohio/ndexpr/shape"
	"github.com/itohio/ndexpr/stepper"
)

// Dense is a strided, contiguous-or-viewed n-dimensional array backed
// by a single flat buffer of T. It implements expr.Expression, so it
// can appear as a leaf anywhere an expression graph expects one.
type Dense[T dtype.Numeric] struct {
	sh      shape.Shape
	strides shape.Strides
	back    shape.Backstrides
	layout  shape.Layout
	buf     []T
}

// New allocates a zero-initialized container with row-major strides.
func New[T dtype.Numeric](sh shape.Shape) *Dense[T] {
	return NewLayout[T](sh, shape.RowMajor)
}

// NewLayout allocates a zero-initialized container with the given
// layout's canonical strides.
func NewLayout[T dtype.Numeric](sh shape.Shape, layout shape.Layout) *Dense[T] {
	size := sh.Size()
	if size < 0 {
		panic(fmt.Errorf("%w: negative size from shape %v", ErrAllocationFailed, sh))
	}
	st := sh.Strides(layout)
	back := sh.Backstrides(st)
	d := &Dense[T]{sh: sh.Clone(), strides: st, back: back, layout: layout, buf: make([]T, size)}
	logging.Log.Debug().Str("shape", fmt.Sprint(sh)).Str("layout", layout.String()).Msg("array: allocated container")
	return d
}

// NewFilled allocates a container with every element set to v.
func NewFilled[T dtype.Numeric](sh shape.Shape, v T) *Dense[T] {
	d := New[T](sh)
	for i := range d.buf {
		d.buf[i] = v
	}
	return d
}

// NewWithStrides wraps an existing buffer with caller-supplied strides
// (the escape hatch for views and foreign-owned buffers). The
// layout is reported as Dynamic since arbitrary strides have no
// canonical row-major/col-major classification.
func NewWithStrides[T dtype.Numeric](sh shape.Shape, strides shape.Strides, buf []T) (*Dense[T], error) {
	if len(strides) != len(sh) {
		return nil, fmt.Errorf("%w: shape has %d axes, strides has %d", shape.ErrDimensionMismatch, len(sh), len(strides))
	}
	back := sh.Backstrides(strides)
	return &Dense[T]{sh: sh.Clone(), strides: strides, back: back, layout: shape.Dynamic, buf: buf}, nil
}

// Buf exposes the backing buffer directly, for callers (the float32
// fast-math helpers in math32.go) that want to operate on it
// without going through the uniform float64 Expression surface.
func (d *Dense[T]) Buf() []T { return d.buf }

// Dim returns the rank.
func (d *Dense[T]) Dim() int { return len(d.sh) }

// Shape returns the container's shape. Callers must not mutate it.
func (d *Dense[T]) Shape() shape.Shape { return d.sh }

// DType reports the element type tag.
func (d *Dense[T]) DType() dtype.DType { return dtype.Of[T]() }

// Layout reports the strides' arrangement.
func (d *Dense[T]) Layout() shape.Layout { return d.layout }

func (d *Dense[T]) BroadcastShape(out *shape.Shape) (bool, error) {
	return shape.BroadcastShape(d.sh, out)
}

func (d *Dense[T]) IsTrivialBroadcast(strides shape.Strides) bool {
	return shape.CheckTrivialBroadcast(d.strides, strides)
}

// At evaluates the container at indices, bounds-checked against its
// own shape; out-of-range indices panic wrapping ErrIndexOutOfRange,
// since the Expression trait's At has no error return of its own.
func (d *Dense[T]) At(indices ...int) float64 {
	// Trailing-axis addressing: fewer indices than axes
	// address the front of the array, more indices than axes have the
	// surplus leading ones ignored, mirroring kernel.DataOffset.
	checked := indices
	if len(checked) > len(d.sh) {
		checked = checked[len(checked)-len(d.sh):]
	}
	axisOffset := len(d.sh) - len(checked)
	for i, idx := range checked {
		axis := axisOffset + i
		if idx < 0 || idx >= d.sh[axis] {
			panic(fmt.Errorf("%w: index %d out of range for axis %d (extent %d)", ErrIndexOutOfRange, idx, axis, d.sh[axis]))
		}
	}
	return d.AtUnchecked(indices...)
}

// AtUnchecked evaluates without bounds checking -- the fast path the
// stepper/broadcast machinery uses internally, where the caller is
// already known to be iterating in-range.
func (d *Dense[T]) AtUnchecked(indices ...int) float64 {
	return float64(d.buf[shape.DataOffset(d.strides, indices...)])
}

// SetAt writes v (converted to T) at indices, bounds-checked the same
// way At is.
func (d *Dense[T]) SetAt(v float64, indices ...int) {
	_ = d.At(indices...) // reuse the bounds check, discard the read
	d.buf[shape.DataOffset(d.strides, indices...)] = T(v)
}

// Stepper builds a fresh Leaf cursor over d, re-indexed against
// target.
func (d *Dense[T]) Stepper(target shape.Shape, layout shape.Layout) stepper.Stepper {
	offset := expr.OffsetFor(d.Dim(), target)
	strides := shape.BroadcastStrides(target, d.sh, d.strides)[offset:]
	back := shape.Shape(target[offset:]).Backstrides(strides)
	return stepper.NewLeaf(d.buf, strides, back, offset, 0)
}

// Broadcast iterates d re-indexed against target, in layout order.
func (d *Dense[T]) Broadcast(target shape.Shape, layout shape.Layout) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		it := stepper.NewBroadcastIter(d.Stepper(target, layout), target, layout, d)
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Seq iterates d in its own shape and layout order.
func (d *Dense[T]) Seq() iter.Seq[float64] {
	return d.Broadcast(d.sh, d.layout)
}

// Reshape changes d's shape in place without copying, requiring the
// new shape to have the same size and d's buffer to be contiguous
// (a strided view cannot be relabeled into an arbitrary new shape
// without a copy).
func (d *Dense[T]) Reshape(sh shape.Shape) error {
	if sh.Size() != d.sh.Size() {
		return fmt.Errorf("%w: cannot reshape %v (%d elements) to %v (%d elements)", ErrShapeMismatch, d.sh, d.sh.Size(), sh, sh.Size())
	}
	if !kernel.IsContiguous(d.strides, d.sh) {
		return fmt.Errorf("%w: reshape requires a contiguous buffer; %v is a strided view", ErrShapeMismatch, d.sh)
	}
	d.sh = sh.Clone()
	d.strides = sh.Strides(d.layout)
	d.back = sh.Backstrides(d.strides)
	logging.Log.Debug().Str("shape", fmt.Sprint(sh)).Msg("array: reshaped container")
	return nil
}

// View returns a Dense sharing d's buffer, restricted to the given
// per-axis half-open [lo, hi) ranges. Axes past len(ranges) are kept
// whole. The result's layout is Dynamic: a sub-range generally breaks
// the canonical row-major/col-major stride relationship to the new
// shape's own extents.
func (d *Dense[T]) View(ranges ...[2]int) (*Dense[T], error) {
	if len(ranges) > len(d.sh) {
		return nil, fmt.Errorf("%w: %d ranges for a rank-%d container", ErrRankMismatch, len(ranges), len(d.sh))
	}
	sh := d.sh.Clone()
	strides := make(shape.Strides, len(d.strides))
	copy(strides, d.strides)
	offset := 0
	for axis, r := range ranges {
		lo, hi := r[0], r[1]
		if lo < 0 || hi > d.sh[axis] || lo > hi {
			return nil, fmt.Errorf("%w: range [%d:%d) out of bounds for axis %d (extent %d)", ErrIndexOutOfRange, lo, hi, axis, d.sh[axis])
		}
		sh[axis] = hi - lo
		offset += lo * d.strides[axis]
	}
	back := sh.Backstrides(strides)
	return &Dense[T]{sh: sh, strides: strides, back: back, layout: shape.Dynamic, buf: d.buf[offset:]}, nil
}

// Transpose returns a Dense sharing d's buffer with axes permuted
// according to axes (a permutation of 0..Dim()-1). With no arguments
// it reverses every axis, the conventional default.
func (d *Dense[T]) Transpose(axes ...int) (*Dense[T], error) {
	if len(axes) == 0 {
		axes = make([]int, len(d.sh))
		for i := range axes {
			axes[i] = len(d.sh) - 1 - i
		}
	}
	if len(axes) != len(d.sh) {
		return nil, fmt.Errorf("%w: %d axes for a rank-%d container", ErrRankMismatch, len(axes), len(d.sh))
	}
	sh := make(shape.Shape, len(d.sh))
	st := make(shape.Strides, len(d.sh))
	seen := make([]bool, len(d.sh))
	for i, ax := range axes {
		if ax < 0 || ax >= len(d.sh) || seen[ax] {
			return nil, fmt.Errorf("%w: %v is not a permutation of 0..%d", ErrRankMismatch, axes, len(d.sh)-1)
		}
		seen[ax] = true
		sh[i] = d.sh[ax]
		st[i] = d.strides[ax]
	}
	back := sh.Backstrides(st)
	return &Dense[T]{sh: sh, strides: st, back: back, layout: shape.Dynamic, buf: d.buf}, nil
}

// Elements iterates free axes in row-major order with some axes pinned
// to a fixed index, given as (axis, value) pairs -- e.g.
// d.Elements(0, 2) walks row 2 of a matrix.
func (d *Dense[T]) Elements(pinned ...int) iter.Seq[float64] {
	fixed := make(map[int]int, len(pinned)/2)
	for i := 0; i+1 < len(pinned); i += 2 {
		fixed[pinned[i]] = pinned[i+1]
	}
	return func(yield func(float64) bool) {
		idx := make([]int, len(d.sh))
		var walk func(axis int) bool
		walk = func(axis int) bool {
			if axis == len(d.sh) {
				return yield(d.AtUnchecked(idx...))
			}
			if v, ok := fixed[axis]; ok {
				idx[axis] = v
				return walk(axis + 1)
			}
			for i := 0; i < d.sh[axis]; i++ {
				idx[axis] = i
				if !walk(axis + 1) {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}
