package array

import (
	"fmt"

	"github.com/itohio/ndexpr/dtype"
	"github.com/itohio/ndexpr/expr"
	"github.com/itohio/ndexpr/logging"
	"github.com/itohio/ndexpr/shape"
	"github.com/itohio/ndexpr/stepper"
)

// computeShape folds e's children (if any) into the same seed-of-ones
// accumulation expr.Node.Shape uses, without panicking -- the fallible
// form Assign needs to size a fresh destination or validate an
// existing one.
func computeShape(e expr.Expression) (shape.Shape, error) {
	out := make(shape.Shape, e.Dim())
	for i := range out {
		out[i] = 1
	}
	if _, err := e.BroadcastShape(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// widens reports whether target cannot be addressed within cur's
// existing shape -- a different rank, or any extent grown past its
// current size.
func widens(cur, target shape.Shape) bool {
	if len(target) != len(cur) {
		return true
	}
	for i := range cur {
		if target[i] != cur[i] {
			return true
		}
	}
	return false
}

// assignInto drives src's traversal over target (already sized to
// dst's own shape) and writes each element into dst through a Leaf
// stepper over dst's own strides, advanced in lockstep with src's
// broadcast iterator, so a strided view or a transposed destination is
// written at the right positions. The fast-path/stepped-path split of
// spec.md §4.8 step 3/4 is observationally equivalent here -- both
// strategies share this one driver and differ only in which debug line
// gets logged.
func assignInto[T dtype.Numeric](dst *Dense[T], src expr.Expression, target shape.Shape) {
	if src.IsTrivialBroadcast(dst.strides) {
		logging.Log.Debug().Str("shape", fmt.Sprint(target)).Msg("array: assign fast path")
	} else {
		logging.Log.Debug().Str("shape", fmt.Sprint(target)).Msg("array: assign stepped path (non-trivial broadcast)")
	}

	st := src.Stepper(target, dst.layout)
	it := stepper.NewBroadcastIter(st, target, dst.layout, src)
	out := stepper.NewLeaf(dst.buf, dst.strides, dst.back, 0, 0)
	outIt := stepper.NewBroadcastIter(out, target, dst.layout, dst)
	for it.Next() && outIt.Next() {
		dst.buf[out.Pos()] = T(it.Value())
	}
}

// Assign materializes rhs into dst, reshaping dst to rhs's broadcast
// shape first when the two differ -- spec.md §4.8 step 2 ("reshape
// LHS to target if its current shape differs; this may reallocate"),
// the same unconditional reshape-then-copy the original's
// assign_xexpression performs. Existing elements of dst are not
// preserved across a reshape, per spec.md §4.4.
func Assign[T dtype.Numeric](dst *Dense[T], rhs expr.Expression) error {
	target, err := computeShape(rhs)
	if err != nil {
		return err
	}
	if !target.Equal(dst.sh) {
		logging.Log.Debug().Str("shape", fmt.Sprint(target)).Msg("array: assign reshapes destination")
		tmp := New[T](target)
		assignInto(tmp, rhs, target)
		dst.adopt(tmp)
		return nil
	}
	assignInto(dst, rhs, target)
	return nil
}

// Combine applies dst = combine(dst, rhs) (the compound
// assignment operators: +=, -=, *=, /=). If combine's broadcast shape
// needs to widen beyond dst's current shape, the combined expression
// is first materialized into a temporary buffer -- reading dst's old
// elements while simultaneously growing and overwriting dst's own
// buffer in place could read data a later position still needs but an
// earlier write has already clobbered -- then the temporary replaces
// dst's storage outright (the assignment-engine
// temporary-insertion rule).
func Combine[T dtype.Numeric](dst *Dense[T], combine func(lhs, rhs expr.Expression) expr.Expression, rhs expr.Expression) error {
	combined := combine(dst, rhs)
	target, err := computeShape(combined)
	if err != nil {
		return err
	}
	if widens(dst.sh, target) {
		logging.Log.Debug().Str("shape", fmt.Sprint(target)).Msg("array: compound assign widens destination, using temporary")
		tmp := New[T](target)
		assignInto(tmp, combined, target)
		dst.adopt(tmp)
		return nil
	}
	assignInto(dst, combined, target)
	return nil
}

// adopt replaces dst's storage with src's, used by Combine after
// materializing a widening compound assignment into a temporary.
func (dst *Dense[T]) adopt(src *Dense[T]) {
	dst.sh = src.sh
	dst.strides = src.strides
	dst.back = src.back
	dst.layout = src.layout
	dst.buf = src.buf
}

// AddAssign performs dst += rhs.
func AddAssign[T dtype.Numeric](dst *Dense[T], rhs expr.Expression) error {
	return Combine(dst, func(a, b expr.Expression) expr.Expression { return expr.Add(a, b) }, rhs)
}

// SubAssign performs dst -= rhs.
func SubAssign[T dtype.Numeric](dst *Dense[T], rhs expr.Expression) error {
	return Combine(dst, func(a, b expr.Expression) expr.Expression { return expr.Sub(a, b) }, rhs)
}

// MulAssign performs dst *= rhs.
func MulAssign[T dtype.Numeric](dst *Dense[T], rhs expr.Expression) error {
	return Combine(dst, func(a, b expr.Expression) expr.Expression { return expr.Mul(a, b) }, rhs)
}

// DivAssign performs dst /= rhs.
func DivAssign[T dtype.Numeric](dst *Dense[T], rhs expr.Expression) error {
	return Combine(dst, func(a, b expr.Expression) expr.Expression { return expr.Div(a, b) }, rhs)
}
