// Package shape implements the shape/strides model and the broadcasting
// algebra: computing dimension, broadcast shape, broadcast
// strides, backstrides and the trivial-broadcast test that every other
// ndexpr package builds on.
package shape

import (
	"errors"
	"fmt"

	"github.com/itohio/ndexpr/internal/kernel"
)

// ErrBroadcastIncompatible is returned when two shapes disagree on an
// axis where neither extent is 1.
var ErrBroadcastIncompatible = errors.New("shape: broadcast incompatible")

// ErrDimensionMismatch is returned when caller-supplied strides do not
// have the same length as the shape they describe.
var ErrDimensionMismatch = errors.New("shape: dimension mismatch")

// Layout selects the default stride arrangement for a freshly allocated
// container. Dynamic means "no canonical arrangement" — it is what
// views and broadcast results carry.
type Layout uint8

const (
	RowMajor Layout = iota
	ColMajor
	Dynamic
)

func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return "dynamic"
	}
}

// Shape is an ordered sequence of non-negative extents. len(Shape) is
// the dimension; the empty Shape denotes a 0-dim (scalar-like) value.
type Shape []int

// Strides is the per-axis flat-buffer step; same length as the Shape
// it describes. A canonicalized stride of 0 on an axis means that axis
// is broadcastable (its extent is 1, or it does not exist in the
// narrower operand).
type Strides []int

// Backstrides rewind a stepper after a full sweep of an axis:
// Backstrides[k] == Strides[k]*(Shape[k]-1), or 0 when Shape[k] <= 1.
type Backstrides []int

// Dim returns the rank (number of axes).
func (s Shape) Dim() int { return len(s) }

// Size is the product of extents; 1 for the empty shape (a 0-dim value
// has exactly one element), 0 if any extent is 0.
func (s Shape) Size() int { return kernel.SizeFromShape(s) }

// Equal reports whether s and o have the same rank and extents.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of s.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Strides computes the canonical strides for s under the given layout.
// Dynamic is accepted here only as "default to row-major"; callers that
// need genuinely dynamic (caller-supplied) strides build a Strides
// value directly instead of calling this method.
func (s Shape) Strides(layout Layout) Strides {
	var buf [kernel.MaxDims]int
	if layout == ColMajor {
		return Strides(kernel.ComputeStridesColMajor(buf[:0], s))
	}
	return Strides(kernel.ComputeStrides(buf[:0], s))
}

// Backstrides derives Backstrides from s and st.
func (s Shape) Backstrides(st Strides) Backstrides {
	var buf [kernel.MaxDims]int
	return Backstrides(kernel.ComputeBackstrides(buf[:0], s, st))
}

// DataOffset folds strides against indices using the trailing-axis
// addressing rule: fewer indices than axes address
// the front of the array (missing leading axes are treated as 0).
func DataOffset(strides Strides, indices ...int) int {
	return kernel.DataOffset(strides, indices...)
}

// BroadcastShape grows *out in place to the broadcast of out and in,
// matching from the trailing axis. It reports true iff
// every axis already matched exactly — no broadcasting happened and
// dimensions were equal end to end — mirroring the "trivial_broadcast"
// flag the assignment engine consults.
func BroadcastShape(in Shape, out *Shape) (bool, error) {
	o := *out
	trivial := len(in) == len(o)

	diff := len(o) - len(in)
	if diff < 0 {
		// out is shorter than in: grow out with leading 1s so every
		// axis of in has a slot to broadcast against.
		grown := make(Shape, len(in))
		copy(grown[-diff:], o)
		for i := 0; i < -diff; i++ {
			grown[i] = 1
		}
		o = grown
		diff = 0
	}

	for i := len(in) - 1; i >= 0; i-- {
		oi := diff + i
		switch {
		case o[oi] == in[i]:
			// unchanged
		case o[oi] == 1:
			o[oi] = in[i]
			trivial = false
		case in[i] == 1:
			trivial = false
		default:
			// oi is the axis position in the common (target/trailing)
			// coordinate system both operands were aligned into above,
			// not i's position within in's own (possibly shorter) shape.
			return false, fmt.Errorf("%w: axis %d, lhs extent %d, rhs extent %d", ErrBroadcastIncompatible, oi, o[oi], in[i])
		}
	}

	*out = o
	return trivial, nil
}

// BroadcastStrides computes the effective strides of a value with the
// given shape/strides when it is re-indexed against target: axes that
// match target keep their stride; axes that were broadcast (including
// leading axes target has but shape does not) get stride 0.
func BroadcastStrides(target, shape Shape, strides Strides) Strides {
	out := make(Strides, len(target))
	diff := len(target) - len(shape)
	for i := range target {
		si := i - diff
		if si < 0 {
			out[i] = 0
			continue
		}
		if target[i] == shape[si] {
			out[i] = strides[si]
		} else {
			out[i] = 0
		}
	}
	return out
}

// CheckTrivialBroadcast reports whether two stride sequences are equal
// after canonicalization, the condition that licenses the C8 assignment
// engine's linear fast path (a single pass with no index arithmetic).
func CheckTrivialBroadcast(a, b Strides) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
