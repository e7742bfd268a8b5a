package expr

import "github.com/chewxy/math32"

// Float32Unary applies fn across a contiguous float32 buffer in place
// (dst and src may be the same slice), the bulk fast path the array
// package's Dense[float32] unary-math methods use instead of driving
// the generic Expression.At/Stepper path element by element. Grounded
// on the teacher's fp32 activation kernels
// (pkg/core/math/primitive/fp32/activations.go), which apply the same
// dst/src-may-alias contiguous loop.
//
// Using chewxy/math32 here, rather than converting through float64 and
// back, avoids the float64 round-trip cost on every element that the
// uniform float64 Stepper.Deref surface would otherwise force for a
// float32-typed container.
func Float32Unary(dst, src []float32, fn func(float32) float32) {
	for i, v := range src {
		dst[i] = fn(v)
	}
}

// Float32 unary math kernels, named to match their float64 Functor
// counterparts in functor.go.
var (
	Float32Abs   = math32.Abs
	Float32Exp   = math32.Exp
	Float32Log   = math32.Log
	Float32Sqrt  = math32.Sqrt
	Float32Sin   = math32.Sin
	Float32Cos   = math32.Cos
	Float32Tan   = math32.Tan
	Float32Tanh  = math32.Tanh
	Float32Floor = math32.Floor
	Float32Ceil  = math32.Ceil
)
