package array

import (
	"github.com/itohio/ndexpr/expr"
	"github.com/itohio/ndexpr/internal/kernel"
	"github.com/itohio/ndexpr/shape"
	"github.com/itohio/ndexpr/stepper"
)

// UnaryFloat32 applies fn across every element of d in place. A
// contiguous row-major d goes through the expr package's float32 bulk
// kernel (chewxy/math32) over its buffer instead of routing through the
// uniform float64 Expression.At/Stepper surface -- the fast path a
// float32 container gets for the unary math set, grounded on the
// teacher's fp32 activation kernels operating directly on a contiguous
// buffer. Any other d (a strided view, a transpose, a column-major
// container) is walked element by element through its own strides.
func UnaryFloat32(d *Dense[float32], fn func(float32) float32) {
	if kernel.IsContiguous(d.strides, d.sh) {
		buf := d.Buf()[:d.sh.Size()]
		expr.Float32Unary(buf, buf, fn)
		return
	}
	st := stepper.NewLeaf(d.buf, d.strides, d.back, 0, 0)
	it := stepper.NewBroadcastIter(st, d.sh, shape.RowMajor, d)
	for it.Next() {
		d.buf[st.Pos()] = fn(d.buf[st.Pos()])
	}
}

// ExpFloat32 overwrites d with exp(d), element-wise, via math32.Exp.
func ExpFloat32(d *Dense[float32]) { UnaryFloat32(d, expr.Float32Exp) }

// LogFloat32 overwrites d with log(d), element-wise, via math32.Log.
func LogFloat32(d *Dense[float32]) { UnaryFloat32(d, expr.Float32Log) }

// SqrtFloat32 overwrites d with sqrt(d), element-wise, via math32.Sqrt.
func SqrtFloat32(d *Dense[float32]) { UnaryFloat32(d, expr.Float32Sqrt) }

// AbsFloat32 overwrites d with abs(d), element-wise, via math32.Abs.
func AbsFloat32(d *Dense[float32]) { UnaryFloat32(d, expr.Float32Abs) }
