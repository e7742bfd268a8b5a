// Package kernel holds the shape/stride arithmetic shared by the shape,
// stepper and array packages: canonical stride computation and
// contiguity checks. It has no notion of expressions or
// containers — only of shapes, strides and flat offsets.
package kernel

// MaxDims bounds the rank ndexpr will compute strides/backstrides for
// on the stack before falling back to a heap slice. It is also the
// capacity of the scratch buffers the pool in pool.go hands out.
const MaxDims = 8

// ComputeStrides fills dst (or allocates it if nil/undersized) with the
// canonical row-major strides for shape: strides[k] == product of
// shape[k+1:]. A dimension of extent 1 gets stride 0, per the
// broadcasting invariant.
func ComputeStrides(dst []int, shape []int) []int {
	if len(shape) == 0 {
		return dst[:0]
	}
	if cap(dst) < len(shape) {
		dst = make([]int, len(shape))
	}
	dst = dst[:len(shape)]
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] == 1 {
			dst[i] = 0
		} else {
			dst[i] = stride
		}
		stride *= shape[i]
	}
	return dst
}

// ComputeStridesColMajor is the column-major twin of ComputeStrides:
// the first axis varies fastest.
func ComputeStridesColMajor(dst []int, shape []int) []int {
	if len(shape) == 0 {
		return dst[:0]
	}
	if cap(dst) < len(shape) {
		dst = make([]int, len(shape))
	}
	dst = dst[:len(shape)]
	stride := 1
	for i := 0; i < len(shape); i++ {
		if shape[i] == 1 {
			dst[i] = 0
		} else {
			dst[i] = stride
		}
		stride *= shape[i]
	}
	return dst
}

// ComputeBackstrides fills dst with strides[k]*(shape[k]-1), or 0 when
// shape[k] <= 1. Used to rewind a stepper after a full axis sweep.
func ComputeBackstrides(dst []int, shape, strides []int) []int {
	if len(shape) == 0 {
		return dst[:0]
	}
	if cap(dst) < len(shape) {
		dst = make([]int, len(shape))
	}
	dst = dst[:len(shape)]
	for i := range shape {
		if shape[i] > 1 {
			dst[i] = strides[i] * (shape[i] - 1)
		} else {
			dst[i] = 0
		}
	}
	return dst
}

// SizeFromShape returns the product of extents; 1 for the empty shape
// (a 0-dim value has exactly one element), 0 if any extent is 0.
func SizeFromShape(shape []int) int {
	size := 1
	for _, dim := range shape {
		if dim == 0 {
			return 0
		}
		size *= dim
	}
	return size
}

// IsContiguous reports whether strides is exactly the canonical
// row-major stride sequence for shape.
func IsContiguous(strides, shape []int) bool {
	if len(strides) != len(shape) {
		return false
	}
	var buf [MaxDims]int
	canonical := ComputeStrides(buf[:0], shape)
	for i := range canonical {
		if strides[i] != canonical[i] {
			return false
		}
	}
	return true
}

// DataOffset folds sum(strides[i]*indices[i]) over the trailing
// min(len(strides), len(indices)) axes, following the
// trailing-axis addressing rule: supplying fewer indices than the
// rank addresses the front of the array as if the missing leading
// indices were 0.
func DataOffset(strides []int, indices ...int) int {
	if len(indices) > len(strides) {
		indices = indices[len(indices)-len(strides):]
	}
	skip := len(strides) - len(indices)
	offset := 0
	for i, idx := range indices {
		offset += strides[skip+i] * idx
	}
	return offset
}
