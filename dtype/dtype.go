// Package dtype answers "what is the value type of an expression" with
// a concrete 4-type lattice (int32, int64, float32, float64), grounded
// on a DataType enum (pkg/core/math/tensor/types/dtype.go) but scoped
// down to the types a numeric-array-expression engine actually needs —
// no int8/int16/float16, which existed upstream only to support
// quantized inference.
package dtype

// DType identifies the concrete element type carried by a Scalar,
// Dense container or Node's result.
type DType uint8

const (
	Unknown DType = iota
	Int32
	Int64
	Float32
	Float64
)

func (d DType) String() string {
	switch d {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// Numeric is the element-type constraint satisfied by every concrete
// type ndexpr stores in a buffer or carries through an expression.
type Numeric interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// Of returns the DType tag for a Go numeric type parameter.
func Of[T Numeric]() DType {
	var zero T
	switch any(zero).(type) {
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return Unknown
	}
}

// rank orders the promotion lattice: int32 < int64 < float32 < float64.
func (d DType) rank() int {
	switch d {
	case Int32:
		return 0
	case Int64:
		return 1
	case Float32:
		return 2
	case Float64:
		return 3
	default:
		return -1
	}
}

// Promote returns the common arithmetic promotion of a and b: integer
// widening then integer/float promotion, per spec.md §4.2. On a tie
// (equal rank) the result is simply that type; float64 always wins
// over float32, float32 always wins over either integer type, and
// int64 always wins over int32. Unknown participating on either side
// yields Unknown.
func Promote(a, b DType) DType {
	if a == Unknown || b == Unknown {
		return Unknown
	}
	if a.rank() >= b.rank() {
		return a
	}
	return b
}

// Convert converts value of concrete source type S to concrete
// destination type D, following Go's standard numeric conversion rules
// (truncation toward zero for float-to-int, no saturation).
func Convert[D, S Numeric](v S) D {
	return D(v)
}
