package expr

import "math"

// unary builds a single-operand Functor from a plain float64 function.
func unary(name string, fn func(float64) float64) Functor {
	return Functor{Name: name, Arity: 1, Apply: func(a []float64) float64 { return fn(a[0]) }}
}

// binary builds a two-operand Functor from a plain float64 function.
func binary(name string, fn func(a, b float64) float64) Functor {
	return Functor{Name: name, Arity: 2, Apply: func(a []float64) float64 { return fn(a[0], a[1]) }}
}

// boolFloat converts a predicate's result to the engine's uniform
// float64 element type: 1 for true, 0 for false.
func boolFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// bitwiseFloat truncates both operands to int64, applies op, and
// converts the result back to float64. The engine's elements are
// always float64, so bitwise operators only make sense on values that
// happen to hold integral quantities -- callers working with integer
// DTypes get the expected result; applying one to a fractional value
// truncates it first, same as a C-style cast to an integer type would.
func bitwiseFloat(op func(a, b int64) int64) func(a, b float64) float64 {
	return func(a, b float64) float64 { return float64(op(int64(a), int64(b))) }
}

// Unary functors.
var (
	Identity  = unary("identity", func(x float64) float64 { return x })
	Neg       = unary("neg", func(x float64) float64 { return -x })
	Abs       = unary("abs", math.Abs)
	Exp       = unary("exp", math.Exp)
	Log       = unary("log", math.Log)
	Log2      = unary("log2", math.Log2)
	Log10     = unary("log10", math.Log10)
	Sqrt      = unary("sqrt", math.Sqrt)
	Sin       = unary("sin", math.Sin)
	Cos       = unary("cos", math.Cos)
	Tan       = unary("tan", math.Tan)
	Asin      = unary("asin", math.Asin)
	Acos      = unary("acos", math.Acos)
	Atan      = unary("atan", math.Atan)
	Sinh      = unary("sinh", math.Sinh)
	Cosh      = unary("cosh", math.Cosh)
	Tanh      = unary("tanh", math.Tanh)
	Round     = unary("round", math.Round)
	Floor     = unary("floor", math.Floor)
	Ceil      = unary("ceil", math.Ceil)
	Trunc     = unary("trunc", math.Trunc)
	IsFinite  = unary("isfinite", func(x float64) float64 { return boolFloat(!math.IsInf(x, 0) && !math.IsNaN(x)) })
	IsInf     = unary("isinf", func(x float64) float64 { return boolFloat(math.IsInf(x, 0)) })
	IsNaN     = unary("isnan", func(x float64) float64 { return boolFloat(math.IsNaN(x)) })
)

// Binary functors.
var (
	AddOp       = binary("add", func(a, b float64) float64 { return a + b })
	SubOp       = binary("sub", func(a, b float64) float64 { return a - b })
	MulOp       = binary("mul", func(a, b float64) float64 { return a * b })
	DivOp       = binary("div", func(a, b float64) float64 { return a / b })
	ModOp       = binary("mod", math.Mod)
	FmodOp      = binary("fmod", math.Mod)
	RemainderOp = binary("remainder", math.Remainder)
	PowOp       = binary("pow", math.Pow)
	HypotOp     = binary("hypot", math.Hypot)
	Atan2Op     = binary("atan2", math.Atan2)
	MinOp       = binary("min", math.Min)
	MaxOp       = binary("max", math.Max)
	FdimOp      = binary("fdim", math.Dim)

	BitAndOp = binary("bitand", bitwiseFloat(func(a, b int64) int64 { return a & b }))
	BitOrOp  = binary("bitor", bitwiseFloat(func(a, b int64) int64 { return a | b }))
	BitXorOp = binary("bitxor", bitwiseFloat(func(a, b int64) int64 { return a ^ b }))

	EqOp = binary("eq", func(a, b float64) float64 { return boolFloat(a == b) })
	NeOp = binary("ne", func(a, b float64) float64 { return boolFloat(a != b) })
	LtOp = binary("lt", func(a, b float64) float64 { return boolFloat(a < b) })
	LeOp = binary("le", func(a, b float64) float64 { return boolFloat(a <= b) })
	GtOp = binary("gt", func(a, b float64) float64 { return boolFloat(a > b) })
	GeOp = binary("ge", func(a, b float64) float64 { return boolFloat(a >= b) })
)

// FmaOp is the one ternary functor: a fused
// multiply-add using math.FMA for single-rounding precision rather
// than a plain a*b+c.
var FmaOp = Functor{Name: "fma", Arity: 3, Apply: func(a []float64) float64 { return math.FMA(a[0], a[1], a[2]) }}

// Operator constructors build a Node directly, so call sites read as
// expr.Add(a, b) rather than expr.NewNode(expr.AddOp, a, b).
func Add(a, b Expression) *Node       { return NewNode(AddOp, a, b) }
func Sub(a, b Expression) *Node       { return NewNode(SubOp, a, b) }
func Mul(a, b Expression) *Node       { return NewNode(MulOp, a, b) }
func Div(a, b Expression) *Node       { return NewNode(DivOp, a, b) }
func Mod(a, b Expression) *Node       { return NewNode(ModOp, a, b) }
func Fmod(a, b Expression) *Node      { return NewNode(FmodOp, a, b) }
func Remainder(a, b Expression) *Node { return NewNode(RemainderOp, a, b) }
func Pow(a, b Expression) *Node       { return NewNode(PowOp, a, b) }
func Hypot(a, b Expression) *Node     { return NewNode(HypotOp, a, b) }
func Atan2(a, b Expression) *Node     { return NewNode(Atan2Op, a, b) }
func Min(a, b Expression) *Node       { return NewNode(MinOp, a, b) }
func Max(a, b Expression) *Node       { return NewNode(MaxOp, a, b) }
func Fdim(a, b Expression) *Node      { return NewNode(FdimOp, a, b) }
func BitAnd(a, b Expression) *Node    { return NewNode(BitAndOp, a, b) }
func BitOr(a, b Expression) *Node     { return NewNode(BitOrOp, a, b) }
func BitXor(a, b Expression) *Node    { return NewNode(BitXorOp, a, b) }
func Eq(a, b Expression) *Node        { return NewNode(EqOp, a, b) }
func Ne(a, b Expression) *Node        { return NewNode(NeOp, a, b) }
func Lt(a, b Expression) *Node        { return NewNode(LtOp, a, b) }
func Le(a, b Expression) *Node        { return NewNode(LeOp, a, b) }
func Gt(a, b Expression) *Node        { return NewNode(GtOp, a, b) }
func Ge(a, b Expression) *Node        { return NewNode(GeOp, a, b) }

func NegOf(a Expression) *Node   { return NewNode(Neg, a) }
func AbsOf(a Expression) *Node   { return NewNode(Abs, a) }
func ExpOf(a Expression) *Node   { return NewNode(Exp, a) }
func LogOf(a Expression) *Node   { return NewNode(Log, a) }
func SqrtOf(a Expression) *Node  { return NewNode(Sqrt, a) }
func SinOf(a Expression) *Node   { return NewNode(Sin, a) }
func CosOf(a Expression) *Node   { return NewNode(Cos, a) }
func TanOf(a Expression) *Node   { return NewNode(Tan, a) }
func TanhOf(a Expression) *Node  { return NewNode(Tanh, a) }
func RoundOf(a Expression) *Node { return NewNode(Round, a) }

func Fma(a, b, c Expression) *Node { return NewNode(FmaOp, a, b, c) }
