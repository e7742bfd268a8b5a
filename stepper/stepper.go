// Package stepper implements the bidirectional multi-axis cursor
// and the broadcast-aware traversal it powers. A
// Stepper never carries expression-graph knowledge: a Leaf walks a flat
// buffer, a Composite forwards every operation to a fixed-arity tuple
// of child Steppers and applies a caller-supplied reduction on
// dereference. This keeps the package free of any dependency on the
// expr package that builds expression nodes on top of it.
package stepper

import (
	"github.com/itohio/ndexpr/dtype"
	"github.com/itohio/ndexpr/shape"
)

// Stepper is a multi-axis cursor into an expression's traversal order.
// All values flow through float64 — per spec.md's data model, every
// expression surfaces float64 on element access and dereference
// regardless of its declared DType, the same design the teacher's
// Tensor.At/SetAt interface uses internally.
type Stepper interface {
	// Step advances the cursor by one position along axis. A no-op for
	// any axis below the stepper's leading-broadcast offset.
	Step(axis int)
	// StepN advances by n positions along axis.
	StepN(axis, n int)
	// StepBack rewinds by one position along axis.
	StepBack(axis int)
	// StepBackN rewinds by n positions along axis.
	StepBackN(axis, n int)
	// Reset rewinds the cursor by Backstrides[axis], undoing a full
	// forward sweep of that axis.
	Reset(axis int)
	// ResetBack advances the cursor by Backstrides[axis], undoing a
	// full reverse sweep of that axis.
	ResetBack(axis int)
	// ToBegin repositions the cursor at the first element.
	ToBegin()
	// ToEnd repositions the cursor at the canonical end-of-traversal
	// sentinel for layout.
	ToEnd(layout shape.Layout)
	// Deref returns the value at the cursor's current position.
	Deref() float64
}

// Leaf is a container-backed stepper: a pointer into a flat buffer plus
// a borrowed strides/backstrides snapshot.
type Leaf[T dtype.Numeric] struct {
	buf         []T
	strides     shape.Strides
	backstrides shape.Backstrides
	offset      int // count of leading target axes this expression doesn't have
	pos         int
}

// NewLeaf builds a Leaf stepper over buf with the given (own-rank)
// strides/backstrides, starting at startPos, with the stated count of
// leading target axes the underlying expression lacks (
// "Stepper offset for leading broadcast axes").
func NewLeaf[T dtype.Numeric](buf []T, strides shape.Strides, backstrides shape.Backstrides, offset, startPos int) *Leaf[T] {
	return &Leaf[T]{buf: buf, strides: strides, backstrides: backstrides, offset: offset, pos: startPos}
}

func (l *Leaf[T]) Step(axis int) {
	if axis < l.offset {
		return
	}
	l.pos += l.strides[axis-l.offset]
}

func (l *Leaf[T]) StepN(axis, n int) {
	if axis < l.offset {
		return
	}
	l.pos += n * l.strides[axis-l.offset]
}

func (l *Leaf[T]) StepBack(axis int) {
	if axis < l.offset {
		return
	}
	l.pos -= l.strides[axis-l.offset]
}

func (l *Leaf[T]) StepBackN(axis, n int) {
	if axis < l.offset {
		return
	}
	l.pos -= n * l.strides[axis-l.offset]
}

func (l *Leaf[T]) Reset(axis int) {
	if axis < l.offset {
		return
	}
	l.pos -= l.backstrides[axis-l.offset]
}

func (l *Leaf[T]) ResetBack(axis int) {
	if axis < l.offset {
		return
	}
	l.pos += l.backstrides[axis-l.offset]
}

func (l *Leaf[T]) ToBegin() { l.pos = 0 }

// ToEnd repositions at len(buf): the single authoritative "end"
// position shared by linear iteration and the broadcast iterator's
// outermost-axis carry.
func (l *Leaf[T]) ToEnd(_ shape.Layout) { l.pos = len(l.buf) }

func (l *Leaf[T]) Deref() float64 {
	return float64(l.buf[l.pos])
}

// Pos exposes the current flat offset, used by callers (the assignment
// engine) that need to write through the same cursor Deref reads from.
func (l *Leaf[T]) Pos() int { return l.pos }

// SetAt writes v (converted to T) at the current cursor position.
func (l *Leaf[T]) SetAt(v float64) {
	l.buf[l.pos] = T(v)
}

// Constant is a stepper over a single value that never varies with
// position -- the stepper a Scalar expression hands out (
// scalar lift is broadcast-identity, so every axis operation is a
// no-op and Deref always returns the same value).
type Constant struct {
	value float64
}

// NewConstant builds a stepper that dereferences to value at every
// position, regardless of how far it is stepped.
func NewConstant(value float64) *Constant { return &Constant{value: value} }

func (c *Constant) Step(int)          {}
func (c *Constant) StepN(int, int)    {}
func (c *Constant) StepBack(int)      {}
func (c *Constant) StepBackN(int, int) {}
func (c *Constant) Reset(int)         {}
func (c *Constant) ResetBack(int)     {}
func (c *Constant) ToBegin()          {}
func (c *Constant) ToEnd(shape.Layout) {}
func (c *Constant) Deref() float64    { return c.value }

// Reduce is the arity-agnostic functor application a Composite stepper
// dereferences through: it receives the dereferenced child values, in
// child order, and returns the combined value.
type Reduce func(children []float64) float64

// Composite is an expression-node-backed stepper: it forwards every
// axis operation to a fixed-arity tuple of child Steppers and applies
// Reduce on dereference.
type Composite struct {
	children []Stepper
	apply    Reduce
	scratch  []float64
}

// NewComposite builds a Composite stepper over children, applying fn on
// dereference.
func NewComposite(children []Stepper, fn Reduce) *Composite {
	return &Composite{children: children, apply: fn, scratch: make([]float64, len(children))}
}

func (c *Composite) Step(axis int) {
	for _, ch := range c.children {
		ch.Step(axis)
	}
}

func (c *Composite) StepN(axis, n int) {
	for _, ch := range c.children {
		ch.StepN(axis, n)
	}
}

func (c *Composite) StepBack(axis int) {
	for _, ch := range c.children {
		ch.StepBack(axis)
	}
}

func (c *Composite) StepBackN(axis, n int) {
	for _, ch := range c.children {
		ch.StepBackN(axis, n)
	}
}

func (c *Composite) Reset(axis int) {
	for _, ch := range c.children {
		ch.Reset(axis)
	}
}

func (c *Composite) ResetBack(axis int) {
	for _, ch := range c.children {
		ch.ResetBack(axis)
	}
}

func (c *Composite) ToBegin() {
	for _, ch := range c.children {
		ch.ToBegin()
	}
}

func (c *Composite) ToEnd(layout shape.Layout) {
	for _, ch := range c.children {
		ch.ToEnd(layout)
	}
}

func (c *Composite) Deref() float64 {
	for i, ch := range c.children {
		c.scratch[i] = ch.Deref()
	}
	return c.apply(c.scratch)
}
