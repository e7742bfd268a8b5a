package expr

import (
	"fmt"
	"iter"

	"github.com/itohio/ndexpr/dtype"
	"github.com/itohio/ndexpr/shape"
	"github.com/itohio/ndexpr/stepper"
)

// Functor is a pure, fixed-arity element function a Node applies
// pointwise across its children. Apply receives the
// children's dereferenced values in child order.
type Functor struct {
	Name  string
	Arity int
	Apply func(args []float64) float64
}

// Node is a lazy expression-graph node: a functor plus a
// fixed-arity tuple of child expressions. A Node never evaluates
// anything at construction time -- At, Seq and Broadcast all defer to
// the children, and DType is the promotion of the children's DTypes
// decided once, up front.
type Node struct {
	functor  Functor
	children []Expression
	dt       dtype.DType
}

// NewNode builds a Node applying f across children. Panics if the
// number of children does not match f's declared arity -- a
// programming error the caller's operator constructors (Add, Neg, Fma,
// ...) never trigger.
func NewNode(f Functor, children ...Expression) *Node {
	if len(children) != f.Arity {
		panic(fmt.Sprintf("expr: %s wants %d operand(s), got %d", f.Name, f.Arity, len(children)))
	}
	dt := children[0].DType()
	for _, c := range children[1:] {
		dt = dtype.Promote(dt, c.DType())
	}
	return &Node{functor: f, children: children, dt: dt}
}

func (n *Node) Dim() int {
	d := 0
	for _, c := range n.children {
		if c.Dim() > d {
			d = c.Dim()
		}
	}
	return d
}

func (n *Node) DType() dtype.DType { return n.dt }

// Shape folds every child's shape into a seed of 1s the width of Dim,
// the same accumulate-from-ones procedure the C8 assignment engine
// uses to size a computed target from its right-hand side. Panics on
// broadcast-incompatible children; call BroadcastShape directly for a
// fallible query.
func (n *Node) Shape() shape.Shape {
	out := make(shape.Shape, n.Dim())
	for i := range out {
		out[i] = 1
	}
	if _, err := n.BroadcastShape(&out); err != nil {
		panic(err)
	}
	return out
}

func (n *Node) BroadcastShape(out *shape.Shape) (bool, error) {
	trivial := true
	for _, c := range n.children {
		t, err := c.BroadcastShape(out)
		if err != nil {
			return false, err
		}
		trivial = trivial && t
	}
	return trivial, nil
}

func (n *Node) IsTrivialBroadcast(strides shape.Strides) bool {
	for _, c := range n.children {
		if !c.IsTrivialBroadcast(strides) {
			return false
		}
	}
	return true
}

func (n *Node) At(indices ...int) float64 {
	var buf [3]float64
	args := buf[:n.functor.Arity]
	for i, c := range n.children {
		args[i] = c.At(indices...)
	}
	return n.functor.Apply(args)
}

func (n *Node) Seq() iter.Seq[float64] {
	return n.Broadcast(n.Shape(), shape.RowMajor)
}

func (n *Node) Broadcast(target shape.Shape, layout shape.Layout) iter.Seq[float64] {
	return drive(n.Stepper(target, layout), target, layout, n)
}

// Stepper builds a Composite stepper over one child stepper per
// operand, each re-indexed against target. The functor's Apply is
// reused directly as the Composite's Reduce -- both are
// func([]float64) float64 over the dereferenced child values, so no
// adapter is needed.
func (n *Node) Stepper(target shape.Shape, layout shape.Layout) stepper.Stepper {
	children := make([]stepper.Stepper, len(n.children))
	for i, c := range n.children {
		children[i] = c.Stepper(target, layout)
	}
	return stepper.NewComposite(children, n.functor.Apply)
}
