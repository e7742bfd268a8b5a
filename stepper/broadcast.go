package stepper

import (
	"github.com/itohio/ndexpr/internal/kernel"
	"github.com/itohio/ndexpr/shape"
)

// BroadcastIter wraps a Stepper plus a target shape and advances it in
// broadcast-aware lexicographic order. Construct one with
// NewBroadcastIter per traversal — it is single-pass and not
// restartable in place, matching the iterator-factory
// contract ("you must request a fresh iterator").
type BroadcastIter struct {
	st     Stepper
	target shape.Shape
	index  []int
	layout shape.Layout
	parent  any // identity of the expression this iterator was spawned from
	done    bool
	started bool
}

// NewBroadcastIter builds an iterator over st, visiting target in the
// given layout's order. parent identifies the expression st was spawned
// from, used only for Equal. The index vector is borrowed from
// kernel's scratch-buffer pool and returned to it once the traversal
// runs to exhaustion (an abandoned, never-exhausted iterator simply
// forgoes reuse rather than leaking).
func NewBroadcastIter(st Stepper, target shape.Shape, layout shape.Layout, parent any) *BroadcastIter {
	index := kernel.GetInts(len(target))
	for i := range index {
		index[i] = 0
	}
	return &BroadcastIter{
		st:     st,
		target: target,
		index:  index,
		layout: layout,
		parent: parent,
	}
}

// Done reports whether the iterator has advanced past the final
// element (the single authoritative "end" state, shared by the linear
// and broadcast traversal paths).
func (b *BroadcastIter) Done() bool { return b.done }

// Value dereferences the current position. Calling Value after Done
// returns true is undefined, as with any Go iterator past its end.
func (b *BroadcastIter) Value() float64 { return b.st.Deref() }

// Next advances the cursor in lexicographic order: row-major carries
// from the trailing axis, column-major from the leading axis.
// Returns false once the traversal is exhausted.
//
// The cursor starts positioned at the first element, so the first call
// to Next reports that position without stepping; every later call
// performs one carry-increment. An extent-0 axis anywhere in target
// means the traversal yields nothing at all.
func (b *BroadcastIter) Next() bool {
	if b.done {
		return false
	}
	if !b.started {
		b.started = true
		if b.hasEmptyAxis() {
			b.finish()
			return false
		}
		return true
	}
	if len(b.target) == 0 {
		// A 0-dim target has exactly one position, already yielded.
		b.finish()
		return false
	}

	if b.layout == shape.ColMajor {
		return b.advanceColMajor()
	}
	return b.advanceRowMajor()
}

// finish marks the traversal exhausted and returns the index vector to
// kernel's scratch-buffer pool -- the single point every exhaustion
// path (empty axis, 0-dim target, outermost-axis carry) converges on.
func (b *BroadcastIter) finish() {
	b.done = true
	kernel.PutInts(b.index)
	b.index = nil
}

func (b *BroadcastIter) hasEmptyAxis() bool {
	for _, extent := range b.target {
		if extent == 0 {
			return true
		}
	}
	return false
}

func (b *BroadcastIter) advanceRowMajor() bool {
	for axis := len(b.target) - 1; axis >= 0; axis-- {
		b.index[axis]++
		if b.index[axis] < b.target[axis] {
			b.st.Step(axis)
			return true
		}
		b.index[axis] = 0
		b.st.Reset(axis)
		if axis == 0 {
			b.st.ToEnd(b.layout)
			b.finish()
			return false
		}
	}
	return false
}

func (b *BroadcastIter) advanceColMajor() bool {
	last := len(b.target) - 1
	for axis := 0; axis <= last; axis++ {
		b.index[axis]++
		if b.index[axis] < b.target[axis] {
			b.st.Step(axis)
			return true
		}
		b.index[axis] = 0
		b.st.Reset(axis)
		if axis == last {
			b.st.ToEnd(b.layout)
			b.finish()
			return false
		}
	}
	return false
}

// Equal reports whether two iterators share the same parent expression
// and the same index-vector position. This is the corrected form of
// a self-referential equality bug flagged during review: both
// sides of the comparison are the receiver and the argument, never the
// receiver against itself.
func (b *BroadcastIter) Equal(o *BroadcastIter) bool {
	if b.parent != o.parent {
		return false
	}
	if len(b.index) != len(o.index) {
		return false
	}
	for i := range b.index {
		if b.index[i] != o.index[i] {
			return false
		}
	}
	return true
}
