package array

import "errors"

// ErrIndexOutOfRange is returned (or panicked with, via At) when an
// index vector addresses a position outside a container's shape.
var ErrIndexOutOfRange = errors.New("array: index out of range")

// ErrAllocationFailed is returned when a container's backing buffer
// cannot be sized as requested (e.g. a negative or overflowing extent).
var ErrAllocationFailed = errors.New("array: allocation failed")

// ErrEmptyAxis is returned by operations that cannot act on a
// container with a zero-extent axis (an empty buffer has no data for
// the Mean/Max/Min reductions to operate on).
var ErrEmptyAxis = errors.New("array: empty axis")

// ErrShapeMismatch is returned by Reshape when the requested shape's
// size does not match the container's current size, or when the
// container's buffer is not contiguous.
var ErrShapeMismatch = errors.New("array: shape mismatch")

// ErrRankMismatch is returned by View/Transpose when the caller passes
// the wrong number of axis arguments for the container's rank, and by
// Transpose when its axes are not a permutation of 0..Dim()-1.
var ErrRankMismatch = errors.New("array: rank mismatch")
