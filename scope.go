package mustache

import (
	"github.com/skyformat99/mustache/value"
)

// Frame is one level of the scope chain. A frame is created when the
// renderer enters a section and discarded when the section closes, so the
// chain length always equals the current nesting depth. The root frame
// holds the caller's document.
//
// Frames hold non-owning views into the document tree and are read-only
// after construction.
type Frame struct {
	context value.Value
	parent  *Frame
}

// newFrame pushes a child frame whose context is the given value.
func newFrame(parent *Frame, context value.Value) *Frame {
	return &Frame{context: context, parent: parent}
}

// Context returns the value bound at this nesting depth.
func (f *Frame) Context() value.Value {
	return f.context
}

// Parent returns the enclosing frame, or nil at the root.
func (f *Frame) Parent() *Frame {
	return f.parent
}

// depth returns the chain length, for diagnostics.
func (f *Frame) depth() int {
	n := 0
	for ; f != nil; f = f.parent {
		n++
	}
	return n
}
