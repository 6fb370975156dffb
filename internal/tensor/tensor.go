// Package tensor implements the data container and dynamic computation graph
// for reverse-mode automatic differentiation.
//
// A Tensor couples a flat float64 buffer with a shape, an optional gradient
// buffer, and an optional Context. The Context links a tensor produced by a
// differentiable operation to its inputs and to the local gradient rule; the
// graph is implicit, reachable only by walking Context.Inputs from a root.
// It is rebuilt eagerly on every forward pass and consumed by Backward.
//
// The gradient buffer exists exactly when RequiresGrad is true, and every
// backward rule accumulates into it additively. Callers that run independent
// backward passes over the same parameters must zero gradients in between,
// or the contributions sum across passes.
package tensor

import (
	"fmt"
)

// Context records how a tensor was produced: the ordered inputs of the
// operation and the local gradient rule. Backward invokes the rule with the
// producing tensor's own accumulated gradient; the rule accumulates (never
// overwrites) into each input's gradient buffer.
//
// Only tensors produced by differentiable operations carry a Context.
// Directly constructed tensors, transposes, and reshape views do not.
type Context struct {
	// Inputs are the operation's operands, in order. They are shared with
	// the rest of the graph and live for the graph's duration.
	Inputs []*Tensor

	// Backward accumulates local gradients into the inputs, given the
	// producing tensor's accumulated upstream gradient.
	Backward func(upstream []float64)
}

// Tensor is an N-dimensional numeric buffer and a node in the implicit
// computation graph.
type Tensor struct {
	data         []float64
	shape        Shape
	requiresGrad bool
	grad         []float64 // present iff requiresGrad
	ctx          *Context  // present iff produced by a differentiable op
}

// New creates a tensor from a flat buffer and an explicit shape.
// The buffer is copied; the tensor owns its storage.
//
// Returns ErrShape if the buffer length does not equal the shape product.
func New(data []float64, shape Shape, requiresGrad bool) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: buffer length %d does not match shape %v (%d elements)",
			ErrShape, len(data), shape, shape.NumElements())
	}

	owned := make([]float64, len(data))
	copy(owned, data)

	t := &Tensor{
		data:         owned,
		shape:        shape.Clone(),
		requiresGrad: requiresGrad,
	}
	if requiresGrad {
		t.grad = make([]float64, len(owned))
	}
	return t, nil
}

// Data returns the underlying flat buffer. Mutations are visible to every
// view aliasing this tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Shape returns the tensor's dimensions.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the buffer length.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// RequiresGrad reports whether this tensor accumulates gradients.
func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

// Grad returns the gradient buffer, or nil when RequiresGrad is false.
// The buffer has the same length as Data and is written in place by
// Backward; a reshape view of this tensor observes the same buffer.
func (t *Tensor) Grad() []float64 {
	return t.grad
}

// ZeroGrad fills the gradient buffer with zeros. It is a no-op for tensors
// that do not require gradients.
func (t *Tensor) ZeroGrad() {
	for i := range t.grad {
		t.grad[i] = 0
	}
}

// Context returns the producing context, or nil for leaf tensors.
func (t *Tensor) Context() *Context {
	return t.ctx
}

// SetContext attaches the producing context. Called by operations when at
// least one input requires gradients.
func (t *Tensor) SetContext(ctx *Context) {
	t.ctx = ctx
}

// Reshape returns a view with a new shape over the same storage.
//
// The view aliases both the data and the gradient buffer of the source:
// in-place gradient accumulation through either tensor is observed by the
// other. The view carries no context and never appears as a graph node in
// its own right.
//
// Returns ErrShape if the element count differs.
func (t *Tensor) Reshape(dims ...int) (*Tensor, error) {
	shape := Shape(dims)
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v (%d elements) to %v (%d elements)",
			ErrShape, t.shape, len(t.data), shape, shape.NumElements())
	}
	return &Tensor{
		data:         t.data,
		shape:        shape.Clone(),
		requiresGrad: t.requiresGrad,
		grad:         t.grad,
	}, nil
}

// At returns the element at row i, column j of a 2D tensor.
func (t *Tensor) At(i, j int) float64 {
	return t.data[i*t.shape[1]+j]
}

// Set assigns the element at row i, column j of a 2D tensor.
func (t *Tensor) Set(i, j int, v float64) {
	t.data[i*t.shape[1]+j] = v
}

// String renders the shape and a data prefix, for debugging.
func (t *Tensor) String() string {
	const maxElems = 8
	if len(t.data) <= maxElems {
		return fmt.Sprintf("Tensor(shape=%v, data=%v)", t.shape, t.data)
	}
	return fmt.Sprintf("Tensor(shape=%v, data=%v...)", t.shape, t.data[:maxElems])
}
