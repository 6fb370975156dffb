package tensor

import "fmt"

// Backward runs the reverse pass of the computation graph rooted at t.
//
// The root must be a scalar (1-element buffer) that requires gradients.
// Backward walks the graph depth-first from the root, visiting each
// context's inputs before the node itself; the resulting post-order list is
// a valid reverse topological order for the DAG, and a visited set
// guarantees each node's gradient rule runs exactly once even when the node
// feeds multiple consumers. The root's gradient is set to one, then the
// list is consumed in reverse, invoking each context's rule with that
// node's accumulated gradient.
//
// Gradient accumulation is additive: tensors consumed by several downstream
// operations sum the contributions of every path. Gradients are never
// cleared here; callers zero them between independent passes.
func (t *Tensor) Backward() error {
	if !t.requiresGrad {
		return fmt.Errorf("%w: tensor does not require grad", ErrBackward)
	}
	if len(t.data) != 1 {
		return fmt.Errorf("%w: root must be a scalar, got shape %v", ErrBackward, t.shape)
	}

	order := topoSort(t)

	// d(root)/d(root) = 1.
	t.grad[0] = 1

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		if node.ctx != nil {
			node.ctx.Backward(node.grad)
		}
	}
	return nil
}

// topoSort returns the graph nodes reachable from root in depth-first
// post-order: every node appears after all of its inputs.
func topoSort(root *Tensor) []*Tensor {
	visited := make(map[*Tensor]struct{})
	order := make([]*Tensor, 0, 64)

	var visit func(*Tensor)
	visit = func(n *Tensor) {
		if _, ok := visited[n]; ok {
			return
		}
		visited[n] = struct{}{}
		if n.ctx != nil {
			for _, in := range n.ctx.Inputs {
				visit(in)
			}
		}
		order = append(order, n)
	}
	visit(root)
	return order
}
