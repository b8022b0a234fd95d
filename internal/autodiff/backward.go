package autodiff

// Backward computes d(v)/d(node) for every node reachable from v.
//
// Algorithm:
//  1. Seed v's gradient with 1
//  2. Order the graph so every node comes after all of its consumers
//  3. Walk that order, letting each node push its gradient to its inputs
//
// Step 3 relies on the ordering: by the time a node propagates, every node
// that uses it has already contributed to its accumulator.
//
// Gradients are added to, not replaced. Call ZeroGrad on leaves that take part
// in more than one backward pass.
func (v *Value) Backward() {
	v.grad = 1
	for _, node := range TopoSort(v) {
		node.propagate()
	}
}

// frame is one entry of the explicit depth-first work stack.
type frame struct {
	node *Value
	next int // Index of the next input to visit
}

// TopoSort returns every node reachable from root in reverse topological
// order: root first, and each node before all of its inputs.
//
// The traversal is a post-order depth-first search driven by an explicit
// stack, so graph depth is bounded by memory rather than goroutine stack size.
// Shared inputs are visited exactly once.
func TopoSort(root *Value) []*Value {
	visited := map[*Value]struct{}{root: {}}
	order := make([]*Value, 0, 16)
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.inputs) {
			in := top.node.inputs[top.next]
			top.next++
			if _, seen := visited[in]; !seen {
				visited[in] = struct{}{}
				stack = append(stack, frame{node: in})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
