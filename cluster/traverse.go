package cluster

// PreOrder calls fn on every cluster, parents before children, roots and
// siblings in insertion order. A non-nil error from fn stops the walk.
// Complexity: O(N) time, O(N) worst-case stack.
func (t *Tree[F]) PreOrder(fn func(c *Cluster[F]) error) error {
	stack := make([]*Cluster[F], 0, len(t.clusters))
	var i int
	for i = len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, t.roots[i])
	}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(c); err != nil {
			return err
		}
		// push children reversed so the first child pops first
		for i = len(c.children) - 1; i >= 0; i-- {
			stack = append(stack, c.children[i])
		}
	}

	return nil
}

// PostOrder calls fn on every cluster after all of its children, roots and
// siblings in insertion order. A non-nil error from fn stops the walk.
// Complexity: O(N) time, O(N) worst-case stack.
func (t *Tree[F]) PostOrder(fn func(c *Cluster[F]) error) error {
	type frame struct {
		c    *Cluster[F]
		next int // index of the next child to descend into
	}
	stack := make([]frame, 0, len(t.clusters))
	for _, root := range t.roots {
		stack = append(stack, frame{c: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.c.children) {
				child := top.c.children[top.next]
				top.next++
				stack = append(stack, frame{c: child})
				continue
			}
			stack = stack[:len(stack)-1]
			if err := fn(top.c); err != nil {
				return err
			}
		}
	}

	return nil
}
