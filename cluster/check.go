package cluster

import (
	"fmt"

	"github.com/katalvlaran/junctree/inference"
)

// Check verifies the partition and running-intersection properties against
// ordering, and that every child's frontals precede its parent's. It returns
// the first violation found, wrapping ErrPartition, ErrRunningIntersection or
// ErrEliminationOrder.
// Complexity: O(N · |scope|).
func (t *Tree[F]) Check(ordering inference.Ordering) error {
	// 1. Partition: each ordered key frontal exactly once, nothing else frontal
	owner := make(map[inference.Key]int, len(ordering))
	for _, c := range t.clusters {
		for _, k := range c.Frontals {
			if prev, dup := owner[k]; dup {
				return fmt.Errorf("%w: %q frontal in clusters %d and %d", ErrPartition, k, prev, c.ID)
			}
			owner[k] = c.ID
		}
	}
	for _, k := range ordering {
		if _, ok := owner[k]; !ok {
			return fmt.Errorf("%w: %q is frontal nowhere", ErrPartition, k)
		}
	}
	idx := ordering.Index()
	if len(owner) != len(ordering) {
		for k := range owner {
			if _, ok := idx[k]; !ok {
				return fmt.Errorf("%w: %q is frontal but not ordered", ErrPartition, k)
			}
		}
	}

	// 2. Running intersection: separator ⊆ scope(parent)
	for _, c := range t.clusters {
		if c.parent == nil {
			if len(c.Separator) > 0 {
				return fmt.Errorf("%w: root %d has separator %v", ErrRunningIntersection, c.ID, c.Separator)
			}
			continue
		}
		scope := make(map[inference.Key]struct{}, len(c.parent.Frontals)+len(c.parent.Separator))
		for _, k := range c.parent.Scope() {
			scope[k] = struct{}{}
		}
		for _, k := range c.Separator {
			if _, ok := scope[k]; !ok {
				return fmt.Errorf("%w: %q in separator of %d but not in parent %d", ErrRunningIntersection, k, c.ID, c.parent.ID)
			}
		}
	}

	// 3. Post-order compatibility: max child frontal < min parent frontal
	for _, c := range t.clusters {
		if c.parent == nil {
			continue
		}
		last := -1
		for _, k := range c.Frontals {
			if idx[k] > last {
				last = idx[k]
			}
		}
		for _, k := range c.parent.Frontals {
			if idx[k] <= last {
				return fmt.Errorf("%w: cluster %d frontal at position %d, parent %d frontal %q at %d",
					ErrEliminationOrder, c.ID, last, c.parent.ID, k, idx[k])
			}
		}
	}

	return nil
}
