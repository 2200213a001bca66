package cluster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/junctree/inference"
)

// Sentinel errors returned by Check.
var (
	// ErrPartition indicates frontal sets overlap or miss an ordered key.
	ErrPartition = errors.New("cluster: frontal keys do not partition the ordering")

	// ErrRunningIntersection indicates a separator key not shared with the parent.
	ErrRunningIntersection = errors.New("cluster: running intersection property violated")

	// ErrEliminationOrder indicates a child cluster with a frontal key ordered
	// after one of its parent's frontal keys.
	ErrEliminationOrder = errors.New("cluster: child eliminated after its parent")
)

// Cluster is a node of the tree. Frontals and Separator are fixed at
// creation; Factors grows through Push until the tree is frozen by its owner.
type Cluster[F inference.Factor] struct {
	ID        int
	Frontals  []inference.Key
	Separator []inference.Key
	Factors   []F

	parent   *Cluster[F]
	children []*Cluster[F]
	tree     *Tree[F]
}

// Parent returns the parent cluster, nil at a root.
func (c *Cluster[F]) Parent() *Cluster[F] { return c.parent }

// Children returns the owned children in insertion order.
func (c *Cluster[F]) Children() []*Cluster[F] { return c.children }

// IsRoot reports whether c has no parent.
func (c *Cluster[F]) IsRoot() bool { return c.parent == nil }

// Push appends factors to the cluster.
func (c *Cluster[F]) Push(factors ...F) {
	c.Factors = append(c.Factors, factors...)
}

// Scope returns frontals followed by separator keys.
func (c *Cluster[F]) Scope() []inference.Key {
	out := make([]inference.Key, 0, len(c.Frontals)+len(c.Separator))
	out = append(out, c.Frontals...)

	return append(out, c.Separator...)
}

// Tree is a forest of clusters with an ID-indexed arena.
type Tree[F inference.Factor] struct {
	roots    []*Cluster[F]
	clusters []*Cluster[F]
}

// New returns an empty tree.
func New[F inference.Factor]() *Tree[F] {
	return &Tree[F]{}
}

// AddCluster creates a cluster under parent, or a new root when parent is
// nil. IDs are assigned densely in creation order.
// Panics if parent belongs to a different tree.
// Complexity: O(|frontals|+|separator|).
func (t *Tree[F]) AddCluster(parent *Cluster[F], frontals, separator []inference.Key) *Cluster[F] {
	if parent != nil && (parent.tree != t || parent.ID >= len(t.clusters) || t.clusters[parent.ID] != parent) {
		panic(fmt.Sprintf("cluster: parent %d is not part of this tree", parent.ID))
	}
	c := &Cluster[F]{
		ID:        len(t.clusters),
		Frontals:  append([]inference.Key(nil), frontals...),
		Separator: append([]inference.Key(nil), separator...),
		parent:    parent,
		tree:      t,
	}
	t.clusters = append(t.clusters, c)
	if parent == nil {
		t.roots = append(t.roots, c)
	} else {
		parent.children = append(parent.children, c)
	}

	return c
}

// Roots returns the root clusters.
func (t *Tree[F]) Roots() []*Cluster[F] { return t.roots }

// Len returns the number of clusters.
func (t *Tree[F]) Len() int { return len(t.clusters) }

// Cluster returns the cluster with the given id, or nil.
func (t *Tree[F]) Cluster(id int) *Cluster[F] {
	if id < 0 || id >= len(t.clusters) {
		return nil
	}

	return t.clusters[id]
}

// Clusters returns the arena, indexed by ID.
func (t *Tree[F]) Clusters() []*Cluster[F] { return t.clusters }

// FactorCount returns the total number of factors held by all clusters.
func (t *Tree[F]) FactorCount() int {
	n := 0
	for _, c := range t.clusters {
		n += len(c.Factors)
	}

	return n
}

// Depth returns the number of edges from c to its root.
func (t *Tree[F]) Depth(c *Cluster[F]) int {
	d := 0
	for p := c.parent; p != nil; p = p.parent {
		d++
	}

	return d
}

// String prints one cluster per line, indented by depth, with its factor count:
//
//	B,C (1)
//	  A : B (1)
func (t *Tree[F]) String() string {
	var sb strings.Builder
	_ = t.PreOrder(func(c *Cluster[F]) error {
		sb.WriteString(strings.Repeat("  ", t.Depth(c)))
		sb.WriteString(inference.FormatKeys(c.Frontals))
		if len(c.Separator) > 0 {
			sb.WriteString(" : ")
			sb.WriteString(inference.FormatKeys(c.Separator))
		}
		fmt.Fprintf(&sb, " (%d)\n", len(c.Factors))

		return nil
	})

	return sb.String()
}
