package bayestree

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/junctree/inference"
)

// Clique is one node of the Bayes tree.
type Clique[C inference.Conditional] struct {
	ID           int
	Frontals     []inference.Key
	Separator    []inference.Key
	Conditionals []C

	parent   *Clique[C]
	children []*Clique[C]
	tree     *Tree[C]
}

// Parent returns the parent clique, nil at a root.
func (c *Clique[C]) Parent() *Clique[C] { return c.parent }

// Children returns child cliques in insertion order.
func (c *Clique[C]) Children() []*Clique[C] { return c.children }

// Tree is a forest of cliques indexed by ID and by frontal key.
type Tree[C inference.Conditional] struct {
	roots   []*Clique[C]
	cliques []*Clique[C]
	byKey   map[inference.Key]*Clique[C]
}

// New returns an empty Bayes tree.
func New[C inference.Conditional]() *Tree[C] {
	return &Tree[C]{byKey: make(map[inference.Key]*Clique[C])}
}

// AddClique appends a clique under parent (nil for a root). IDs are assigned
// densely in call order. Panics if parent belongs to another tree.
func (t *Tree[C]) AddClique(parent *Clique[C], frontals, separator []inference.Key, conds []C) *Clique[C] {
	if parent != nil && parent.tree != t {
		panic(fmt.Sprintf("bayestree: parent %d is not part of this tree", parent.ID))
	}
	c := &Clique[C]{
		ID:           len(t.cliques),
		Frontals:     append([]inference.Key(nil), frontals...),
		Separator:    append([]inference.Key(nil), separator...),
		Conditionals: conds,
		parent:       parent,
		tree:         t,
	}
	t.cliques = append(t.cliques, c)
	for _, k := range c.Frontals {
		t.byKey[k] = c
	}
	if parent == nil {
		t.roots = append(t.roots, c)
	} else {
		parent.children = append(parent.children, c)
	}

	return c
}

// Roots returns the root cliques.
func (t *Tree[C]) Roots() []*Clique[C] { return t.roots }

// Cliques returns every clique indexed by ID.
func (t *Tree[C]) Cliques() []*Clique[C] { return t.cliques }

// Size returns the number of cliques.
func (t *Tree[C]) Size() int { return len(t.cliques) }

// Clique returns the clique in which key is frontal, or nil.
func (t *Tree[C]) Clique(key inference.Key) *Clique[C] { return t.byKey[key] }

// PreOrder visits cliques parents-first. A non-nil error stops the walk.
func (t *Tree[C]) PreOrder(fn func(c *Clique[C]) error) error {
	stack := make([]*Clique[C], 0, len(t.cliques))
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
		for i = len(c.children) - 1; i >= 0; i-- {
			stack = append(stack, c.children[i])
		}
	}

	return nil
}

// Conditionals flattens every clique's conditionals in pre-order.
func (t *Tree[C]) Conditionals() []C {
	var out []C
	_ = t.PreOrder(func(c *Clique[C]) error {
		out = append(out, c.Conditionals...)
		return nil
	})

	return out
}

// String prints one clique per line, indented by depth, followed by its
// conditionals rendered with %v.
func (t *Tree[C]) String() string {
	var sb strings.Builder
	depth := make(map[int]int, len(t.cliques))
	_ = t.PreOrder(func(c *Clique[C]) error {
		d := 0
		if c.parent != nil {
			d = depth[c.parent.ID] + 1
		}
		depth[c.ID] = d
		sb.WriteString(strings.Repeat("  ", d))
		sb.WriteString(inference.FormatKeys(c.Frontals))
		if len(c.Separator) > 0 {
			sb.WriteString(" : ")
			sb.WriteString(inference.FormatKeys(c.Separator))
		}
		for _, cond := range c.Conditionals {
			fmt.Fprintf(&sb, " %v", cond)
		}
		sb.WriteByte('\n')

		return nil
	})

	return sb.String()
}
