package symbolic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/junctree/inference"
)

var (
	// ErrParentMissing indicates a conditional was inserted before the
	// clique holding its first parent (insertion must be in reverse
	// elimination order).
	ErrParentMissing = errors.New("symbolic: parent clique not found")

	// ErrDuplicateFrontal indicates a key was made frontal in two cliques.
	ErrDuplicateFrontal = errors.New("symbolic: key is already frontal in another clique")

	// ErrEmptyFrontals indicates a clique without frontal variables.
	ErrEmptyFrontals = errors.New("symbolic: clique has no frontal keys")
)

// Clique is one node of a symbolic Bayes tree.
type Clique struct {
	ID        int
	Frontals  []inference.Key // in elimination order
	Separator []inference.Key // in elimination order

	parent   *Clique // non-owning back-reference
	children []*Clique
	tree     *BayesTree
}

// Parent returns the parent clique or nil at a root.
func (c *Clique) Parent() *Clique { return c.parent }

// Children returns the child cliques in insertion order.
func (c *Clique) Children() []*Clique { return c.children }

// Scope returns frontals followed by separator keys.
func (c *Clique) Scope() []inference.Key {
	out := make([]inference.Key, 0, len(c.Frontals)+len(c.Separator))
	out = append(out, c.Frontals...)

	return append(out, c.Separator...)
}

// BayesTree is the clique structure implied by an elimination ordering.
type BayesTree struct {
	roots   []*Clique
	cliques []*Clique                 // id → clique
	byKey   map[inference.Key]*Clique // frontal key → owning clique
}

// NewBayesTree returns an empty tree.
func NewBayesTree() *BayesTree {
	return &BayesTree{byKey: make(map[inference.Key]*Clique)}
}

// Roots returns the root cliques, one per connected component.
func (bt *BayesTree) Roots() []*Clique { return bt.roots }

// Cliques returns every clique indexed by ID.
func (bt *BayesTree) Cliques() []*Clique { return bt.cliques }

// Size returns the number of cliques.
func (bt *BayesTree) Size() int { return len(bt.cliques) }

// Clique returns the clique where key is frontal, or nil.
func (bt *BayesTree) Clique(key inference.Key) *Clique { return bt.byKey[key] }

// AddClique creates a clique under parent (nil for a new root) with the given
// frontal and separator keys. It is the entry point for callers that supply
// their own symbolic structure.
//
// A parent that belongs to another tree is a contract violation and panics.
func (bt *BayesTree) AddClique(parent *Clique, frontals, separator []inference.Key) (*Clique, error) {
	// 1. Validate
	if parent != nil && parent.tree != bt {
		panic("symbolic: AddClique parent does not belong to this tree")
	}
	if len(frontals) == 0 {
		return nil, ErrEmptyFrontals
	}
	for _, k := range frontals {
		if other, dup := bt.byKey[k]; dup {
			return nil, fmt.Errorf("%w: %q (clique %d)", ErrDuplicateFrontal, k, other.ID)
		}
	}

	// 2. Create and link
	c := &Clique{
		ID:        len(bt.cliques),
		Frontals:  append([]inference.Key(nil), frontals...),
		Separator: append([]inference.Key(nil), separator...),
		parent:    parent,
		tree:      bt,
	}
	bt.cliques = append(bt.cliques, c)
	for _, k := range c.Frontals {
		bt.byKey[k] = c
	}
	if parent == nil {
		bt.roots = append(bt.roots, c)
	} else {
		parent.children = append(parent.children, c)
	}

	return c, nil
}

// Insert adds a single-frontal conditional. Conditionals must arrive in
// reverse elimination order and carry parents sorted by idx.
//
// Rule: P(j | S) with S empty starts a new root. Otherwise the clique C
// owning S[0] is located; if |S| equals |scope(C)| then S == scope(C) and j
// becomes C's first frontal, else a child clique {j | S} is created under C.
func (bt *BayesTree) Insert(c Conditional, idx map[inference.Key]int) error {
	if len(c.frontals) != 1 {
		return fmt.Errorf("symbolic: Insert expects one frontal, got %d", len(c.frontals))
	}
	key := c.frontals[0]
	if _, dup := bt.byKey[key]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateFrontal, key)
	}
	if len(c.parents) == 0 {
		_, err := bt.AddClique(nil, c.frontals, nil)
		return err
	}

	parents := append([]inference.Key(nil), c.parents...)
	inference.SortByOrder(parents, idx)
	pc, ok := bt.byKey[parents[0]]
	if !ok {
		return fmt.Errorf("%w: %q for %q", ErrParentMissing, parents[0], key)
	}

	if len(parents) == len(pc.Frontals)+len(pc.Separator) {
		// Same scope: merge as a new leading frontal.
		pc.Frontals = append([]inference.Key{key}, pc.Frontals...)
		bt.byKey[key] = pc

		return nil
	}
	_, err := bt.AddClique(pc, c.frontals, parents)

	return err
}

// PreOrder visits every clique parents-first, roots in insertion order.
func (bt *BayesTree) PreOrder(fn func(c *Clique) error) error {
	stack := make([]*Clique, 0, len(bt.cliques))
	for i := len(bt.roots) - 1; i >= 0; i-- {
		stack = append(stack, bt.roots[i])
	}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(c); err != nil {
			return err
		}
		for i := len(c.children) - 1; i >= 0; i-- {
			stack = append(stack, c.children[i])
		}
	}

	return nil
}

// String prints one clique per line, indented by depth:
//
//	B,C
//	  A : B
func (bt *BayesTree) String() string {
	var sb strings.Builder
	depth := make(map[*Clique]int, len(bt.cliques))
	_ = bt.PreOrder(func(c *Clique) error {
		d := 0
		if c.parent != nil {
			d = depth[c.parent] + 1
		}
		depth[c] = d
		sb.WriteString(strings.Repeat("  ", d))
		sb.WriteString(inference.FormatKeys(c.Frontals))
		if len(c.Separator) > 0 {
			sb.WriteString(" : ")
			sb.WriteString(inference.FormatKeys(c.Separator))
		}
		sb.WriteByte('\n')

		return nil
	})

	return sb.String()
}
