package bayestree_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/junctree/bayestree"
	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/symbolic"
)

type keys = []inference.Key

func cond(frontals, parents keys) []symbolic.Conditional {
	return []symbolic.Conditional{symbolic.NewConditional(frontals, parents)}
}

func TestTree_Structure(t *testing.T) {
	bt := bayestree.New[symbolic.Conditional]()
	root := bt.AddClique(nil, keys{"B", "C"}, nil, cond(keys{"B", "C"}, nil))
	a := bt.AddClique(root, keys{"A"}, keys{"B"}, cond(keys{"A"}, keys{"B"}))
	d := bt.AddClique(root, keys{"D"}, keys{"C"}, cond(keys{"D"}, keys{"C"}))
	bt.AddClique(nil, keys{"E"}, nil, cond(keys{"E"}, nil))

	assert.Equal(t, 4, bt.Size())
	assert.Len(t, bt.Roots(), 2)
	assert.Same(t, root, bt.Clique("C"))
	assert.Same(t, a, bt.Clique("A"))
	assert.Nil(t, bt.Clique("Z"))
	assert.Same(t, root, d.Parent())
	assert.Equal(t, []*bayestree.Clique[symbolic.Conditional]{a, d}, root.Children())

	var got []string
	for _, c := range bt.Conditionals() {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{"P(B,C)", "P(A|B)", "P(D|C)", "P(E)"}, got)
	assert.Equal(t, "B,C P(B,C)\n  A : B P(A|B)\n  D : C P(D|C)\nE P(E)\n", bt.String())
}

func TestTree_ForeignParentPanics(t *testing.T) {
	a := bayestree.New[symbolic.Conditional]()
	b := bayestree.New[symbolic.Conditional]()
	root := a.AddClique(nil, keys{"A"}, nil, nil)
	assert.Panics(t, func() { b.AddClique(root, keys{"B"}, keys{"A"}, nil) })
}

func TestTree_PreOrderStops(t *testing.T) {
	bt := bayestree.New[symbolic.Conditional]()
	root := bt.AddClique(nil, keys{"A"}, nil, nil)
	bt.AddClique(root, keys{"B"}, keys{"A"}, nil)
	n := 0
	err := bt.PreOrder(func(*bayestree.Clique[symbolic.Conditional]) error {
		n++
		return fmt.Errorf("stop")
	})
	require.Error(t, err)
	assert.Equal(t, 1, n)
}
