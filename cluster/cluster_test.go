package cluster_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/junctree/cluster"
	"github.com/katalvlaran/junctree/inference"
)

type scope []inference.Key

func (s scope) Keys() []inference.Key { return s }

type keys = []inference.Key

// buildForest creates
//
//	0: D
//	  1: B,C : D
//	    2: A : B
//	  3: E : D
//	4: F
func buildForest() *cluster.Tree[scope] {
	t := cluster.New[scope]()
	d := t.AddCluster(nil, keys{"D"}, nil)
	bc := t.AddCluster(d, keys{"B", "C"}, keys{"D"})
	t.AddCluster(bc, keys{"A"}, keys{"B"})
	t.AddCluster(d, keys{"E"}, keys{"D"})
	t.AddCluster(nil, keys{"F"}, nil)

	return t
}

func ids(t *testing.T, walk func(func(*cluster.Cluster[scope]) error) error) []int {
	t.Helper()
	var out []int
	require.NoError(t, walk(func(c *cluster.Cluster[scope]) error {
		out = append(out, c.ID)
		return nil
	}))

	return out
}

func TestTraversalOrder(t *testing.T) {
	tr := buildForest()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ids(t, tr.PreOrder))
	assert.Equal(t, []int{2, 1, 3, 0, 4}, ids(t, tr.PostOrder))
}

func TestTraversalStopsOnError(t *testing.T) {
	tr := buildForest()
	stop := errors.New("stop")
	visited := 0
	err := tr.PostOrder(func(c *cluster.Cluster[scope]) error {
		visited++
		if c.ID == 1 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}

func TestDeepChainNoRecursion(t *testing.T) {
	tr := cluster.New[scope]()
	var parent *cluster.Cluster[scope]
	const n = 100000
	for i := 0; i < n; i++ {
		parent = tr.AddCluster(parent, keys{inference.Key(fmt.Sprint(i))}, nil)
	}
	count := 0
	require.NoError(t, tr.PostOrder(func(*cluster.Cluster[scope]) error { count++; return nil }))
	assert.Equal(t, n, count)
	assert.Equal(t, n-1, tr.Depth(parent))
}

func TestAccessors(t *testing.T) {
	tr := buildForest()
	assert.Equal(t, 5, tr.Len())
	assert.Len(t, tr.Roots(), 2)
	a := tr.Cluster(2)
	require.NotNil(t, a)
	assert.False(t, a.IsRoot())
	assert.Equal(t, 1, a.Parent().ID)
	assert.Equal(t, keys{"A", "B"}, a.Scope())
	assert.Nil(t, tr.Cluster(5))
	assert.Nil(t, tr.Cluster(-1))

	a.Push(scope{"A"}, scope{"A", "B"})
	tr.Cluster(0).Push(scope{"D"})
	assert.Equal(t, 3, tr.FactorCount())
	assert.Equal(t, "D (1)\n  B,C : D (0)\n    A : B (2)\n  E : D (0)\nF (0)\n", tr.String())
}

func TestAddClusterForeignParentPanics(t *testing.T) {
	a := cluster.New[scope]()
	b := cluster.New[scope]()
	root := a.AddCluster(nil, keys{"A"}, nil)
	assert.Panics(t, func() { b.AddCluster(root, keys{"B"}, keys{"A"}) })
}

func TestCheck(t *testing.T) {
	ordering := inference.Ordering{"A", "B", "C", "E", "D", "F"}
	assert.NoError(t, buildForest().Check(ordering))

	cases := []struct {
		name  string
		build func() *cluster.Tree[scope]
		ord   inference.Ordering
		want  error
	}{
		{"missing key", buildForest, append(ordering[:len(ordering):len(ordering)], "G"), cluster.ErrPartition},
		{"unordered frontal", buildForest, ordering[:5], cluster.ErrPartition},
		{"duplicate frontal", func() *cluster.Tree[scope] {
			tr := buildForest()
			tr.AddCluster(nil, keys{"A"}, nil)
			return tr
		}, ordering, cluster.ErrPartition},
		{"separator outside parent", func() *cluster.Tree[scope] {
			tr := cluster.New[scope]()
			r := tr.AddCluster(nil, keys{"B"}, nil)
			tr.AddCluster(r, keys{"A"}, keys{"C"})
			return tr
		}, inference.Ordering{"A", "B"}, cluster.ErrRunningIntersection},
		{"child ordered after parent", func() *cluster.Tree[scope] {
			tr := cluster.New[scope]()
			r := tr.AddCluster(nil, keys{"B"}, nil)
			tr.AddCluster(r, keys{"A"}, keys{"B"})
			return tr
		}, inference.Ordering{"B", "A"}, cluster.ErrEliminationOrder},
		{"root with separator", func() *cluster.Tree[scope] {
			tr := cluster.New[scope]()
			tr.AddCluster(nil, keys{"A"}, keys{"B"})
			return tr
		}, inference.Ordering{"A"}, cluster.ErrRunningIntersection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.build().Check(tc.ord), tc.want)
		})
	}
}
