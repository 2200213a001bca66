package symbolic

import (
	"github.com/katalvlaran/junctree/inference"
)

// EliminateSequential runs symbolic variable elimination over the factor key
// sets in connectivity under ordering and returns one conditional per ordered
// key, in elimination order. Parents of every conditional are sorted by
// elimination position.
//
// Keys of connectivity missing from the ordering yield a *inference.UsageError.
// Ordering keys touched by no factor produce a parentless conditional.
//
// Complexity: O(Σ|S_j| · log|S_j|) where S_j is the separator created at step j.
func EliminateSequential(connectivity [][]inference.Key, ordering inference.Ordering) ([]Conditional, error) {
	// 1. Validate the ordering itself
	if err := ordering.Validate(); err != nil {
		return nil, err
	}
	idx := ordering.Index()

	// 2. Build the pool of pending key sets and the key → factor index
	pool := make([][]inference.Key, 0, len(connectivity)+len(ordering))
	alive := make([]bool, 0, cap(pool))
	byKey := make(map[inference.Key][]int, len(ordering))
	var (
		i int
		k inference.Key
	)
	for i = range connectivity {
		for _, k = range connectivity[i] {
			if _, ok := idx[k]; !ok {
				return nil, &inference.UsageError{Key: k, Reason: "graph variable missing from ordering"}
			}
			byKey[k] = append(byKey[k], i)
		}
		pool = append(pool, connectivity[i])
		alive = append(alive, true)
	}

	// 3. Eliminate keys one by one
	out := make([]Conditional, 0, len(ordering))
	for _, k = range ordering {
		scope := make(map[inference.Key]struct{})
		for _, i = range byKey[k] {
			if !alive[i] {
				continue
			}
			alive[i] = false // factor is consumed by this step
			for _, other := range pool[i] {
				scope[other] = struct{}{}
			}
		}
		delete(scope, k)
		delete(byKey, k)

		parents := make([]inference.Key, 0, len(scope))
		for other := range scope {
			parents = append(parents, other)
		}
		inference.SortByOrder(parents, idx)
		out = append(out, Conditional{frontals: []inference.Key{k}, parents: parents})

		// 4. Push the fill-in factor over the separator
		if len(parents) > 0 {
			id := len(pool)
			pool = append(pool, parents)
			alive = append(alive, true)
			for _, p := range parents {
				byKey[p] = append(byKey[p], id)
			}
		}
	}

	return out, nil
}

// Eliminate runs EliminateSequential and assembles the resulting Bayes net
// into a symbolic Bayes tree.
func Eliminate(connectivity [][]inference.Key, ordering inference.Ordering) (*BayesTree, error) {
	bayesNet, err := EliminateSequential(connectivity, ordering)
	if err != nil {
		return nil, err
	}
	idx := ordering.Index()
	bt := NewBayesTree()
	// Reverse elimination order guarantees parents exist before children.
	for i := len(bayesNet) - 1; i >= 0; i-- {
		if err = bt.Insert(bayesNet[i], idx); err != nil {
			return nil, err
		}
	}

	return bt, nil
}
