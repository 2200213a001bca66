package junction

import (
	"github.com/katalvlaran/junctree/cluster"
	"github.com/katalvlaran/junctree/inference"
)

// distribute attaches every factor of fg to exactly one cluster: the one
// whose frontal set holds the factor's first-eliminated key.
//
// Factors are bucketed by that key into a pending pool. A post-order walk
// lets every cluster claim the buckets of its frontal keys, deeper cliques
// first, and checks that each claimed factor fits the cluster scope. The pool
// must be empty afterwards.
func (t *Tree[F]) distribute(fg *inference.FactorGraph[F]) error {
	// 1. Bucket factors by first-eliminated key
	pending := make(map[inference.Key][]int, len(t.ordering))
	remaining := 0
	var (
		i     int
		k     inference.Key
		first inference.Key
	)
	for i = 0; i < fg.Len(); i++ {
		keys := fg.At(i).Keys()
		if len(keys) == 0 {
			return &inference.DistributionError{Factor: i, Clique: -1, Reason: "factor has no keys"}
		}
		first = keys[0]
		for _, k = range keys[1:] {
			if t.index[k] < t.index[first] {
				first = k
			}
		}
		pending[first] = append(pending[first], i)
		remaining++
	}

	// 2. Clusters claim their buckets, children before parents
	err := t.PostOrder(func(c *cluster.Cluster[F]) error {
		var scope map[inference.Key]struct{}
		for _, k := range c.Frontals {
			bucket, ok := pending[k]
			if !ok {
				continue
			}
			if scope == nil {
				scope = make(map[inference.Key]struct{}, len(c.Frontals)+len(c.Separator))
				for _, s := range c.Scope() {
					scope[s] = struct{}{}
				}
			}
			for _, fi := range bucket {
				f := fg.At(fi)
				for _, fk := range f.Keys() {
					if _, in := scope[fk]; !in {
						return &inference.DistributionError{
							Factor: fi,
							Keys:   f.Keys(),
							Clique: c.ID,
							Reason: "key " + string(fk) + " is outside the clique scope",
						}
					}
				}
				c.Push(f)
				remaining--
			}
			delete(pending, k)
		}

		return nil
	})
	if err != nil {
		return err
	}

	// 3. Residual pool means some first key is frontal nowhere
	if remaining != 0 {
		worst := -1
		for _, bucket := range pending {
			for _, fi := range bucket {
				if worst < 0 || fi < worst {
					worst = fi
				}
			}
		}

		return &inference.DistributionError{
			Factor: worst,
			Keys:   fg.At(worst).Keys(),
			Clique: -1,
			Reason: "no clique holds its first-eliminated key",
		}
	}

	return nil
}
