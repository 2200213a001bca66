// Package junction builds a junction (clique) tree from a factor graph and an
// elimination ordering, then eliminates it into a Bayes tree.
//
// Pipeline:
//
//	FactorGraph + Ordering
//	  │ CheckOrdering                    → *inference.UsageError
//	  │ symbolic.Eliminate               (clique structure, no numbers)
//	  │ build: one cluster per symbolic clique
//	  │ distribute: factor → clique of its first-eliminated key
//	  ▼                                  → *inference.DistributionError
//	junction.Tree
//	  │ Eliminate(ctx, tree, eliminator) (post-order, siblings in parallel)
//	  ▼                                  → *inference.EliminationError
//	bayestree.Tree
//
// A factor must be present when its first variable is eliminated, so it is
// routed to the clique whose frontal set holds the factor's earliest key in
// the ordering. That clique's frontals ∪ separator always covers the factor
// when the symbolic tree was derived from the same graph; a supplied tree
// that does not cover it is reported as a DistributionError.
//
// Elimination never mutates the tree: the same Tree may be eliminated again,
// with another eliminator or concurrently, and yields identical results for
// identical inputs. Sibling subtrees are independent and run on a bounded
// worker pool (WithWorkers); every clique writes its output into a slot
// addressed by clique ID, so no locking is needed and the output does not
// depend on scheduling. Any clique failure cancels the run and no partial
// Bayes tree is returned.
//
// Options:
//
//   - WithWorkers(n)    parallelism for Eliminate; n ≤ 1 runs sequentially.
//   - WithLogger(l)     logrus.FieldLogger for construction/elimination events.
//   - WithObserver(o)   receives per-clique timings (see package metrics).
package junction
