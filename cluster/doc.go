// Package cluster provides the generic cluster tree container the junction
// tree specializes.
//
// A cluster owns an ordered set of frontal keys, a separator shared with its
// parent, and the factors routed to it. Children are owned through the parent's
// child list; the parent link is a plain back-reference. Every cluster also
// sits in an ID-indexed arena so callers can address per-cluster slots by
// Cluster.ID without locking.
//
// Traversals use explicit stacks, so arbitrarily deep trees never exhaust the
// goroutine stack:
//
//   - PreOrder:  parents before children (construction, printing).
//   - PostOrder: children before parents (elimination).
//
// Check verifies the two structural invariants of a clique tree:
//
//   - Partition: every ordered key is frontal in exactly one cluster.
//   - Running intersection: a cluster's separator is contained in its
//     parent's frontals ∪ separator, and roots have empty separators.
//
// AddCluster under a parent that belongs to another tree panics: that is a
// programming error, not an input error.
package cluster
