// Package junctree turns factor graphs into Bayes trees by way of junction
// trees, the multifrontal elimination scheme used in smoothing and mapping.
//
// What is in the box?
//
//	A generic, family-agnostic elimination pipeline:
//		• Symbolic elimination: variable index, fill-in, symbolic Bayes tree
//		• Cluster trees: explicit-parent construction, iterative traversals
//		• Junction trees: factor distribution with scope checks
//		• Elimination: post-order, sibling subtrees on a worker pool
//		• Bayes trees: one clique per cluster, conditionals in pre-order
//
// Factor families plug in through inference.Eliminator:
//
//	symbolic/ structure only, the symbolic pass itself as an eliminator
//	gaussian/ Jacobian factors, Householder QR, back-substitution
//	discrete/ table factors, sum-product, joint evaluation
//
// Package layout:
//
//	inference/ keys, orderings, factor graphs, capability interfaces, errors
//	symbolic/  symbolic elimination and the symbolic Bayes tree
//	cluster/   the generic cluster tree
//	junction/  construction, distribution and elimination
//	bayestree/ the numeric Bayes tree
//	matrix/    dense matrices and QR used by gaussian/
//	metrics/   Prometheus observer for construction and elimination
//	cmd/junctree command-line front end for YAML problems
//
// Quick ASCII example, the chain A─B─C eliminated in order A, B, C:
//
//	factor graph        junction tree        Bayes tree
//	A───B───C           B,C                  P(B,C)
//	                     └─ A : B             └─ P(A|B)
//
//	go get github.com/katalvlaran/junctree
package junctree
