// Package bayestree holds the output of junction tree elimination: a forest
// of cliques, each carrying the conditionals produced when the matching
// junction tree clique was eliminated.
//
// The tree is isomorphic to the junction tree it came from: same clique IDs,
// same frontal and separator keys, same parent/child topology. It is
// immutable once returned by junction.Eliminate and safe for concurrent reads.
package bayestree
