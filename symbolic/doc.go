// Package symbolic performs elimination on connectivity alone: it ignores
// numeric values and only tracks which variables each factor touches.
//
// The symbolic pass fixes the clique structure before any numeric work:
//
//	connectivity + ordering ──EliminateSequential──▶ symbolic Bayes net
//	symbolic Bayes net      ──BayesTree.Insert─────▶ symbolic Bayes tree
//
// Eliminating variable j gathers every pending factor that mentions j, emits
// the conditional P(j | S) where S is the union of their keys minus j, and
// pushes a new factor over S back into the pool (fill-in).
//
// Conditionals are inserted into the Bayes tree in reverse elimination
// order. P(j | S) joins the clique of its first-eliminated parent when S is
// exactly that clique's scope (frontals ∪ separator); otherwise it opens a new
// child clique with frontal j and separator S. Disconnected components yield
// a forest with one root per component.
//
// The package also provides a symbolic factor family (Factor, Conditional,
// Eliminator) so the junction tree can run a purely structural elimination.
//
// Complexity:
//
//   - EliminateSequential: O(Σ fill-in) set operations plus O(n log n) sorting.
//   - Insert:              O(|S|) per conditional.
package symbolic
