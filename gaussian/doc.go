// Package gaussian is the linear-Gaussian factor family: Jacobian factors
// ½‖Σⱼ Aⱼxⱼ − b‖² over vector-valued keys, eliminated by Householder QR.
//
// Eliminating a clique stacks every input factor into one augmented system
// whose columns are [frontals | separator | b] and triangularizes it:
//
//	┌ R  S  d ┐   rows 0..|f|-1        → Conditional  R·x_f + S·x_s = d
//	│ 0  T  e │   rows |f|..|f|+|s|-1  → residual Factor over separator
//	└ 0  0  * ┘   remaining rows       → dropped (constant error)
//
// A frontal pivot below tolerance means the clique's variables are not
// determined by its factors; the eliminator reports ErrIndeterminant
// (wrapping matrix.ErrSingular) and the whole elimination aborts.
//
// Optimize back-substitutes a Gaussian Bayes tree from the roots down and
// returns the least-squares solution.
package gaussian
