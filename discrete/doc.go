// Package discrete is the table-based factor family for discrete variables.
//
// A Factor is a non-negative table over keys with finite cardinalities,
// stored row-major with the last key varying fastest. Eliminating a clique
// multiplies every input table into a joint over [frontals | separator],
// sums the frontals out to obtain the residual marginal over the separator,
// and divides to obtain P(frontals | separator):
//
//	joint(f, s)     = Π factors
//	residual(s)     = Σ_f joint(f, s)
//	P(f | s)        = joint(f, s) / residual(s)
//
// Separator assignments with zero mass get a uniform conditional. A clique
// whose joint is zero everywhere has no consistent assignment and fails with
// ErrZeroPartition.
//
// Evaluate multiplies the conditionals of a discrete Bayes tree at a full
// assignment, which equals the normalized product of the original factors.
package discrete
