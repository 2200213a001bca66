// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernels behind the
// Gaussian factor family: a row-major Dense matrix, in-place Householder
// triangularization of rectangular systems, and triangular back-substitution.
//
// What & Why:
//
//	Eliminating a Gaussian clique stacks every Jacobian factor into one
//	augmented system [A | b] whose columns are ordered frontals-first, then
//	reduces it to upper-trapezoidal form. The leading rows become the
//	conditional, the following rows the residual factor on the separator.
//	Householder reflections are used because they are backward stable and
//	never require pivoting, so the column order fixed by the elimination
//	ordering is preserved.
//
// Complexity:
//
//   - NewDense:        O(r·c) time and memory.
//   - At/Set:          O(1) with bounds checking.
//   - Triangularize:   O(r·c·min(r,c)) time, in place.
//   - BackSubstitute:  O(n²).
//
// Errors:
//
//   - ErrInvalidDimensions  non-positive shape.
//   - ErrOutOfRange         index outside bounds.
//   - ErrDimensionMismatch  incompatible operand shapes.
//   - ErrSingular           zero (or sub-tolerance) pivot.
//   - ErrNaNInf             non-finite value where finite is required.
package matrix
