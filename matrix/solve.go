// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// BackSubstitute solves R·x = rhs for square upper-triangular R.
// Pivots with |R[i,i]| ≤ tol yield ErrSingular.
//
// Stage 1 (Validate): R square and len(rhs) == n.
// Stage 2 (Execute): for i = n-1..0, x[i] = (rhs[i] − Σ_{j>i} R[i,j]x[j]) / R[i,i].
//
// Complexity: O(n²).
func BackSubstitute(r *Dense, rhs []float64, tol float64) ([]float64, error) {
	if r == nil {
		return nil, ErrNilMatrix
	}
	n := r.r
	if r.c != n || len(rhs) != n {
		return nil, fmt.Errorf("BackSubstitute: R %dx%d, rhs %d: %w", r.r, r.c, len(rhs), ErrDimensionMismatch)
	}
	x := make([]float64, n)
	var (
		i, j  int
		sum   float64
		pivot float64
	)
	for i = n - 1; i >= 0; i-- {
		sum = 0
		for j = i + 1; j < n; j++ {
			sum += r.data[i*n+j] * x[j]
		}
		pivot = r.data[i*n+i]
		if math.Abs(pivot) <= tol {
			return nil, fmt.Errorf("BackSubstitute: pivot %d = %g: %w", i, pivot, ErrSingular)
		}
		x[i] = (rhs[i] - sum) / pivot
	}

	return x, nil
}
