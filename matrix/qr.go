// SPDX-License-Identifier: MIT

package matrix

import "math"

// Triangularize reduces m in place to upper-trapezoidal form R = Qᵀm using
// Householder reflections. Only R is kept; Q is never formed. Columns are
// processed left to right, so the leading k columns of R depend only on the
// leading k columns of m. Entries below the diagonal are set to exactly zero.
//
// Stage 1: for k = 0..min(r,c)-1 compute ‖m[k:,k]‖.
// Stage 2: build v = m[k:,k] − α e₁ with α = −sign(m[k,k])·‖·‖.
// Stage 3: apply I − 2vvᵀ/vᵀv to columns k..c-1.
//
// Complexity: O(r·c·min(r,c)) time, O(r) extra memory.
func Triangularize(m *Dense) {
	rows, cols := m.r, m.c
	steps := rows
	if cols < steps {
		steps = cols
	}
	v := make([]float64, rows) // Householder vector, reused

	var (
		k, i, j           int
		norm, alpha, beta float64
		sum, tau          float64
	)
	for k = 0; k < steps; k++ {
		// Stage 1: column norm below (and including) the diagonal
		norm = 0
		for i = k; i < rows; i++ {
			val := m.data[i*cols+k]
			norm += val * val
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue // zero column: nothing to annihilate
		}

		// Stage 2: reflection vector
		alpha = -math.Copysign(norm, m.data[k*cols+k])
		for i = k; i < rows; i++ {
			v[i] = m.data[i*cols+k]
		}
		v[k] -= alpha
		beta = 0
		for i = k; i < rows; i++ {
			beta += v[i] * v[i]
		}
		if beta == 0 {
			continue
		}
		tau = 2.0 / beta

		// Stage 3: apply to the remaining columns
		for j = k; j < cols; j++ {
			sum = 0
			for i = k; i < rows; i++ {
				sum += v[i] * m.data[i*cols+j]
			}
			if sum == 0 {
				continue
			}
			for i = k; i < rows; i++ {
				m.data[i*cols+j] -= tau * v[i] * sum
			}
		}

		// exact zeros below the pivot
		m.data[k*cols+k] = alpha
		for i = k + 1; i < rows; i++ {
			m.data[i*cols+k] = 0
		}
	}
}

// PivotRank counts leading diagonal entries of an upper-trapezoidal matrix
// whose magnitude exceeds tol, stopping at the first that does not.
func PivotRank(m *Dense, n int, tol float64) int {
	limit := n
	if m.r < limit {
		limit = m.r
	}
	if m.c < limit {
		limit = m.c
	}
	for k := 0; k < limit; k++ {
		if math.Abs(m.data[k*m.c+k]) <= tol {
			return k
		}
	}

	return limit
}
