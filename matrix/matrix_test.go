// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/junctree/matrix"
)

const eps = 1e-9

// gram returns mᵀm.
func gram(t *testing.T, m *matrix.Dense) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Cols())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			for k := 0; k < m.Rows(); k++ {
				a, err := m.At(k, i)
				require.NoError(t, err)
				b, err := m.At(k, j)
				require.NoError(t, err)
				out[i][j] += a * b
			}
		}
	}

	return out
}

func TestNewDense_Errors(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Set(2, 0, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	_, err = m.At(0, -1)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_SliceMulVecCopy(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	s, err := m.Slice(0, 2, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "[2, 3]\n[5, 6]\n", s.String())
	_, err = m.Slice(1, 1, 0, 3)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)

	y, err := m.MulVec([]float64{1, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2}, y)
	_, err = m.MulVec([]float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	c := m.CloneDense()
	require.NoError(t, c.Set(0, 0, 9))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)
}

func TestTriangularize(t *testing.T) {
	cases := map[string][][]float64{
		"tall":       {{1, 2}, {3, 4}, {5, 6}},
		"wide":       {{2, -1, 0, 1}, {1, 3, 2, 0}},
		"zero pivot": {{0, 1}, {0, 2}, {1, 0}},
		"square":     {{4, 1, 2}, {1, 5, 3}, {2, 3, 6}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			a, err := matrix.NewDenseFrom(rows)
			require.NoError(t, err)
			want := gram(t, a)

			r := a.CloneDense()
			matrix.Triangularize(r)
			for i := 0; i < r.Rows(); i++ {
				for j := 0; j < i && j < r.Cols(); j++ {
					v, _ := r.At(i, j)
					assert.Zero(t, v, "below diagonal at (%d,%d)", i, j)
				}
			}
			got := gram(t, r)
			for i := range want {
				for j := range want[i] {
					assert.InDelta(t, want[i][j], got[i][j], eps)
				}
			}
		})
	}
}

func TestPivotRank(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{{1, 2}, {2, 4}, {3, 6}})
	require.NoError(t, err)
	matrix.Triangularize(m)
	assert.Equal(t, 1, matrix.PivotRank(m, 2, matrix.DefaultPivotTol*100))
	assert.Equal(t, 1, matrix.PivotRank(m, 1, matrix.DefaultPivotTol))
}

func TestBackSubstitute(t *testing.T) {
	r, err := matrix.NewDenseFrom([][]float64{{2, 1}, {0, 4}})
	require.NoError(t, err)
	x, err := matrix.BackSubstitute(r, []float64{5, 8}, matrix.DefaultPivotTol)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.5, 2}, x, eps)

	_, err = matrix.BackSubstitute(r, []float64{1}, matrix.DefaultPivotTol)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	singular, err := matrix.NewDenseFrom([][]float64{{1, 1}, {0, 0}})
	require.NoError(t, err)
	_, err = matrix.BackSubstitute(singular, []float64{1, 1}, matrix.DefaultPivotTol)
	assert.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.BackSubstitute(nil, nil, 0)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
