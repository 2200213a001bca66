package gaussian

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/matrix"
)

var (
	// ErrEmptyFactor indicates a factor built without blocks or rows.
	ErrEmptyFactor = errors.New("gaussian: factor needs at least one block and one row")

	// ErrBlockShape indicates a block whose shape disagrees with b or itself.
	ErrBlockShape = errors.New("gaussian: block shape mismatch")

	// ErrDuplicateKey indicates the same key in two blocks of one factor.
	ErrDuplicateKey = errors.New("gaussian: duplicate key in factor")

	// ErrDimensionConflict indicates two factors disagree on a key's dimension.
	ErrDimensionConflict = errors.New("gaussian: conflicting key dimensions")

	// ErrIndeterminant indicates a clique whose frontal variables are not
	// fully constrained.
	ErrIndeterminant = errors.New("gaussian: indeterminant system")

	// ErrMissingValue indicates a parent value was not available during a solve.
	ErrMissingValue = errors.New("gaussian: missing value")
)

// Block is the Jacobian of one key: len(A) rows of len(A[0]) columns.
type Block struct {
	Key inference.Key
	A   [][]float64
}

// Factor is the whitened linear factor ½‖Σ Aⱼxⱼ − b‖².
// A factor may have zero rows (no information); it still carries its keys.
type Factor struct {
	keys []inference.Key
	dims []int
	a    *matrix.Dense // rows × Σdims, nil when rows == 0
	b    []float64
}

// NewFactor builds a factor from its right-hand side and one block per key.
//
// Errors: ErrEmptyFactor, ErrBlockShape, ErrDuplicateKey, matrix.ErrNaNInf.
func NewFactor(b []float64, blocks ...Block) (*Factor, error) {
	// 1. Validate shapes
	if len(blocks) == 0 || len(b) == 0 {
		return nil, ErrEmptyFactor
	}
	rows := len(b)
	f := &Factor{
		keys: make([]inference.Key, 0, len(blocks)),
		dims: make([]int, 0, len(blocks)),
		b:    append([]float64(nil), b...),
	}
	seen := make(map[inference.Key]struct{}, len(blocks))
	total := 0
	for _, blk := range blocks {
		if _, dup := seen[blk.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, blk.Key)
		}
		seen[blk.Key] = struct{}{}
		if len(blk.A) != rows || len(blk.A[0]) == 0 {
			return nil, fmt.Errorf("%w: block %q has %d rows, b has %d", ErrBlockShape, blk.Key, len(blk.A), rows)
		}
		f.keys = append(f.keys, blk.Key)
		f.dims = append(f.dims, len(blk.A[0]))
		total += len(blk.A[0])
	}
	for _, v := range b {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("gaussian: b: %w", matrix.ErrNaNInf)
		}
	}

	// 2. Pack blocks side by side
	packed := make([][]float64, rows)
	for i := range packed {
		packed[i] = make([]float64, 0, total)
	}
	for bi, blk := range blocks {
		for i, row := range blk.A {
			if len(row) != f.dims[bi] {
				return nil, fmt.Errorf("%w: block %q row %d has %d columns, want %d", ErrBlockShape, blk.Key, i, len(row), f.dims[bi])
			}
			packed[i] = append(packed[i], row...)
		}
	}
	a, err := matrix.NewDenseFrom(packed)
	if err != nil {
		return nil, fmt.Errorf("gaussian: %w", err)
	}
	f.a = a

	return f, nil
}

// Prior returns the factor ‖(x − mean)/sigma‖² on key.
func Prior(key inference.Key, mean []float64, sigma float64) (*Factor, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("gaussian: prior on %q: sigma must be > 0", key)
	}
	n := len(mean)
	a := identity(n, 1/sigma)
	b := make([]float64, n)
	for i := range mean {
		b[i] = mean[i] / sigma
	}

	return NewFactor(b, Block{Key: key, A: a})
}

// Between returns the factor ‖(x_to − x_from − delta)/sigma‖².
func Between(from, to inference.Key, delta []float64, sigma float64) (*Factor, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("gaussian: between %q,%q: sigma must be > 0", from, to)
	}
	n := len(delta)
	b := make([]float64, n)
	for i := range delta {
		b[i] = delta[i] / sigma
	}

	return NewFactor(b, Block{Key: from, A: identity(n, -1/sigma)}, Block{Key: to, A: identity(n, 1/sigma)})
}

func identity(n int, scale float64) [][]float64 {
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		a[i][i] = scale
	}

	return a
}

// Keys implements inference.Factor.
func (f *Factor) Keys() []inference.Key { return f.keys }

// Dims returns the dimension of each key, aligned with Keys.
func (f *Factor) Dims() []int { return f.dims }

// Rows returns the number of measurement rows.
func (f *Factor) Rows() int { return len(f.b) }

// Error evaluates ½‖Ax − b‖² at values.
func (f *Factor) Error(values VectorValues) (float64, error) {
	if f.a == nil {
		return 0, nil
	}
	x := make([]float64, 0, f.a.Cols())
	for i, k := range f.keys {
		v, ok := values[k]
		if !ok || len(v) != f.dims[i] {
			return 0, fmt.Errorf("%w: %q", ErrMissingValue, k)
		}
		x = append(x, v...)
	}
	ax, err := f.a.MulVec(x)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range ax {
		r := ax[i] - f.b[i]
		sum += r * r
	}

	return 0.5 * sum, nil
}

// String renders the factor as "J(a,b)[rows]".
func (f *Factor) String() string {
	return fmt.Sprintf("J(%s)[%d]", inference.FormatKeys(f.keys), len(f.b))
}
