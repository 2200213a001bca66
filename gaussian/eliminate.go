package gaussian

import (
	"context"
	"fmt"

	"github.com/katalvlaran/junctree/bayestree"
	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/junction"
	"github.com/katalvlaran/junctree/matrix"
)

// Option configures an Eliminator.
type Option func(*Eliminator)

// WithGranularity selects one conditional per clique (default) or one per
// frontal key.
func WithGranularity(g inference.Granularity) Option {
	return func(e *Eliminator) { e.granularity = g }
}

// WithPivotTol overrides matrix.DefaultPivotTol. Non-positive values are ignored.
func WithPivotTol(tol float64) Option {
	return func(e *Eliminator) {
		if tol > 0 {
			e.tol = tol
		}
	}
}

// Eliminator implements inference.Eliminator for Gaussian factors by dense
// Householder QR. It is stateless and safe for concurrent use.
type Eliminator struct {
	granularity inference.Granularity
	tol         float64
}

// NewEliminator returns an eliminator with the given options applied.
func NewEliminator(opts ...Option) *Eliminator {
	e := &Eliminator{granularity: inference.PerClique, tol: matrix.DefaultPivotTol}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Eliminate implements inference.Eliminator.
//
// Stage 1: resolve key dimensions and the column layout [frontals|separator|b].
// Stage 2: stack every factor's rows into one augmented Dense.
// Stage 3: Triangularize and check frontal pivots.
// Stage 4: slice conditionals and the residual out of R.
func (e *Eliminator) Eliminate(factors []*Factor, frontals, separator []inference.Key) ([]*Conditional, *Factor, error) {
	// Stage 1: dimensions and layout
	dims := make(map[inference.Key]int, len(frontals)+len(separator))
	rows := 0
	for _, f := range factors {
		if f == nil {
			continue
		}
		for i, k := range f.keys {
			if d, ok := dims[k]; ok && d != f.dims[i] {
				return nil, nil, fmt.Errorf("%w: %q is %d and %d", ErrDimensionConflict, k, d, f.dims[i])
			}
			dims[k] = f.dims[i]
		}
		rows += f.Rows()
	}
	offsets := make(map[inference.Key]int, len(dims))
	col := 0
	frontalDims := make([]int, len(frontals))
	for i, k := range frontals {
		d, ok := dims[k]
		if !ok {
			return nil, nil, fmt.Errorf("%w: frontal %q touched by no factor", ErrIndeterminant, k)
		}
		frontalDims[i] = d
		offsets[k] = col
		col += d
	}
	fd := col
	sepKeys := make([]inference.Key, 0, len(separator))
	sepDims := make([]int, 0, len(separator))
	for _, k := range separator {
		d, ok := dims[k]
		if !ok {
			continue // no factor reached this key; it carries no information here
		}
		sepKeys = append(sepKeys, k)
		sepDims = append(sepDims, d)
		offsets[k] = col
		col += d
	}
	n := col
	for k := range dims {
		if _, ok := offsets[k]; !ok {
			return nil, nil, fmt.Errorf("gaussian: key %q outside clique scope", k)
		}
	}
	if rows < fd {
		return nil, nil, fmt.Errorf("%w: %d rows for %d frontal dimensions: %w", ErrIndeterminant, rows, fd, matrix.ErrSingular)
	}

	// Stage 2: stack
	ab, err := matrix.NewDense(rows, n+1)
	if err != nil {
		return nil, nil, err
	}
	row := 0
	for _, f := range factors {
		if f == nil || f.a == nil {
			continue
		}
		for i := 0; i < f.Rows(); i++ {
			src, err := f.a.Row(i)
			if err != nil {
				return nil, nil, err
			}
			off := 0
			for bi, k := range f.keys {
				for j := 0; j < f.dims[bi]; j++ {
					_ = ab.Set(row, offsets[k]+j, src[off+j])
				}
				off += f.dims[bi]
			}
			_ = ab.Set(row, n, f.b[i])
			row++
		}
	}

	// Stage 3: triangularize
	matrix.Triangularize(ab)
	if rank := matrix.PivotRank(ab, fd, e.tol); rank < fd {
		return nil, nil, fmt.Errorf("%w: frontal %q: %w", ErrIndeterminant, keyAtColumn(frontals, frontalDims, rank), matrix.ErrSingular)
	}

	// Stage 4: conditionals and residual
	conds, err := e.conditionals(ab, frontals, frontalDims, sepKeys, sepDims, fd, n)
	if err != nil {
		return nil, nil, err
	}
	residual, err := residualFactor(ab, sepKeys, sepDims, fd, n)
	if err != nil {
		return nil, nil, err
	}

	return conds, residual, nil
}

// conditionals slices R rows [0,fd) into one or more conditionals.
func (e *Eliminator) conditionals(ab *matrix.Dense, frontals []inference.Key, frontalDims []int, sepKeys []inference.Key, sepDims []int, fd, n int) ([]*Conditional, error) {
	if e.granularity != inference.PerVariable {
		c, err := sliceConditional(ab, 0, fd, n, frontals, frontalDims, sepKeys, sepDims, e.tol)
		if err != nil {
			return nil, err
		}

		return []*Conditional{c}, nil
	}

	out := make([]*Conditional, 0, len(frontals))
	off := 0
	for i := range frontals {
		parents := append(append([]inference.Key(nil), frontals[i+1:]...), sepKeys...)
		parentDims := append(append([]int(nil), frontalDims[i+1:]...), sepDims...)
		c, err := sliceConditional(ab, off, off+frontalDims[i], n, frontals[i:i+1], frontalDims[i:i+1], parents, parentDims, e.tol)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		off += frontalDims[i]
	}

	return out, nil
}

// sliceConditional extracts rows [r0,r1): R = cols [r0,r1), S = cols [r1,n), d = col n.
func sliceConditional(ab *matrix.Dense, r0, r1, n int, frontals []inference.Key, frontalDims []int, parents []inference.Key, parentDims []int, tol float64) (*Conditional, error) {
	r, err := ab.Slice(r0, r1, r0, r1)
	if err != nil {
		return nil, err
	}
	var s *matrix.Dense
	if r1 < n {
		if s, err = ab.Slice(r0, r1, r1, n); err != nil {
			return nil, err
		}
	}
	d := make([]float64, r1-r0)
	for i := r0; i < r1; i++ {
		d[i-r0], _ = ab.At(i, n)
	}

	return &Conditional{
		frontals:    append([]inference.Key(nil), frontals...),
		frontalDims: append([]int(nil), frontalDims...),
		parents:     parents,
		parentDims:  parentDims,
		r:           r,
		s:           s,
		d:           d,
		tol:         tol,
	}, nil
}

// residualFactor extracts rows [fd, min(rows, n)) over the separator columns.
func residualFactor(ab *matrix.Dense, sepKeys []inference.Key, sepDims []int, fd, n int) (*Factor, error) {
	f := &Factor{keys: sepKeys, dims: sepDims}
	last := ab.Rows()
	if n < last {
		last = n
	}
	if len(sepKeys) == 0 || last <= fd {
		return f, nil
	}
	a, err := ab.Slice(fd, last, fd, n)
	if err != nil {
		return nil, err
	}
	f.a = a
	f.b = make([]float64, last-fd)
	for i := fd; i < last; i++ {
		f.b[i-fd], _ = ab.At(i, n)
	}

	return f, nil
}

// keyAtColumn maps a frontal column index back to its key.
func keyAtColumn(frontals []inference.Key, dims []int, col int) inference.Key {
	off := 0
	for i, k := range frontals {
		if col < off+dims[i] {
			return k
		}
		off += dims[i]
	}

	return ""
}

// Eliminate is junction.Eliminate specialized to the Gaussian family.
func Eliminate(ctx context.Context, jt *junction.Tree[*Factor], opts ...Option) (*bayestree.Tree[*Conditional], error) {
	return junction.Eliminate[*Conditional](ctx, jt, NewEliminator(opts...))
}

// Optimize back-substitutes bt from the roots down and returns the solution
// of every frontal key. Conditionals of a clique are solved last-first, so
// per-variable chains see their in-clique parents already solved.
func Optimize(bt *bayestree.Tree[*Conditional]) (VectorValues, error) {
	values := make(VectorValues)
	err := bt.PreOrder(func(c *bayestree.Clique[*Conditional]) error {
		for i := len(c.Conditionals) - 1; i >= 0; i-- {
			x, err := c.Conditionals[i].Solve(values)
			if err != nil {
				return err
			}
			for k, v := range x {
				values[k] = v
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}
