package gaussian

import (
	"fmt"

	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/matrix"
)

// Conditional is the Gaussian density R·x_f + S·x_p = d with R square and
// upper triangular.
type Conditional struct {
	frontals    []inference.Key
	frontalDims []int
	parents     []inference.Key
	parentDims  []int

	r   *matrix.Dense
	s   *matrix.Dense // nil without parents
	d   []float64
	tol float64
}

// Frontals implements inference.Conditional.
func (c *Conditional) Frontals() []inference.Key { return c.frontals }

// Parents implements inference.Conditional.
func (c *Conditional) Parents() []inference.Key { return c.parents }

// R returns a copy of the upper-triangular frontal block.
func (c *Conditional) R() *matrix.Dense { return c.r.CloneDense() }

// S returns a copy of the parent block, nil without parents.
func (c *Conditional) S() *matrix.Dense {
	if c.s == nil {
		return nil
	}

	return c.s.CloneDense()
}

// D returns a copy of the right-hand side.
func (c *Conditional) D() []float64 { return append([]float64(nil), c.d...) }

// Solve computes x_f = R⁻¹(d − S·x_p) with parent values read from values
// and returns the frontal values.
func (c *Conditional) Solve(values VectorValues) (VectorValues, error) {
	rhs := append([]float64(nil), c.d...)
	if c.s != nil {
		xp := make([]float64, 0, c.s.Cols())
		for i, k := range c.parents {
			v, ok := values[k]
			if !ok || len(v) != c.parentDims[i] {
				return nil, fmt.Errorf("%w: parent %q of %s", ErrMissingValue, k, c)
			}
			xp = append(xp, v...)
		}
		sx, err := c.s.MulVec(xp)
		if err != nil {
			return nil, err
		}
		for i := range rhs {
			rhs[i] -= sx[i]
		}
	}
	x, err := matrix.BackSubstitute(c.r, rhs, c.tol)
	if err != nil {
		return nil, fmt.Errorf("gaussian: solve %s: %w", c, err)
	}

	out := make(VectorValues, len(c.frontals))
	off := 0
	for i, k := range c.frontals {
		out[k] = x[off : off+c.frontalDims[i]]
		off += c.frontalDims[i]
	}

	return out, nil
}

// String renders the conditional as "N(a|b,c)".
func (c *Conditional) String() string {
	if len(c.parents) == 0 {
		return fmt.Sprintf("N(%s)", inference.FormatKeys(c.frontals))
	}

	return fmt.Sprintf("N(%s|%s)", inference.FormatKeys(c.frontals), inference.FormatKeys(c.parents))
}
