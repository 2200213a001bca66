package discrete

import (
	"fmt"

	"github.com/katalvlaran/junctree/inference"
)

// Conditional is the table P(frontals | parents), laid out frontals first
// then parents, last key fastest. For every parent assignment the entries
// over frontal assignments sum to one.
type Conditional struct {
	frontals     []inference.Key
	frontalCards []int
	parents      []inference.Key
	parentCards  []int
	table        []float64
}

// Frontals implements inference.Conditional.
func (c *Conditional) Frontals() []inference.Key { return c.frontals }

// Parents implements inference.Conditional.
func (c *Conditional) Parents() []inference.Key { return c.parents }

// Prob returns P(frontals = a | parents = a).
func (c *Conditional) Prob(a Assignment) (float64, error) {
	keys := append(append([]inference.Key(nil), c.frontals...), c.parents...)
	cards := append(append([]int(nil), c.frontalCards...), c.parentCards...)
	idx, err := index(keys, cards, a)
	if err != nil {
		return 0, err
	}

	return c.table[idx], nil
}

// String renders the conditional as "P(a|b)".
func (c *Conditional) String() string {
	if len(c.parents) == 0 {
		return fmt.Sprintf("P(%s)", inference.FormatKeys(c.frontals))
	}

	return fmt.Sprintf("P(%s|%s)", inference.FormatKeys(c.frontals), inference.FormatKeys(c.parents))
}
