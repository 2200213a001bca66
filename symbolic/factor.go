package symbolic

import (
	"fmt"

	"github.com/katalvlaran/junctree/inference"
)

// Factor is a key set with no numeric payload.
type Factor struct {
	keys []inference.Key
}

// NewFactor returns a factor over keys. The slice is copied.
func NewFactor(keys ...inference.Key) Factor {
	cp := make([]inference.Key, len(keys))
	copy(cp, keys)

	return Factor{keys: cp}
}

// Keys implements inference.Factor.
func (f Factor) Keys() []inference.Key { return f.keys }

// String renders the factor as "f(a,b)".
func (f Factor) String() string {
	return fmt.Sprintf("f(%s)", inference.FormatKeys(f.keys))
}

// Conditional is P(frontals | parents) without numbers.
type Conditional struct {
	frontals []inference.Key
	parents  []inference.Key
}

// NewConditional builds a conditional; both slices are copied.
func NewConditional(frontals, parents []inference.Key) Conditional {
	fr := make([]inference.Key, len(frontals))
	copy(fr, frontals)
	pa := make([]inference.Key, len(parents))
	copy(pa, parents)

	return Conditional{frontals: fr, parents: pa}
}

// Frontals implements inference.Conditional.
func (c Conditional) Frontals() []inference.Key { return c.frontals }

// Parents implements inference.Conditional.
func (c Conditional) Parents() []inference.Key { return c.parents }

// Key returns the first frontal variable.
func (c Conditional) Key() inference.Key { return c.frontals[0] }

// String renders the conditional as "P(a,b|c)".
func (c Conditional) String() string {
	if len(c.parents) == 0 {
		return fmt.Sprintf("P(%s)", inference.FormatKeys(c.frontals))
	}

	return fmt.Sprintf("P(%s|%s)", inference.FormatKeys(c.frontals), inference.FormatKeys(c.parents))
}
