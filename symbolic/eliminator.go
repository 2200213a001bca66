package symbolic

import (
	"fmt"

	"github.com/katalvlaran/junctree/inference"
)

// Eliminator is the structural factor family: it unions key sets and checks
// that the union fits the clique scope.
type Eliminator struct {
	Granularity inference.Granularity
}

// Eliminate implements inference.Eliminator for symbolic factors.
// The residual is the union of the inputs minus frontals; it must fit inside
// separator, otherwise the factors were routed to the wrong clique.
func (e Eliminator) Eliminate(factors []Factor, frontals, separator []inference.Key) ([]Conditional, Factor, error) {
	inScope := make(map[inference.Key]bool, len(frontals)+len(separator))
	for _, k := range frontals {
		inScope[k] = true
	}
	for _, k := range separator {
		inScope[k] = false
	}
	for _, f := range factors {
		for _, k := range f.keys {
			if _, ok := inScope[k]; !ok {
				return nil, Factor{}, fmt.Errorf("symbolic: key %q outside clique scope", k)
			}
		}
	}

	var conds []Conditional
	switch e.Granularity {
	case inference.PerVariable:
		conds = make([]Conditional, 0, len(frontals))
		for i := range frontals {
			parents := make([]inference.Key, 0, len(frontals)-i-1+len(separator))
			parents = append(parents, frontals[i+1:]...)
			parents = append(parents, separator...)
			conds = append(conds, NewConditional(frontals[i:i+1], parents))
		}
	default:
		conds = []Conditional{NewConditional(frontals, separator)}
	}

	return conds, NewFactor(separator...), nil
}
