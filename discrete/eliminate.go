package discrete

import (
	"context"
	"fmt"

	"github.com/katalvlaran/junctree/bayestree"
	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/junction"
)

// Option configures an Eliminator.
type Option func(*Eliminator)

// WithGranularity selects one conditional per clique (default) or a chain of
// one conditional per frontal key.
func WithGranularity(g inference.Granularity) Option {
	return func(e *Eliminator) { e.granularity = g }
}

// Eliminator implements inference.Eliminator by sum-product. It is
// stateless and safe for concurrent use.
type Eliminator struct {
	granularity inference.Granularity
}

// NewEliminator returns an eliminator with the given options applied.
func NewEliminator(opts ...Option) *Eliminator {
	e := &Eliminator{granularity: inference.PerClique}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Eliminate implements inference.Eliminator.
//
// Stage 1: resolve cardinalities for frontals ∪ separator.
// Stage 2: multiply every factor into the joint.
// Stage 3: successively sum out frontals, building conditionals.
func (e *Eliminator) Eliminate(factors []*Factor, frontals, separator []inference.Key) ([]*Conditional, *Factor, error) {
	// Stage 1: cardinalities
	cards := make(map[inference.Key]int, len(frontals)+len(separator))
	for _, f := range factors {
		if f == nil {
			continue
		}
		for i, k := range f.keys {
			if c, ok := cards[k]; ok && c != f.cards[i] {
				return nil, nil, fmt.Errorf("%w: %q is %d and %d", ErrCardinality, k, c, f.cards[i])
			}
			cards[k] = f.cards[i]
		}
	}
	scope := make([]inference.Key, 0, len(frontals)+len(separator))
	scopeCards := make([]int, 0, cap(scope))
	inScope := make(map[inference.Key]struct{}, cap(scope))
	for _, k := range frontals {
		c, ok := cards[k]
		if !ok {
			return nil, nil, fmt.Errorf("%w: frontal %q touched by no factor", ErrCardinality, k)
		}
		scope = append(scope, k)
		scopeCards = append(scopeCards, c)
		inScope[k] = struct{}{}
	}
	var sepKeys []inference.Key
	var sepCards []int
	for _, k := range separator {
		c, ok := cards[k]
		if !ok {
			continue
		}
		sepKeys = append(sepKeys, k)
		sepCards = append(sepCards, c)
		scope = append(scope, k)
		scopeCards = append(scopeCards, c)
		inScope[k] = struct{}{}
	}
	for k := range cards {
		if _, ok := inScope[k]; !ok {
			return nil, nil, fmt.Errorf("discrete: key %q outside clique scope", k)
		}
	}
	size := 1
	for _, c := range scopeCards {
		size *= c
		if size > MaxTableSize {
			return nil, nil, ErrTableTooLarge
		}
	}

	// Stage 2: joint = Π factors
	joint := make([]float64, size)
	for i := range joint {
		joint[i] = 1
	}
	assign := make([]int, len(scope))
	pos := make(map[inference.Key]int, len(scope))
	for i, k := range scope {
		pos[k] = i
	}
	for _, f := range factors {
		if f == nil {
			continue
		}
		for i := range assign {
			assign[i] = 0
		}
		for idx := 0; idx < size; idx++ {
			off := 0
			for j, k := range f.keys {
				off = off*f.cards[j] + assign[pos[k]]
			}
			joint[idx] *= f.table[off]
			increment(assign, scopeCards)
		}
	}

	// Stage 3: sum out frontals one at a time (leading dimension first)
	marginals := make([][]float64, 0, len(frontals)+1)
	marginals = append(marginals, joint)
	cur := joint
	for i := range frontals {
		card := scopeCards[i]
		rest := len(cur) / card
		next := make([]float64, rest)
		for v := 0; v < card; v++ {
			for r := 0; r < rest; r++ {
				next[r] += cur[v*rest+r]
			}
		}
		marginals = append(marginals, next)
		cur = next
	}
	total := 0.0
	for _, v := range cur {
		total += v
	}
	if total == 0 {
		return nil, nil, fmt.Errorf("%w: frontals %s", ErrZeroPartition, inference.FormatKeys(frontals))
	}

	var conds []*Conditional
	if e.granularity == inference.PerVariable {
		conds = make([]*Conditional, 0, len(frontals))
		for i := range frontals {
			conds = append(conds, &Conditional{
				frontals:     []inference.Key{frontals[i]},
				frontalCards: []int{scopeCards[i]},
				parents:      append([]inference.Key(nil), scope[i+1:]...),
				parentCards:  append([]int(nil), scopeCards[i+1:]...),
				table:        divide(marginals[i], marginals[i+1]),
			})
		}
	} else {
		nf := len(frontals)
		conds = []*Conditional{{
			frontals:     append([]inference.Key(nil), frontals...),
			frontalCards: append([]int(nil), scopeCards[:nf]...),
			parents:      sepKeys,
			parentCards:  sepCards,
			table:        divide(joint, cur),
		}}
	}

	residual := &Factor{keys: sepKeys, cards: sepCards, table: cur}

	return conds, residual, nil
}

// increment advances a mixed-radix counter, last digit fastest.
func increment(digits, radix []int) {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i]++
		if digits[i] < radix[i] {
			return
		}
		digits[i] = 0
	}
}

// divide returns num(x, r) / den(r) where num is laid out with the
// leading block as the most significant digits. Zero-mass parent rows
// become uniform.
func divide(num, den []float64) []float64 {
	rest := len(den)
	lead := len(num) / rest
	out := make([]float64, len(num))
	for r := 0; r < rest; r++ {
		for v := 0; v < lead; v++ {
			if den[r] == 0 {
				out[v*rest+r] = 1 / float64(lead)
				continue
			}
			out[v*rest+r] = num[v*rest+r] / den[r]
		}
	}

	return out
}

// Eliminate is junction.Eliminate specialized to the discrete family.
func Eliminate(ctx context.Context, jt *junction.Tree[*Factor], opts ...Option) (*bayestree.Tree[*Conditional], error) {
	return junction.Eliminate[*Conditional](ctx, jt, NewEliminator(opts...))
}

// Evaluate returns the product of every conditional of bt at a.
func Evaluate(bt *bayestree.Tree[*Conditional], a Assignment) (float64, error) {
	p := 1.0
	for _, c := range bt.Conditionals() {
		v, err := c.Prob(a)
		if err != nil {
			return 0, err
		}
		p *= v
	}

	return p, nil
}
