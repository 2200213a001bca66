package inference

// FactorGraph is a flat, insertion-ordered collection of factors.
// Positions are stable and identify factors in DistributionError.
// FactorGraph is not safe for concurrent mutation.
type FactorGraph[F Factor] struct {
	factors []F
}

// NewFactorGraph returns a graph holding the given factors in order.
func NewFactorGraph[F Factor](factors ...F) *FactorGraph[F] {
	fg := &FactorGraph[F]{factors: make([]F, 0, len(factors))}
	fg.factors = append(fg.factors, factors...)

	return fg
}

// Add appends f and returns its position.
func (fg *FactorGraph[F]) Add(f F) int {
	fg.factors = append(fg.factors, f)

	return len(fg.factors) - 1
}

// Len returns the number of factors.
func (fg *FactorGraph[F]) Len() int {
	if fg == nil {
		return 0
	}

	return len(fg.factors)
}

// At returns the factor at position i.
func (fg *FactorGraph[F]) At(i int) F {
	return fg.factors[i]
}

// Factors returns a copy of the factor slice.
func (fg *FactorGraph[F]) Factors() []F {
	out := make([]F, len(fg.factors))
	copy(out, fg.factors)

	return out
}

// Keys returns every key touched by any factor, sorted and unique.
// Complexity: O(Σ|keys| · log).
func (fg *FactorGraph[F]) Keys() []Key {
	var all []Key
	for _, f := range fg.factors {
		all = append(all, f.Keys()...)
	}

	return SortedKeys(all)
}

// Connectivity returns the key set of every factor, position aligned.
// This is all the symbolic pass needs to know about the graph.
func (fg *FactorGraph[F]) Connectivity() [][]Key {
	out := make([][]Key, len(fg.factors))
	for i, f := range fg.factors {
		keys := f.Keys()
		out[i] = make([]Key, len(keys))
		copy(out[i], keys)
	}

	return out
}

// CheckOrdering verifies that ordering is valid and covers exactly the keys
// of fg. It reports the first offending key as a *UsageError.
func CheckOrdering[F Factor](fg *FactorGraph[F], ordering Ordering) error {
	if err := ordering.Validate(); err != nil {
		return err
	}
	idx := ordering.Index()
	graphKeys := fg.Keys()
	inGraph := make(map[Key]struct{}, len(graphKeys))
	for _, k := range graphKeys {
		if _, ok := idx[k]; !ok {
			return &UsageError{Key: k, Reason: "graph variable missing from ordering"}
		}
		inGraph[k] = struct{}{}
	}
	for _, k := range ordering {
		if _, ok := inGraph[k]; !ok {
			return &UsageError{Key: k, Reason: "ordering variable absent from graph"}
		}
	}

	return nil
}
