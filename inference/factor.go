package inference

// Factor is a function over a subset of variables. Factors are immutable
// once created; the junction tree only reads them.
type Factor interface {
	// Keys returns the variables this factor touches. Callers must not
	// mutate the returned slice.
	Keys() []Key
}

// Conditional is the density of Frontals given Parents produced by
// eliminating (part of) a clique.
type Conditional interface {
	// Frontals lists the eliminated variables, in elimination order.
	Frontals() []Key

	// Parents lists the conditioning (separator) variables.
	Parents() []Key
}

// Eliminator is the numeric capability a factor family supplies to the
// junction tree: combine every factor routed to a clique and eliminate the
// clique's frontal variables.
//
// factors holds the clique's own factors followed by one residual per child;
// frontals is ordered by the global elimination ordering; separator is the
// clique's separator in ordering order (empty at a root).
//
// The implementation returns one or more conditionals (their granularity is
// the family's choice) and the residual factor over separator. At a root the
// residual is ignored and may be the zero value. A non-nil error aborts the
// whole elimination.
type Eliminator[F Factor, C Conditional] interface {
	Eliminate(factors []F, frontals, separator []Key) (conditionals []C, residual F, err error)
}

// EliminatorFunc adapts a plain function to the Eliminator interface.
type EliminatorFunc[F Factor, C Conditional] func(factors []F, frontals, separator []Key) ([]C, F, error)

// Eliminate calls fn.
func (fn EliminatorFunc[F, C]) Eliminate(factors []F, frontals, separator []Key) ([]C, F, error) {
	return fn(factors, frontals, separator)
}

// Granularity selects how many conditionals a family emits per clique.
type Granularity int

const (
	// PerClique emits one multi-frontal conditional per clique.
	PerClique Granularity = iota

	// PerVariable emits one conditional per frontal variable, chained so that
	// frontal i is conditioned on frontals i+1.. and the separator.
	PerVariable
)

// String implements fmt.Stringer.
func (g Granularity) String() string {
	switch g {
	case PerClique:
		return "clique"
	case PerVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// ParseGranularity maps "clique" and "variable" to their Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "clique", "":
		return PerClique, nil
	case "variable":
		return PerVariable, nil
	default:
		return PerClique, &UsageError{Reason: "unknown granularity " + s}
	}
}
