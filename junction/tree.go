package junction

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/junctree/cluster"
	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/symbolic"
)

var (
	// ErrGraphNil is returned when a nil factor graph is passed to New.
	ErrGraphNil = errors.New("junction: factor graph is nil")

	// ErrSymbolicNil is returned when NewFromSymbolic receives a nil tree.
	ErrSymbolicNil = errors.New("junction: symbolic Bayes tree is nil")

	// ErrNoConditionals indicates an eliminator returned no conditional.
	ErrNoConditionals = errors.New("junction: eliminator produced no conditionals")

	// ErrResidualScope indicates a residual factor escaped the separator.
	ErrResidualScope = errors.New("junction: residual factor outside separator")

	// ErrMissingResidual indicates a nil residual at a non-root clique.
	ErrMissingResidual = errors.New("junction: eliminator produced no residual")
)

// Tree is a cluster tree whose clusters are the cliques of the chordal graph
// induced by an elimination ordering, populated with the original factors.
// The structure is frozen after construction.
type Tree[F inference.Factor] struct {
	*cluster.Tree[F]

	ordering inference.Ordering
	index    map[inference.Key]int
	opts     options
}

// New constructs the junction tree of fg under ordering.
//
// Errors:
//   - ErrGraphNil
//   - *inference.UsageError        ordering invalid or key sets differ.
//   - *inference.DistributionError a factor has no clique (e.g. no keys).
//
// Complexity: symbolic elimination plus O(Σ|factor keys|) distribution.
func New[F inference.Factor](fg *inference.FactorGraph[F], ordering inference.Ordering, opts ...Option) (*Tree[F], error) {
	if fg == nil {
		return nil, ErrGraphNil
	}
	if err := inference.CheckOrdering(fg, ordering); err != nil {
		return nil, err
	}
	sym, err := symbolic.Eliminate(fg.Connectivity(), ordering)
	if err != nil {
		return nil, fmt.Errorf("junction: symbolic elimination: %w", err)
	}

	return build(fg, ordering, sym, opts)
}

// NewFromSymbolic constructs the junction tree of fg using a caller-supplied
// symbolic Bayes tree instead of running symbolic elimination. The supplied
// structure must partition the ordering and satisfy running intersection;
// violations are reported wrapping inference.ErrUsage.
func NewFromSymbolic[F inference.Factor](fg *inference.FactorGraph[F], ordering inference.Ordering, sym *symbolic.BayesTree, opts ...Option) (*Tree[F], error) {
	if fg == nil {
		return nil, ErrGraphNil
	}
	if sym == nil {
		return nil, ErrSymbolicNil
	}
	if err := inference.CheckOrdering(fg, ordering); err != nil {
		return nil, err
	}

	return build(fg, ordering, sym, opts)
}

// build mirrors sym into a cluster tree, distributes factors and checks the
// clique-tree invariants.
func build[F inference.Factor](fg *inference.FactorGraph[F], ordering inference.Ordering, sym *symbolic.BayesTree, opts []Option) (*Tree[F], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	t := &Tree[F]{
		Tree:     cluster.New[F](),
		ordering: append(inference.Ordering(nil), ordering...),
		index:    ordering.Index(),
		opts:     o,
	}

	// 1. One cluster per symbolic clique, same topology, parents first
	mirror := make(map[*symbolic.Clique]*cluster.Cluster[F], sym.Size())
	_ = sym.PreOrder(func(sc *symbolic.Clique) error {
		frontals := append([]inference.Key(nil), sc.Frontals...)
		separator := append([]inference.Key(nil), sc.Separator...)
		inference.SortByOrder(frontals, t.index)
		inference.SortByOrder(separator, t.index)
		mirror[sc] = t.AddCluster(mirror[sc.Parent()], frontals, separator)

		return nil
	})

	// 2. Route factors
	if err := t.distribute(fg); err != nil {
		return nil, err
	}

	// 3. Structural invariants
	if err := t.Check(ordering); err != nil {
		return nil, fmt.Errorf("%w: %w", inference.ErrUsage, err)
	}

	o.logger.WithFields(logrus.Fields{
		"cliques": t.Len(),
		"roots":   len(t.Roots()),
		"factors": t.FactorCount(),
	}).Info("junction tree built")
	o.observer.TreeBuilt(t.Len(), t.FactorCount())

	return t, nil
}

// Ordering returns a copy of the elimination ordering the tree was built for.
func (t *Tree[F]) Ordering() inference.Ordering {
	return append(inference.Ordering(nil), t.ordering...)
}
