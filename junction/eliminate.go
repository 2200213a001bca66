package junction

import (
	"context"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/junctree/bayestree"
	"github.com/katalvlaran/junctree/cluster"
	"github.com/katalvlaran/junctree/inference"
)

// Eliminate eliminates every clique of t with e, children before parents,
// and returns the Bayes tree of the produced conditionals.
//
// Each clique combines its own factors with one residual per child (in child
// order), eliminates its frontal keys and forwards the residual over its
// separator to the parent. Roots forward nothing.
//
// C is usually the only explicit type argument:
//
//	bt, err := junction.Eliminate[*gaussian.Conditional](ctx, jt, gaussian.NewEliminator())
//
// Errors:
//   - *inference.EliminationError wrapping the eliminator's cause,
//     ErrNoConditionals, ErrMissingResidual or ErrResidualScope.
//   - ctx.Err() when ctx is cancelled.
//
// On error no Bayes tree is returned. t is never modified.
func Eliminate[C inference.Conditional, F inference.Factor](ctx context.Context, t *Tree[F], e inference.Eliminator[F, C]) (*bayestree.Tree[C], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &run[F, C]{
		tree:      t,
		elim:      e,
		log:       t.opts.logger,
		observer:  t.opts.observer,
		outputs:   make([][]C, t.Len()),
		residuals: make([]F, t.Len()),
	}

	start := time.Now()
	var err error
	if t.opts.workers <= 1 || t.Len() <= 1 {
		err = r.sequential(ctx)
	} else {
		err = r.parallel(ctx, t.opts.workers)
	}
	if err != nil {
		r.log.WithError(err).Warn("junction tree elimination failed")
		return nil, err
	}

	bt := r.assemble()
	r.log.WithFields(logrus.Fields{
		"cliques": bt.Size(),
		"elapsed": time.Since(start),
	}).Info("junction tree eliminated")

	return bt, nil
}

// run holds the per-call state of one elimination. Slots are indexed by
// cluster ID; each is written by exactly one clique.
type run[F inference.Factor, C inference.Conditional] struct {
	tree     *Tree[F]
	elim     inference.Eliminator[F, C]
	log      logrus.FieldLogger
	observer Observer

	outputs   [][]C
	residuals []F
}

// sequential drives an explicit post-order walk.
func (r *run[F, C]) sequential(ctx context.Context) error {
	return r.tree.PostOrder(func(c *cluster.Cluster[F]) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return r.eliminateOne(c)
	})
}

// parallel runs a dependency-counting scheduler: leaves start ready, and a
// clique becomes ready when its last child finishes. The worker that
// finishes the final clique closes the queue.
func (r *run[F, C]) parallel(ctx context.Context, workers int) error {
	n := r.tree.Len()
	if workers > n {
		workers = n
	}
	waiting := make([]atomic.Int32, n)
	ready := make(chan *cluster.Cluster[F], n)
	for _, c := range r.tree.Clusters() {
		waiting[c.ID].Store(int32(len(c.Children())))
		if len(c.Children()) == 0 {
			ready <- c
		}
	}

	var finished atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case c, ok := <-ready:
					if !ok {
						return nil
					}
					if err := gctx.Err(); err != nil {
						return err
					}
					if err := r.eliminateOne(c); err != nil {
						return err
					}
					if p := c.Parent(); p != nil && waiting[p.ID].Add(-1) == 0 {
						ready <- p
					}
					if finished.Add(1) == int32(n) {
						close(ready)
					}
				}
			}
		})
	}

	return g.Wait()
}

// eliminateOne combines, eliminates and stores the outputs of c.
func (r *run[F, C]) eliminateOne(c *cluster.Cluster[F]) error {
	// 1. Combine own factors with child residuals, in child order
	children := c.Children()
	factors := make([]F, 0, len(c.Factors)+len(children))
	factors = append(factors, c.Factors...)
	var zero F
	for _, ch := range children {
		factors = append(factors, r.residuals[ch.ID])
		r.residuals[ch.ID] = zero // consumed
	}

	r.log.WithFields(logrus.Fields{
		"clique":   c.ID,
		"frontals": inference.FormatKeys(c.Frontals),
		"factors":  len(factors),
	}).Debug("eliminating clique")

	// 2. Eliminate
	start := time.Now()
	conds, residual, err := r.elim.Eliminate(factors, c.Frontals, c.Separator)
	if err == nil {
		err = r.checkOutputs(c, conds, residual)
	}
	r.observer.CliqueEliminated(c.ID, len(c.Frontals), time.Since(start), err)
	if err != nil {
		return &inference.EliminationError{Clique: c.ID, Frontals: c.Frontals, Err: err}
	}

	// 3. Store
	r.outputs[c.ID] = conds
	if !c.IsRoot() {
		r.residuals[c.ID] = residual
	}

	return nil
}

// checkOutputs enforces the eliminator contract for clique c.
func (r *run[F, C]) checkOutputs(c *cluster.Cluster[F], conds []C, residual F) error {
	if len(conds) == 0 {
		return ErrNoConditionals
	}
	if c.IsRoot() {
		return nil
	}
	if isNil(residual) {
		return ErrMissingResidual
	}
	sep := make(map[inference.Key]struct{}, len(c.Separator))
	for _, k := range c.Separator {
		sep[k] = struct{}{}
	}
	for _, k := range residual.Keys() {
		if _, ok := sep[k]; !ok {
			return ErrResidualScope
		}
	}

	return nil
}

// assemble mirrors the cluster tree into a Bayes tree. Cluster IDs are
// assigned parents-first, so walking the arena in ID order is enough.
func (r *run[F, C]) assemble() *bayestree.Tree[C] {
	bt := bayestree.New[C]()
	cliques := make([]*bayestree.Clique[C], r.tree.Len())
	for _, c := range r.tree.Clusters() {
		var parent *bayestree.Clique[C]
		if p := c.Parent(); p != nil {
			parent = cliques[p.ID]
		}
		cliques[c.ID] = bt.AddClique(parent, c.Frontals, c.Separator, r.outputs[c.ID])
	}

	return bt
}

// isNil reports whether a generic factor value is a nil pointer, map, slice
// or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
