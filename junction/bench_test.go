package junction_test

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/junction"
	"github.com/katalvlaran/junctree/symbolic"
)

// forest builds k disconnected ladders of n poses each, so sibling subtrees
// exist for the worker pool to run in parallel.
func forest(k, n int) (*inference.FactorGraph[symbolic.Factor], inference.Ordering) {
	fg := inference.NewFactorGraph[symbolic.Factor]()
	var ordering inference.Ordering
	for c := 0; c < k; c++ {
		key := func(i int) inference.Key { return inference.Key(fmt.Sprintf("t%d/x%04d", c, i)) }
		fg.Add(symbolic.NewFactor(key(0)))
		ordering = append(ordering, key(0))
		for i := 1; i < n; i++ {
			fg.Add(symbolic.NewFactor(key(i-1), key(i)))
			if i >= 5 && i%5 == 0 {
				fg.Add(symbolic.NewFactor(key(i-5), key(i)))
			}
			ordering = append(ordering, key(i))
		}
	}

	return fg, ordering
}

// BenchmarkNew_Ladder1000 measures symbolic elimination, mirroring and
// factor distribution on a 1000-pose ladder.
func BenchmarkNew_Ladder1000(b *testing.B) {
	// 1. Build the graph once; only tree construction is timed.
	fg, ordering := ladder(1000)

	// 2. Reset the timer to exclude graph construction.
	b.ReportAllocs()
	b.ResetTimer()

	// 3. Rebuild the junction tree b.N times.
	for i := 0; i < b.N; i++ {
		_, _ = junction.New(fg, ordering)
	}
}

// BenchmarkEliminate compares the sequential post-order walk with the worker
// pool on a single ladder (little sibling parallelism) and on a forest.
func BenchmarkEliminate(b *testing.B) {
	shapes := map[string]func() (*inference.FactorGraph[symbolic.Factor], inference.Ordering){
		"ladder1000":  func() (*inference.FactorGraph[symbolic.Factor], inference.Ordering) { return ladder(1000) },
		"forest16x64": func() (*inference.FactorGraph[symbolic.Factor], inference.Ordering) { return forest(16, 64) },
	}
	for name, build := range shapes {
		// 1. Build each graph once per shape.
		fg, ordering := build()

		// 2. Same tree shape, one sub-benchmark per worker count.
		for _, workers := range []int{1, runtime.GOMAXPROCS(0)} {
			b.Run(fmt.Sprintf("%s/workers=%d", name, workers), func(b *testing.B) {
				jt, err := junction.New(fg, ordering, junction.WithWorkers(workers))
				if err != nil {
					b.Fatal(err)
				}
				e := symbolic.Eliminator{}
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					_, _ = junction.Eliminate[symbolic.Conditional](context.Background(), jt, e)
				}
			})
		}
	}
}
