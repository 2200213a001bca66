package discrete_test

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/katalvlaran/junctree/discrete"
	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/junction"
)

// hmm builds an n-step chain of hidden binary states, each with a ternary
// observation, and returns it with the forward ordering.
func hmm(b *testing.B, n int) (*inference.FactorGraph[*discrete.Factor], inference.Ordering) {
	b.Helper()
	must := func(f *discrete.Factor, err error) *discrete.Factor {
		if err != nil {
			b.Fatal(err)
		}
		return f
	}
	state := func(i int) inference.Key { return inference.Key(fmt.Sprintf("s%04d", i)) }
	obs := func(i int) inference.Key { return inference.Key(fmt.Sprintf("o%04d", i)) }

	fg := inference.NewFactorGraph(must(discrete.NewFactor([]inference.Key{state(0)}, []int{2}, []float64{0.5, 0.5})))
	var ordering inference.Ordering
	for i := 0; i < n; i++ {
		fg.Add(must(discrete.NewFactor([]inference.Key{state(i), obs(i)}, []int{2, 3},
			[]float64{0.7, 0.2, 0.1, 0.1, 0.3, 0.6})))
		if i > 0 {
			fg.Add(must(discrete.NewFactor([]inference.Key{state(i - 1), state(i)}, []int{2, 2},
				[]float64{0.9, 0.1, 0.2, 0.8})))
		}
		ordering = append(ordering, obs(i))
	}
	for i := 0; i < n; i++ {
		ordering = append(ordering, state(i))
	}

	return fg, ordering
}

// BenchmarkEliminate_HMM500 measures sum-product elimination of a 500-step
// chain, sequential against the worker pool.
func BenchmarkEliminate_HMM500(b *testing.B) {
	// 1. Observations first, then states, so each state clique is small.
	fg, ordering := hmm(b, 500)

	// 2. Sum-product b.N times per worker count.
	for _, workers := range []int{1, runtime.GOMAXPROCS(0)} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			jt, err := junction.New(fg, ordering, junction.WithWorkers(workers))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = discrete.Eliminate(context.Background(), jt)
			}
		})
	}
}

// BenchmarkEliminator_Joint measures the joint product and sum-out of a
// single clique over eight ternary keys.
func BenchmarkEliminator_Joint(b *testing.B) {
	keys := make([]inference.Key, 8)
	for i := range keys {
		keys[i] = inference.Key(fmt.Sprintf("v%d", i))
	}
	var factors []*discrete.Factor
	for i := 0; i+1 < len(keys); i++ {
		f, err := discrete.NewFactor(keys[i:i+2], []int{3, 3}, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
		if err != nil {
			b.Fatal(err)
		}
		factors = append(factors, f)
	}
	e := discrete.NewEliminator(discrete.WithGranularity(inference.PerVariable))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = e.Eliminate(factors, keys[:5], keys[5:])
	}
}
