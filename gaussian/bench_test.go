package gaussian_test

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/katalvlaran/junctree/gaussian"
	"github.com/katalvlaran/junctree/inference"
	"github.com/katalvlaran/junctree/junction"
)

// poseGraph builds n 3-dimensional poses with odometry and a loop closure
// every tenth pose.
func poseGraph(b *testing.B, n int) (*inference.FactorGraph[*gaussian.Factor], inference.Ordering) {
	b.Helper()
	key := func(i int) inference.Key { return inference.Key(fmt.Sprintf("x%04d", i)) }
	prior, err := gaussian.Prior(key(0), []float64{0, 0, 0}, 0.1)
	if err != nil {
		b.Fatal(err)
	}
	fg := inference.NewFactorGraph(prior)
	ordering := inference.Ordering{key(0)}
	for i := 1; i < n; i++ {
		odo, err := gaussian.Between(key(i-1), key(i), []float64{1, 0, 0.1}, 0.5)
		if err != nil {
			b.Fatal(err)
		}
		fg.Add(odo)
		if i >= 10 && i%10 == 0 {
			loop, err := gaussian.Between(key(i-10), key(i), []float64{10, 0, 1}, 1)
			if err != nil {
				b.Fatal(err)
			}
			fg.Add(loop)
		}
		ordering = append(ordering, key(i))
	}

	return fg, ordering
}

// BenchmarkEliminate_PoseGraph500 measures QR elimination plus Optimize,
// sequential against the worker pool.
func BenchmarkEliminate_PoseGraph500(b *testing.B) {
	// 1. Build the pose graph once; every sub-benchmark shares it.
	fg, ordering := poseGraph(b, 500)

	// 2. Eliminate and back-substitute b.N times per worker count.
	for _, workers := range []int{1, runtime.GOMAXPROCS(0)} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			jt, err := junction.New(fg, ordering, junction.WithWorkers(workers))
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				bt, err := gaussian.Eliminate(context.Background(), jt)
				if err != nil {
					b.Fatal(err)
				}
				_, _ = gaussian.Optimize(bt)
			}
		})
	}
}

// BenchmarkEliminator_DenseClique measures one QR over a 10-key clique fed by
// every pairwise factor.
func BenchmarkEliminator_DenseClique(b *testing.B) {
	var factors []*gaussian.Factor
	keys := make([]inference.Key, 10)
	for i := range keys {
		keys[i] = inference.Key(fmt.Sprintf("k%d", i))
		p, err := gaussian.Prior(keys[i], []float64{float64(i), 0}, 1)
		if err != nil {
			b.Fatal(err)
		}
		factors = append(factors, p)
	}
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			f, err := gaussian.Between(keys[i], keys[j], []float64{float64(j - i), 0}, 1)
			if err != nil {
				b.Fatal(err)
			}
			factors = append(factors, f)
		}
	}
	e := gaussian.NewEliminator()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = e.Eliminate(factors, keys[:6], keys[6:])
	}
}
