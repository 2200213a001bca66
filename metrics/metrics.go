// Package metrics exports junction tree events as Prometheus metrics.
//
// A Collector implements junction.Observer:
//
//	reg := prometheus.NewRegistry()
//	col := metrics.NewCollector(reg)
//	jt, err := junction.New(fg, ordering, junction.WithObserver(col))
//
// Exposed series:
//
//   - junctree_cliques_eliminated_total{result="ok"|"error"}
//   - junctree_clique_elimination_seconds (histogram)
//   - junctree_clique_frontal_keys (histogram)
//   - junctree_tree_cliques / junctree_tree_factors (gauges, last tree built)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "junctree"

// Collector records construction and elimination events.
type Collector struct {
	eliminated *prometheus.CounterVec
	latency    prometheus.Histogram
	frontals   prometheus.Histogram
	cliques    prometheus.Gauge
	factors    prometheus.Gauge
}

// NewCollector creates the metrics and registers them on reg.
// A nil reg leaves them unregistered, which is useful in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		eliminated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cliques_eliminated_total",
			Help:      "Clique eliminations by result.",
		}, []string{"result"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clique_elimination_seconds",
			Help:      "Time spent eliminating a single clique.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		frontals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "clique_frontal_keys",
			Help:      "Number of frontal keys per eliminated clique.",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		}),
		cliques: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_cliques",
			Help:      "Cliques in the most recently built junction tree.",
		}),
		factors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_factors",
			Help:      "Factors distributed in the most recently built junction tree.",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.eliminated, c.latency, c.frontals, c.cliques, c.factors)
	}

	return c
}

// TreeBuilt implements junction.Observer.
func (c *Collector) TreeBuilt(cliques, factors int) {
	c.cliques.Set(float64(cliques))
	c.factors.Set(float64(factors))
}

// CliqueEliminated implements junction.Observer.
func (c *Collector) CliqueEliminated(_ int, frontals int, elapsed time.Duration, err error) {
	if err != nil {
		c.eliminated.WithLabelValues("error").Inc()
		return
	}
	c.eliminated.WithLabelValues("ok").Inc()
	c.latency.Observe(elapsed.Seconds())
	c.frontals.Observe(float64(frontals))
}
