package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Timer buckets - 100µs to 60s
var solveBuckets = []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60}

// Metrics are the service's Prometheus collectors
type Metrics struct {
	solves    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	cacheHits *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		solves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aoc_solves_total",
				Help: "Number of solve requests by puzzle, part and outcome",
			},
			[]string{"puzzle", "part", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aoc_solve_duration_seconds",
				Help:    "Histogram of solve duration in seconds by puzzle and part",
				Buckets: solveBuckets,
			},
			[]string{"puzzle", "part"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aoc_cache_hits_total",
				Help: "Number of solves answered from the cache by puzzle",
			},
			[]string{"puzzle"},
		),
	}
}

func (m *Metrics) observe(puzzle, part, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(puzzle, part, outcome).Inc()
	m.duration.WithLabelValues(puzzle, part).Observe(elapsed.Seconds())
}

func (m *Metrics) cacheHit(puzzle string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(puzzle).Inc()
}
