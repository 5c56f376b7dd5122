package suite

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Suite assembly metrics
	suiteBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tablevet_suite_build_duration_seconds",
			Help:    "Time taken to assemble and validate a suite",
			Buckets: prometheus.DefBuckets,
		},
	)

	suiteBuildTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablevet_suite_build_total",
			Help: "Total number of suite assembly attempts",
		},
		[]string{"status"}, // success or error
	)
)
