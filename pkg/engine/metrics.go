package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// validationRunDuration tracks complete validation runs including
	// persistence.
	validationRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tablevet_validation_run_duration_seconds",
		Help:    "Duration of validation runs in seconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
	})

	// validationRunTotal counts validation runs by final status.
	validationRunTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablevet_validation_run_total",
		Help: "Total number of validation runs",
	}, []string{"status"}) // pass, fail, or error

	// docsBuildDuration tracks data-docs site builds.
	docsBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tablevet_docs_build_duration_seconds",
		Help:    "Duration of data docs site builds in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
