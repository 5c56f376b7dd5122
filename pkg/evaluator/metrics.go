package evaluator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Evaluation run metrics
	evaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tablevet_evaluation_duration_seconds",
			Help:    "Time taken to evaluate a suite against an input",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
	)

	evaluationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablevet_evaluation_total",
			Help: "Total number of evaluation runs",
		},
		[]string{"status"}, // pass, fail, or error
	)

	evaluationRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tablevet_evaluation_rows_total",
			Help: "Total number of data rows consumed by evaluations",
		},
	)

	ruleOutcomeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tablevet_rule_outcome_total",
			Help: "Total number of rule outcomes by kind and result",
		},
		[]string{"kind", "result"}, // result: passed, failed, or errored
	)
)
