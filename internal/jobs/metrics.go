package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики фоновых задач; метка job: имя из Runner.Every.
var (
	jobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unibot", Subsystem: "job", Name: "runs_total",
		Help: "Background job runs, including failed ones",
	}, []string{"job"})

	jobErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unibot", Subsystem: "job", Name: "errors_total",
		Help: "Background job runs that returned an error or panicked",
	}, []string{"job"})

	jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "unibot", Subsystem: "job", Name: "duration_seconds",
		Help:    "Background job duration",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"job"})
)
