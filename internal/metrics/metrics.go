// Package metrics exposes the engine's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesCompleted counts successful single-instrument analyses.
	AnalysesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockaura_analyses_completed_total",
		Help: "Number of completed instrument analyses",
	})

	// ScanFailures counts instruments dropped from a batch scan.
	ScanFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockaura_scan_failures_total",
		Help: "Number of instruments that failed during a batch scan",
	})

	// SignalsEmitted counts terminal signals by category.
	SignalsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockaura_signals_total",
		Help: "Terminal signals emitted, labeled by signal",
	}, []string{"signal"})

	// ProviderRequestDuration observes market-data fetch latency.
	ProviderRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stockaura_provider_request_seconds",
		Help:    "Market-data provider request duration",
		Buckets: prometheus.DefBuckets,
	})
)
