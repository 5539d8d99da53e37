// Package metrics registers the Prometheus collectors shared across the
// scanner. Collectors are registered once at init via promauto on the
// default registry; the HTTP server exposes them at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equityscan_cache_hits_total",
		Help: "Cache hits by payload purpose.",
	}, []string{"purpose"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equityscan_cache_misses_total",
		Help: "Cache misses by payload purpose.",
	}, []string{"purpose"})

	FetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equityscan_fetch_errors_total",
		Help: "Upstream fetch failures by payload purpose.",
	}, []string{"purpose"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "equityscan_fetch_duration_seconds",
		Help:    "Upstream fetch latency by payload purpose.",
		Buckets: prometheus.DefBuckets,
	}, []string{"purpose"})

	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "equityscan_scan_duration_seconds",
		Help:    "Full-universe scan latency by screen kind.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"kind"})

	ScanSymbolsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "equityscan_scan_symbols_skipped_total",
		Help: "Symbols dropped from a scan due to per-symbol failures.",
	}, []string{"kind"})

	ScanResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "equityscan_scan_results",
		Help:    "Matching symbols per scan by screen kind.",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"kind"})
)
