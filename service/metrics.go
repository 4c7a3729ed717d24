package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the path query collectors
type Metrics struct {
	// queries counts requests by outcome (trivial, found, exhausted)
	queries *prometheus.CounterVec

	// expansions tracks nodes popped per request
	expansions prometheus.Histogram

	// duration tracks search latency
	duration prometheus.Histogram

	// pathLength tracks waypoints per found path
	pathLength prometheus.Histogram

	// rejected counts requests refused before search, by reason
	rejected *prometheus.CounterVec

	// mapEdits counts cells changed through the map endpoint
	mapEdits prometheus.Counter
}

// NewMetrics registers collectors on reg
// A nil reg uses the default registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tilepath_queries_total",
			Help: "Total path queries by outcome",
		}, []string{"outcome"}),
		expansions: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tilepath_query_expansions",
			Help:    "Nodes expanded per path query",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14), // 1 to 8192
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tilepath_query_duration_seconds",
			Help:    "Path query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
		}),
		pathLength: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tilepath_path_waypoints",
			Help:    "Waypoints per found path",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tilepath_queries_rejected_total",
			Help: "Path queries rejected before search",
		}, []string{"reason"}),
		mapEdits: f.NewCounter(prometheus.CounterOpts{
			Name: "tilepath_map_edits_total",
			Help: "Cells changed through the map API",
		}),
	}
}
