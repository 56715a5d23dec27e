package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	searches   *prometheus.CounterVec
	expansions *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gridastar_searches_total",
			Help: "Searches served, by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		expansions: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridastar_search_expansions",
			Help:    "Nodes expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"endpoint"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridastar_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"endpoint"}),
	}
}
