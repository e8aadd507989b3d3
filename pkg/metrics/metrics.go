// Package metrics defines the Prometheus collectors for the card pipeline.
// Collectors register on the default registry; expose them with
// promhttp.Handler on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetches_total",
			Help: "Total number of page fetch attempts.",
		},
		[]string{"status"},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fetch_duration_seconds",
			Help:    "Duration of page fetches including parsing.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	OEmbedProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oembed_probes_total",
			Help: "Total number of oEmbed endpoint probes.",
		},
		[]string{"provider", "status"},
	)

	CardsNormalizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cards_normalized_total",
			Help: "Total number of cards produced by normalization.",
		},
	)

	FusionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fusions_total",
			Help: "Total number of fusion operations.",
		},
	)

	PublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publishes_total",
			Help: "Total number of card drop publish attempts.",
		},
		[]string{"status"},
	)
)
