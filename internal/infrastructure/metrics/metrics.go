// Package metrics holds the Prometheus collectors for moderation and the
// image proxy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "peopleconnect_moderation_decisions_total",
		Help: "Posts decided by the moderation scanner, by outcome (Approved, Rejected, Held).",
	}, []string{"outcome"})

	ModerationImageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "peopleconnect_moderation_image_failures_total",
		Help: "Images that produced no classification, by stage (fetch, decode, classify).",
	}, []string{"stage"})

	ClassifierLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "peopleconnect_classifier_request_seconds",
		Help:    "Latency of NSFW classifier calls.",
		Buckets: prometheus.DefBuckets,
	})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "peopleconnect_moderation_scan_seconds",
		Help:    "Wall time of a full pending-post scan.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	ImageProxyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "peopleconnect_image_proxy_requests_total",
		Help: "Image proxy fetches, by result (hit, miss, error).",
	}, []string{"result"})

	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "peopleconnect_feed_websocket_clients",
		Help: "Connected admin websocket clients.",
	})
)
