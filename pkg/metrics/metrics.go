package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GraphMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dazzlr_graph_mutations_total",
			Help: "Follow graph mutations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	FeedDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dazzlr_feed_compose_seconds",
			Help:    "Time spent composing a feed by fan-out-on-read.",
			Buckets: prometheus.DefBuckets,
		},
	)

	FeedFanout = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dazzlr_feed_fanout_width",
			Help:    "Number of followed users read per feed request.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	OnlineUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dazzlr_online_users",
			Help: "Users currently registered in the presence registry.",
		},
	)

	RealtimeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dazzlr_realtime_events_total",
			Help: "Realtime events pushed to peers by type.",
		},
		[]string{"type"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dazzlr_http_requests_total",
			Help: "HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)
)

func init() {
	prometheus.MustRegister(GraphMutations, FeedDuration, FeedFanout, OnlineUsers, RealtimeEvents, HTTPRequests)
}

// Handler 暴露 /metrics
func Handler() http.Handler { return promhttp.Handler() }
