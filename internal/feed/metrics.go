package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Labels stay bounded: event kinds and fixed reasons only, never players.
var (
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popquiz",
		Name:      "events_total",
		Help:      "Round events published to the feed",
	}, []string{"kind"})

	pointsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "popquiz",
		Name:      "points_total",
		Help:      "Points awarded by popped clusters and orphans",
	})

	spheresRemovedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popquiz",
		Name:      "spheres_removed_total",
		Help:      "Spheres removed from boards",
	}, []string{"cause"}) // "cluster", "orphan"

	framesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "popquiz",
		Name:      "feed_frames_dropped_total",
		Help:      "Frames dropped because the hub or a spectator was behind",
	})

	rejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "popquiz",
		Name:      "feed_rejected_total",
		Help:      "Requests and sockets refused",
	}, []string{"reason"}) // "rate_limit", "ws_limit", "ws_ip_limit", "auth"

	socketsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "popquiz",
		Name:      "feed_sockets_active",
		Help:      "Connected spectators",
	})

	messagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "popquiz",
		Name:      "feed_messages_total",
		Help:      "Messages written to spectators",
	})
)

// observe updates the round counters for one frame.
func observe(f Frame) {
	eventsTotal.WithLabelValues(f.Kind).Inc()
	switch f.Kind {
	case "cluster_popped":
		spheresRemovedTotal.WithLabelValues("cluster").Add(float64(f.Count))
		pointsTotal.Add(float64(f.Points))
	case "orphan_avalanche":
		spheresRemovedTotal.WithLabelValues("orphan").Add(float64(f.Count))
		pointsTotal.Add(float64(f.Points))
	}
}
