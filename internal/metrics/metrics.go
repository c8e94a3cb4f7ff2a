// Package metrics exposes Prometheus instrumentation for the hub.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "roomcast",
		Name:      "active_connections",
		Help:      "Live websocket connections.",
	})

	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomcast",
		Name:      "rooms_created_total",
		Help:      "Rooms created lazily on first join.",
	})

	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roomcast",
		Name:      "messages_total",
		Help:      "Messages accepted into room history.",
	}, []string{"type"})

	DroppedDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomcast",
		Name:      "dropped_deliveries_total",
		Help:      "Fan-out frames dropped because a client queue was full or closed.",
	})
)

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
