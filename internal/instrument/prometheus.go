package instrument

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptcord_requests_total",
			Help: "Number of requests served, by surface, action and status",
		},
		[]string{"surface", "action", "status"},
	)
	openConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cryptcord_open_connections",
			Help: "Number of currently open relay connections",
		},
	)
)

func init() {
	prometheus.MustRegister(requestsServed)
	prometheus.MustRegister(openConnections)
}

// Request records one produced response envelope. The action label is
// "unknown" when a request was answered before its action could be read.
func Request(surface, action string, status int) {
	if action == "" {
		action = "unknown"
	}
	requestsServed.With(prometheus.Labels{
		"surface": surface,
		"action":  action,
		"status":  strconv.Itoa(status),
	}).Inc()
}

func ConnectionOpened() {
	openConnections.Inc()
}

func ConnectionClosed() {
	openConnections.Dec()
}

// Handler exposes the registered metrics for mounting on an HTTP mux.
func Handler() http.Handler {
	return promhttp.Handler()
}
