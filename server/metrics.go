package server

import (
	"github.com/fukurin00/grid_routing_provider/routing"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	searches        *prometheus.CounterVec
	expandedNodes   prometheus.Histogram
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grid_routing_searches_total",
			Help: "Total number of path searches by outcome",
		}, []string{"outcome"}),
		expandedNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grid_routing_expanded_nodes",
			Help:    "Histogram of cells expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "grid_routing_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"code"}),
	}
	reg.MustRegister(m.searches, m.expandedNodes, m.requestDuration)
	return m
}

func (m *metrics) observe(res routing.Result, err error) {
	outcome := "no_path"
	switch {
	case err != nil:
		outcome = "error"
	case res.Found:
		outcome = "found"
	}
	m.searches.WithLabelValues(outcome).Inc()
	m.expandedNodes.Observe(float64(res.Expanded))
}
