// Package metrics collects Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	provisioned prometheus.Counter
	uploads     *prometheus.CounterVec
}

// NewCollector registers the API metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notes_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notes_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		provisioned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notes_users_provisioned_total",
			Help: "Users created on their first authenticated request.",
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notes_uploads_total",
			Help: "Files stored in object storage by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(c.requests, c.latency, c.provisioned, c.uploads)
	return c
}

func (c *Collector) RecordRequest(method, route string, status int, d time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) RecordUserProvisioned() {
	c.provisioned.Inc()
}

func (c *Collector) RecordUpload(kind string) {
	c.uploads.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
