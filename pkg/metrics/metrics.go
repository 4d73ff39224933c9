// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP groups the request instruments.
type HTTP struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Inflight        prometheus.Gauge
}

// Registry owns every collector of the process.
type Registry struct {
	reg  *prometheus.Registry
	HTTP *HTTP
}

func New() (*Registry, error) {
	reg := prometheus.NewRegistry()
	h := &HTTP{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		Inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests currently being served",
		}),
	}
	for _, c := range []prometheus.Collector{
		h.RequestsTotal,
		h.RequestDuration,
		h.Inflight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := register(reg, c); err != nil {
			return nil, err
		}
	}
	return &Registry{reg: reg, HTTP: h}, nil
}

// WatchDB exports connection pool statistics for db.
func (r *Registry) WatchDB(name string, db *sql.DB) error {
	return register(r.reg, collectors.NewDBStatsCollector(db, name))
}

// Handler serves the exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// register ignores duplicates.
func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}
