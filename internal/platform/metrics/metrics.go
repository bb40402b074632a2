// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

// Package metrics provides Prometheus instrumentation for the API server.
//
// # Architecture
//
// A single [Collector] is registered at startup and injected where needed
// (HTTP middleware, view cache, edge gate). Handlers scrape it via the
// /metrics endpoint returned by [Handler].
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the platform's Prometheus metrics.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpLatency     prometheus.Histogram
	gateRedirects   *prometheus.CounterVec
	viewCacheHits   prometheus.Counter
	viewCacheMisses prometheus.Counter
}

// NewCollector creates a [Collector] and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minevale_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "minevale_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		gateRedirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minevale_gate_redirects_total",
			Help: "Edge gate redirects by route class.",
		}, []string{"route_class"}),
		viewCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minevale_viewcache_hits_total",
			Help: "Rendered-view cache hits.",
		}),
		viewCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "minevale_viewcache_misses_total",
			Help: "Rendered-view cache misses.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.gateRedirects,
		c.viewCacheHits,
		c.viewCacheMisses,
	)

	return c
}

// RecordHTTPRequest counts a finished request and observes its latency.
func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// RecordGateRedirect counts an edge gate redirect. Implements gate.RedirectRecorder.
func (c *Collector) RecordGateRedirect(routeClass string) {
	c.gateRedirects.WithLabelValues(routeClass).Inc()
}

// RecordViewCacheHit implements viewcache.Recorder.
func (c *Collector) RecordViewCacheHit() {
	c.viewCacheHits.Inc()
}

// RecordViewCacheMiss implements viewcache.Recorder.
func (c *Collector) RecordViewCacheMiss() {
	c.viewCacheMisses.Inc()
}

// Handler returns the HTTP handler that serves Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
