package fetch

import "github.com/prometheus/client_golang/prometheus"

// Collector records loader activity.
type Collector struct {
	requests      *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
	cancellations *prometheus.CounterVec
	failures      *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_fetch_requests_total",
			Help: "Catalog requests issued.",
		}, []string{"kind"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_fetch_cache_hits_total",
			Help: "Loads served from the path cache.",
		}, []string{"kind"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_fetch_cancellations_total",
			Help: "In-flight requests superseded or disposed.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reel_fetch_failures_total",
			Help: "Failed loads by reason.",
		}, []string{"kind", "reason"}),
	}
	if reg != nil {
		reg.MustRegister(c.requests, c.cacheHits, c.cancellations, c.failures)
	}
	return c
}

func (c *Collector) request(kind string) {
	if c != nil {
		c.requests.WithLabelValues(kind).Inc()
	}
}

func (c *Collector) cacheHit(kind string) {
	if c != nil {
		c.cacheHits.WithLabelValues(kind).Inc()
	}
}

func (c *Collector) cancellation(kind string) {
	if c != nil {
		c.cancellations.WithLabelValues(kind).Inc()
	}
}

func (c *Collector) failure(kind string, err error) {
	if c != nil {
		c.failures.WithLabelValues(kind, reason(err)).Inc()
	}
}
