// Package metrics counts store operations and cache behaviour with
// Prometheus collectors on a private registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stockbook"

// Cache event labels.
const (
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CachePatch      = "patch"
	CacheInvalidate = "invalidate"
)

// Collector holds the store counters. The zero value is not usable; a nil
// *Collector discards every observation.
type Collector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	targets    *prometheus.CounterVec
	cache      *prometheus.CounterVec
	encodes    *prometheus.CounterVec
}

// New creates a collector registered on its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Store operations by name and result.",
		}, []string{"op", "result"}),
		targets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "targets_total",
			Help:      "Targets of bulk operations by resolution outcome.",
		}, []string{"op", "outcome"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Read cache hits, misses, patches and invalidations.",
		}, []string{"event"}),
		encodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encodes_total",
			Help:      "Scannable image encodes by stage reached.",
		}, []string{"stage"}),
	}
	c.registry.MustRegister(c.operations, c.targets, c.cache, c.encodes)
	return c
}

// Registry returns the collector's registry for export.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Operation records one store call. err is the call's returned error.
func (c *Collector) Operation(op string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.operations.WithLabelValues(op, result).Inc()
}

// Targets records n bulk-operation targets with the given outcome.
func (c *Collector) Targets(op, outcome string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.targets.WithLabelValues(op, outcome).Add(float64(n))
}

// Cache records a cache event.
func (c *Collector) Cache(event string) {
	if c == nil {
		return
	}
	c.cache.WithLabelValues(event).Inc()
}

// Encode records the stage at which an encode finished: "full",
// "reduced" or "placeholder".
func (c *Collector) Encode(stage string) {
	if c == nil {
		return
	}
	c.encodes.WithLabelValues(stage).Inc()
}

// WriteFile writes the current metrics in the text exposition format,
// suitable for a node exporter textfile collector.
func (c *Collector) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
