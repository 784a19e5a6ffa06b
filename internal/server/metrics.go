package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for the tokenize endpoint.
type Metrics struct {
	requests     *prometheus.CounterVec
	duration     prometheus.Histogram
	cacheLookups *prometheus.CounterVec
	cacheEntries prometheus.Gauge
}

// MustNewMetrics registers the server collectors on reg. A collector that is
// already registered is reused, so several handlers may share one registry.
// Any other registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vntok",
			Subsystem: "server",
			Name:      "tokenize_requests_total",
			Help:      "Tokenize requests by HTTP status code.",
		},
		[]string{"code"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vntok",
			Subsystem: "server",
			Name:      "tokenize_duration_seconds",
			Help:      "Time spent serving tokenize requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
	)
	cacheLookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vntok",
			Subsystem: "server",
			Name:      "cache_lookups_total",
			Help:      "Result cache lookups by outcome.",
		},
		[]string{"result"},
	)

	cacheEntries := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vntok",
			Subsystem: "server",
			Name:      "cache_entries",
			Help:      "Results currently held in the result cache.",
		},
	)

	collectors := []prometheus.Collector{requests, duration, cacheLookups, cacheEntries}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				switch collector {
				case requests:
					requests = already.ExistingCollector.(*prometheus.CounterVec)
				case cacheLookups:
					cacheLookups = already.ExistingCollector.(*prometheus.CounterVec)
				case duration:
					duration = already.ExistingCollector.(prometheus.Histogram)
				case cacheEntries:
					cacheEntries = already.ExistingCollector.(prometheus.Gauge)
				}
				continue
			}
			panic(err)
		}
	}

	return &Metrics{
		requests:     requests,
		duration:     duration,
		cacheLookups: cacheLookups,
		cacheEntries: cacheEntries,
	}
}

// ObserveRequest counts a finished tokenize request and records its duration.
func (m *Metrics) ObserveRequest(code string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(code).Inc()
	m.duration.Observe(d.Seconds())
}

// IncCache counts one result cache lookup.
func (m *Metrics) IncCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// SetCacheEntries records the current result cache size.
func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.cacheEntries.Set(float64(n))
}
