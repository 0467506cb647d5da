package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

type cacheMetrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	sets          *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	size          *prometheus.GaugeVec
}

func newCacheMetrics(reg prometheus.Registerer, namespace string) (*cacheMetrics, error) {
	labels := []string{"store"}

	m := &cacheMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of fresh cache hits",
		}, labels),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of cache misses, expired entries included",
		}, labels),
		sets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "sets_total",
			Help:      "Total number of cache set operations",
		}, labels),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "invalidated_entries_total",
			Help:      "Total number of entries dropped by invalidation",
		}, labels),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "fetch_errors_total",
			Help:      "Total number of failed content store lookups",
		}, labels),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Entries physically held, expired ones included",
		}, labels),
	}

	for _, c := range []prometheus.Collector{m.hits, m.misses, m.sets, m.invalidations, m.fetchErrors, m.size} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *cacheMetrics) hit(st StoreType) {
	if m != nil {
		m.hits.WithLabelValues(string(st)).Inc()
	}
}

func (m *cacheMetrics) miss(st StoreType) {
	if m != nil {
		m.misses.WithLabelValues(string(st)).Inc()
	}
}

func (m *cacheMetrics) set(st StoreType, size int) {
	if m != nil {
		m.sets.WithLabelValues(string(st)).Inc()
		m.size.WithLabelValues(string(st)).Set(float64(size))
	}
}

func (m *cacheMetrics) invalidated(st StoreType, n int) {
	if m != nil {
		m.invalidations.WithLabelValues(string(st)).Add(float64(n))
		m.size.WithLabelValues(string(st)).Set(0)
	}
}

func (m *cacheMetrics) fetchFailed(st StoreType) {
	if m != nil {
		m.fetchErrors.WithLabelValues(string(st)).Inc()
	}
}
