package cache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Option func(*Cache)

// WithClock replaces time.Now. Tests use it to move time forward.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func WithTTL(st StoreType, ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttls[st] = ttl
	}
}

func WithLogger(l Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

func WithMetrics(reg prometheus.Registerer, namespace string) Option {
	return func(c *Cache) {
		c.registerer = reg
		c.namespace = namespace
	}
}
