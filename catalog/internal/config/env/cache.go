package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type cacheEnv struct {
	CatalogTTL        time.Duration `env:"CACHE_CATALOG_TTL" envDefault:"24h"`
	DescriptionTTL    time.Duration `env:"CACHE_DESCRIPTION_TTL" envDefault:"24h"`
	ImageTTL          time.Duration `env:"CACHE_IMAGE_TTL" envDefault:"12h"`
	EnrichConcurrency int           `env:"CACHE_ENRICH_CONCURRENCY" envDefault:"8"`
	MetricsNamespace  string        `env:"METRICS_NAMESPACE" envDefault:"catalog"`
}

type cache struct {
	raw cacheEnv
}

func NewCacheConfig() (*cache, error) {
	var raw cacheEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &cache{raw: raw}, nil
}

func (cfg *cache) CatalogTTL() time.Duration     { return cfg.raw.CatalogTTL }
func (cfg *cache) DescriptionTTL() time.Duration { return cfg.raw.DescriptionTTL }
func (cfg *cache) ImageTTL() time.Duration       { return cfg.raw.ImageTTL }
func (cfg *cache) EnrichConcurrency() int        { return cfg.raw.EnrichConcurrency }
func (cfg *cache) MetricsNamespace() string      { return cfg.raw.MetricsNamespace }
