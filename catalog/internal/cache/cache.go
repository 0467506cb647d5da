// Package cache is the in-process, TTL-bound read-through layer between
// catalog consumers and the content-addressed store.
//
// Each store is guarded by its own lock, but misses are not deduplicated:
// two goroutines missing the same key both go to the content store and the
// last one to finish wins.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/you-humble/biomarket/catalog/internal/model"
	"github.com/you-humble/biomarket/platform/logger"
)

type StoreType string

const (
	StoreCatalog     StoreType = "catalog"
	StoreDescription StoreType = "description"
	StoreImage       StoreType = "image"
)

const (
	DefaultCatalogTTL     = 24 * time.Hour
	DefaultDescriptionTTL = 24 * time.Hour
	DefaultImageTTL       = 12 * time.Hour
)

var errMalformedPayload = errors.New("malformed description payload")

func StoreTypes() []StoreType {
	return []StoreType{StoreCatalog, StoreDescription, StoreImage}
}

func ParseStoreType(s string) (StoreType, error) {
	st := StoreType(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StoreCatalog, StoreDescription, StoreImage:
		return st, nil
	default:
		return "", fmt.Errorf("unknown cache store %q", s)
	}
}

type ContentFetcher interface {
	DownloadJSON(ctx context.Context, cid string) (any, error)
	GatewayURL(ctx context.Context, cid string) (string, error)
}

type Logger interface {
	Warn(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type Cache struct {
	fetcher ContentFetcher

	catalog     *ttlStore[*model.Product]
	description *ttlStore[*model.Description]
	image       *ttlStore[string]

	ttls       map[StoreType]time.Duration
	now        func() time.Time
	logger     Logger
	registerer prometheus.Registerer
	namespace  string
	metrics    *cacheMetrics
}

func New(fetcher ContentFetcher, opts ...Option) (*Cache, error) {
	c := &Cache{
		fetcher: fetcher,
		ttls: map[StoreType]time.Duration{
			StoreCatalog:     DefaultCatalogTTL,
			StoreDescription: DefaultDescriptionTTL,
			StoreImage:       DefaultImageTTL,
		},
		now:    time.Now,
		logger: logger.L(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.registerer != nil {
		m, err := newCacheMetrics(c.registerer, c.namespace)
		if err != nil {
			return nil, fmt.Errorf("cache.New: register metrics: %w", err)
		}
		c.metrics = m
	}

	c.catalog = newTTLStore[*model.Product](c.ttls[StoreCatalog])
	c.description = newTTLStore[*model.Description](c.ttls[StoreDescription])
	c.image = newTTLStore[string](c.ttls[StoreImage])

	return c, nil
}

// Get returns a fresh value. Expired entries are reported as absent.
// Descriptions are handed out as copies.
func (c *Cache) Get(key string, st StoreType) (any, bool) {
	now := c.now()

	var (
		v  any
		ok bool
	)
	switch st {
	case StoreCatalog:
		v, ok = c.catalog.get(key, now)
	case StoreDescription:
		var d *model.Description
		if d, ok = c.description.get(key, now); ok {
			v = d.Clone()
		}
	case StoreImage:
		v, ok = c.image.get(key, now)
	default:
		return nil, false
	}

	if !ok {
		c.metrics.miss(st)
		return nil, false
	}
	c.metrics.hit(st)
	return v, true
}

// Set stores value with the current time. Mappings are converted into
// entities for the catalog and description stores. It reports false when the
// value does not fit the store.
func (c *Cache) Set(key string, value any, st StoreType) bool {
	now := c.now()

	switch st {
	case StoreCatalog:
		p, err := toProduct(value)
		if err != nil {
			return false
		}
		c.catalog.set(key, p, now)
		c.metrics.set(st, c.catalog.len())
	case StoreDescription:
		d, err := model.DescriptionFrom(value)
		if err != nil {
			return false
		}
		c.description.set(key, d, now)
		c.metrics.set(st, c.description.len())
	case StoreImage:
		url, ok := value.(string)
		if !ok || url == "" {
			return false
		}
		c.image.set(key, url, now)
		c.metrics.set(st, c.image.len())
	default:
		return false
	}

	return true
}

func (c *Cache) Product(businessID string) (*model.Product, bool) {
	v, ok := c.Get(businessID, StoreCatalog)
	if !ok {
		return nil, false
	}
	p, ok := v.(*model.Product)
	return p, ok
}

func (c *Cache) SetProduct(p *model.Product) bool {
	if p == nil {
		return false
	}
	return c.Set(p.BusinessID(), p, StoreCatalog)
}

// GetDescriptionByCID serves a cached description or loads it from the
// content store. Any failure is logged and reported as absent.
func (c *Cache) GetDescriptionByCID(ctx context.Context, cid string) (*model.Description, bool) {
	if !plausibleCID(cid) {
		return nil, false
	}

	if v, ok := c.Get(cid, StoreDescription); ok {
		return v.(*model.Description).Clone(), true
	}

	raw, err := c.fetcher.DownloadJSON(ctx, cid)
	if err != nil {
		c.metrics.fetchFailed(StoreDescription)
		c.logger.Warn(ctx, "download description",
			logger.String("cid", cid),
			logger.ErrorF(err),
		)
		return nil, false
	}

	d, err := decodeDescription(raw)
	if err != nil {
		c.metrics.fetchFailed(StoreDescription)
		c.logger.Error(ctx, "decode description",
			logger.String("cid", cid),
			logger.ErrorF(err),
		)
		return nil, false
	}

	c.description.set(cid, d, c.now())
	c.metrics.set(StoreDescription, c.description.len())

	return d.Clone(), true
}

// GetImageURLByCID serves a cached gateway URL or resolves it.
func (c *Cache) GetImageURLByCID(ctx context.Context, cid string) (string, bool) {
	if !plausibleCID(cid) {
		return "", false
	}

	if v, ok := c.Get(cid, StoreImage); ok {
		return v.(string), true
	}

	url, err := c.fetcher.GatewayURL(ctx, cid)
	if err != nil || url == "" {
		c.metrics.fetchFailed(StoreImage)
		c.logger.Warn(ctx, "resolve image url",
			logger.String("cid", cid),
			logger.ErrorF(errors.Join(err, errIfEmpty(url))),
		)
		return "", false
	}

	c.image.set(cid, url, c.now())
	c.metrics.set(StoreImage, c.image.len())

	return url, true
}

// Invalidate clears the given stores, or all of them when none is named.
func (c *Cache) Invalidate(stores ...StoreType) {
	if len(stores) == 0 {
		stores = StoreTypes()
	}

	for _, st := range stores {
		var n int
		switch st {
		case StoreCatalog:
			n = c.catalog.clear()
		case StoreDescription:
			n = c.description.clear()
		case StoreImage:
			n = c.image.clear()
		default:
			continue
		}
		c.metrics.invalidated(st, n)
	}
}

// Len counts entries physically held by a store, expired ones included.
func (c *Cache) Len(st StoreType) int {
	switch st {
	case StoreCatalog:
		return c.catalog.len()
	case StoreDescription:
		return c.description.len()
	case StoreImage:
		return c.image.len()
	default:
		return 0
	}
}

func toProduct(v any) (*model.Product, error) {
	switch p := v.(type) {
	case *model.Product:
		if p == nil {
			return nil, errors.New("nil product")
		}
		return p, nil
	case map[string]any:
		return model.ProductFromMapping(p)
	default:
		return nil, fmt.Errorf("unexpected product value %T", v)
	}
}

// decodeDescription accepts what the content store may hand back: an entity,
// a mapping, or JSON text of a mapping.
func decodeDescription(raw any) (*model.Description, error) {
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("%w: empty", errMalformedPayload)
	case string:
		return decodeDescriptionJSON([]byte(v))
	case []byte:
		return decodeDescriptionJSON(v)
	case *model.Description, model.Description, map[string]any:
		return model.DescriptionFrom(v)
	default:
		return nil, fmt.Errorf("%w: unexpected type %T", errMalformedPayload, raw)
	}
}

func decodeDescriptionJSON(data []byte) (*model.Description, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedPayload, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: null document", errMalformedPayload)
	}
	return model.DescriptionFromMapping(m)
}

// plausibleCID rejects empty keys and keys that could not name an object.
// Full CID validation happens when entities are built.
func plausibleCID(cid string) bool {
	if cid == "" {
		return false
	}
	for _, r := range cid {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

func errIfEmpty(url string) error {
	if url == "" {
		return errors.New("empty gateway url")
	}
	return nil
}
