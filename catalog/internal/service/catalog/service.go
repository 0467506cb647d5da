package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/you-humble/biomarket/catalog/internal/cache"
	"github.com/you-humble/biomarket/catalog/internal/model"
	"github.com/you-humble/biomarket/platform/logger"
)

const defaultEnrichLimit = 8

type ProductRepository interface {
	ProductByBusinessID(ctx context.Context, businessID string) (*model.Product, error)
	List(ctx context.Context, filter model.ProductsFilter) ([]*model.Product, error)
	Upsert(ctx context.Context, p *model.Product) error
}

type Cache interface {
	Product(businessID string) (*model.Product, bool)
	SetProduct(p *model.Product) bool
	GetDescriptionByCID(ctx context.Context, cid string) (*model.Description, bool)
	GetImageURLByCID(ctx context.Context, cid string) (string, bool)
	Invalidate(stores ...cache.StoreType)
}

type ContentStore interface {
	DownloadJSON(ctx context.Context, cid string) (any, error)
	UploadFile(ctx context.Context, name string, data []byte) (string, error)
}

type PublishedSender interface {
	SendProductPublished(ctx context.Context, event model.ProductPublished) error
}

type service struct {
	repo           ProductRepository
	cache          Cache
	store          ContentStore
	sender         PublishedSender
	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
	enrichLimit    int
	now            func() time.Time
}

func NewCatalogService(
	repository ProductRepository,
	catalogCache Cache,
	store ContentStore,
	sender PublishedSender,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
	enrichLimit int,
) *service {
	if enrichLimit <= 0 {
		enrichLimit = defaultEnrichLimit
	}

	return &service{
		repo:           repository,
		cache:          catalogCache,
		store:          store,
		sender:         sender,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
		enrichLimit:    enrichLimit,
		now:            time.Now,
	}
}

func (svc *service) Product(ctx context.Context, businessID string) (*model.Product, error) {
	const op string = "catalog.service.Product"
	log := logger.With(logger.String("business_id", businessID))

	if p, ok := svc.cache.Product(businessID); ok {
		return p, nil
	}

	rdbCtx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	p, err := svc.repo.ProductByBusinessID(rdbCtx, businessID)
	if err != nil {
		log.Error(ctx, "repository product by business id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	enriched := svc.enrich(ctx, p)
	svc.cache.SetProduct(enriched)

	return enriched, nil
}

func (svc *service) ListProducts(ctx context.Context, filter model.ProductsFilter) ([]*model.Product, error) {
	const op string = "catalog.service.ListProducts"
	log := logger.With(
		logger.Strings("categories", filter.Categories),
		logger.Strings("forms", filter.Forms),
		logger.Strings("species", filter.Species),
	)

	rdbCtx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	products, err := svc.repo.List(rdbCtx, filter)
	if err != nil {
		log.Error(ctx, "repository list products", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*model.Product, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(svc.enrichLimit)
	for i, p := range products {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if cached, ok := svc.cache.Product(p.BusinessID()); ok {
				out[i] = cached
				return nil
			}

			out[i] = svc.enrich(gctx, p)
			svc.cache.SetProduct(out[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error(ctx, "enrich products", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Ingest validates a product mapping, indexes it and refreshes its cache entry.
func (svc *service) Ingest(ctx context.Context, mapping map[string]any) (*model.Product, error) {
	const op string = "catalog.service.Ingest"

	p, err := model.ProductFromMapping(mapping)
	if err != nil {
		logger.Warn(ctx, "invalid product mapping", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log := logger.With(
		logger.String("business_id", p.BusinessID()),
		logger.String("cid", p.CID()),
	)

	if !p.ValidateProportions() {
		log.Warn(ctx, "inconsistent proportions",
			logger.String("total", p.TotalProportion().String()),
		)
		return nil, fmt.Errorf("%s: %w", op, model.ErrInconsistentProportions)
	}

	wdbCtx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	if err := svc.repo.Upsert(wdbCtx, p); err != nil {
		log.Error(ctx, "repository upsert product", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	enriched := svc.enrich(ctx, p)
	svc.cache.SetProduct(enriched)

	log.Info(ctx, "product ingested")

	return enriched, nil
}

// Publish uploads the product's source metadata and announces the resulting CID.
func (svc *service) Publish(ctx context.Context, p *model.Product) (string, error) {
	const op string = "catalog.service.Publish"

	if p == nil {
		return "", fmt.Errorf("%s: %w", op, model.ErrValidation)
	}
	log := logger.With(logger.String("business_id", p.BusinessID()))

	if !p.ValidateProportions() {
		log.Warn(ctx, "inconsistent proportions")
		return "", fmt.Errorf("%s: %w", op, model.ErrInconsistentProportions)
	}

	// на content store уходят только исходные поля, без обогащения
	data, err := json.Marshal(p.Source())
	if err != nil {
		log.Error(ctx, "marshal product", logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	cid, err := svc.store.UploadFile(ctx, p.BusinessID()+".json", data)
	if err != nil {
		log.Error(ctx, "content store upload", logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w: %w", op, model.ErrBadGateway, err)
	}

	event := model.ProductPublished{
		EventID:     uuid.New(),
		BusinessID:  p.BusinessID(),
		CID:         cid,
		PublishedAt: svc.now().UTC(),
	}
	if err := svc.sender.SendProductPublished(ctx, event); err != nil {
		log.Error(ctx, "send product published",
			logger.String("cid", cid),
			logger.ErrorF(err),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "product published",
		logger.String("cid", cid),
		logger.String("event_id", event.EventID.String()),
	)

	return cid, nil
}

// HandlePublished fetches the announced metadata and ingests it under the
// announced CID.
func (svc *service) HandlePublished(ctx context.Context, event model.ProductPublished) error {
	const op string = "catalog.service.HandlePublished"
	log := logger.With(
		logger.String("event_id", event.EventID.String()),
		logger.String("business_id", event.BusinessID),
		logger.String("cid", event.CID),
	)

	raw, err := svc.store.DownloadJSON(ctx, event.CID)
	if err != nil {
		log.Error(ctx, "content store download", logger.ErrorF(err))
		return fmt.Errorf("%s: %w: %w", op, model.ErrBadGateway, err)
	}

	mapping, err := metadataMapping(raw)
	if err != nil {
		log.Warn(ctx, "unexpected metadata document", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if id, _ := mapping["business_id"].(string); id != event.BusinessID {
		log.Warn(ctx, "business id mismatch", logger.String("document_business_id", id))
		return fmt.Errorf("%s: %w: document belongs to %q", op, model.ErrValidation, id)
	}
	mapping["cid"] = event.CID

	if _, err := svc.Ingest(ctx, mapping); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (svc *service) InvalidateCache(ctx context.Context, stores ...cache.StoreType) {
	svc.cache.Invalidate(stores...)
	logger.Info(ctx, "cache invalidated", logger.Int("stores", len(stores)))
}

// enrich never fails: unresolved descriptions or images leave the product as is.
func (svc *service) enrich(ctx context.Context, p *model.Product) *model.Product {
	descriptions := make(map[string]*model.Description)
	for _, c := range p.OrganicComponents() {
		cid := c.DescriptionCID()
		if cid == "" {
			continue
		}
		if _, seen := descriptions[cid]; seen {
			continue
		}
		if d, ok := svc.cache.GetDescriptionByCID(ctx, cid); ok {
			descriptions[cid] = d
		}
	}

	var imageURL string
	if cid := p.CoverImageCID(); cid != "" {
		imageURL, _ = svc.cache.GetImageURLByCID(ctx, cid)
	}

	return p.Enriched(descriptions, imageURL)
}

func metadataMapping(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case string:
		dec := json.NewDecoder(strings.NewReader(v))
		dec.UseNumber()

		var m map[string]any
		if err := dec.Decode(&m); err != nil || m == nil {
			return nil, fmt.Errorf("%w: metadata is not a json object", model.ErrValidation)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: metadata is %T", model.ErrValidation, raw)
	}
}
