package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/biomarket/catalog/internal/cache"
	"github.com/you-humble/biomarket/catalog/internal/converter"
	"github.com/you-humble/biomarket/catalog/internal/model"
	"github.com/you-humble/biomarket/platform/logger"
)

const maxBodyBytes = 1 << 20

type CatalogService interface {
	Product(ctx context.Context, businessID string) (*model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductsFilter) ([]*model.Product, error)
	Ingest(ctx context.Context, mapping map[string]any) (*model.Product, error)
	Publish(ctx context.Context, p *model.Product) (string, error)
	InvalidateCache(ctx context.Context, stores ...cache.StoreType)
}

type handler struct {
	svc CatalogService
}

func NewCatalogHandler(service CatalogService) *handler {
	return &handler{svc: service}
}

// Routes mounts the v1 API on r.
func (h *handler) Routes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.IngestProduct)
		r.Get("/{business_id}", h.GetProduct)
		r.Post("/{business_id}/publish", h.PublishProduct)
	})
	r.Post("/cache/invalidate", h.InvalidateCache)
}

func (h *handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Product(r.Context(), chi.URLParam(r, "business_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.ProductToResponse(p))
}

func (h *handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context(), converter.ProductsFilterFromQuery(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.ProductsToResponse(products))
}

func (h *handler) IngestProduct(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()

	var mapping map[string]any
	if err := dec.Decode(&mapping); err != nil || mapping == nil {
		writeJSON(w, r, http.StatusBadRequest, converter.ErrorResponse{ // 400
			Code:    http.StatusBadRequest,
			Message: "request body must be a json object",
		})
		return
	}

	p, err := h.svc.Ingest(r.Context(), mapping)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, converter.ProductToResponse(p))
}

func (h *handler) PublishProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.svc.Product(ctx, chi.URLParam(r, "business_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	cid, err := h.svc.Publish(ctx, p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusAccepted, converter.PublishResponse{BusinessID: p.BusinessID(), CID: cid})
}

func (h *handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	var stores []cache.StoreType
	for _, s := range r.URL.Query()["store"] {
		st, err := cache.ParseStoreType(s)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, converter.ErrorResponse{ // 400
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			return
		}
		stores = append(stores, st)
	}

	h.svc.InvalidateCache(r.Context(), stores...)
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "catalog request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
	}

	writeJSON(w, r, status, converter.ErrorToResponse(status, err))
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest // 400
	case errors.Is(err, model.ErrProductNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, model.ErrInconsistentProportions):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, model.ErrBadGateway):
		return http.StatusBadGateway // 502
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(r.Context(), "encode response", logger.ErrorF(err))
	}
}
