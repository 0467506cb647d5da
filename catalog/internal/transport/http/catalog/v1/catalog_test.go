package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/biomarket/catalog/internal/cache"
	"github.com/you-humble/biomarket/catalog/internal/model"
)

const testCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Product(ctx context.Context, businessID string) (*model.Product, error) {
	args := m.Called(ctx, businessID)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *serviceMock) ListProducts(ctx context.Context, filter model.ProductsFilter) ([]*model.Product, error) {
	args := m.Called(ctx, filter)
	ps, _ := args.Get(0).([]*model.Product)
	return ps, args.Error(1)
}

func (m *serviceMock) Ingest(ctx context.Context, mapping map[string]any) (*model.Product, error) {
	args := m.Called(ctx, mapping)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *serviceMock) Publish(ctx context.Context, p *model.Product) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *serviceMock) InvalidateCache(ctx context.Context, stores ...cache.StoreType) {
	m.Called(ctx, stores)
}

func newProduct(t *testing.T) *model.Product {
	t.Helper()

	c, err := model.NewOrganicComponent(model.ComponentParams{
		BiounitID: "turkey_tail", DescriptionCID: testCID, Proportion: "100%",
	})
	require.NoError(t, err)

	eur, err := model.NewPriceInfo(model.PriceParams{
		Price: "12.5", Currency: "EUR", Weight: 100, WeightUnit: "g", Form: "capsules",
	})
	require.NoError(t, err)
	usd, err := model.NewPriceInfo(model.PriceParams{Price: "9.99", Currency: "USD"})
	require.NoError(t, err)

	p, err := model.NewProduct(model.ProductParams{
		BusinessID:        gofakeit.UUID(),
		Status:            model.ProductStatusActive,
		CID:               testCID,
		Title:             gofakeit.ProductName(),
		OrganicComponents: []*model.OrganicComponent{c},
		CoverImageCID:     testCID,
		Species:           []string{"Trametes versicolor"},
		Prices:            []*model.PriceInfo{eur, usd},
	})
	require.NoError(t, err)
	return p
}

func newServer(svc CatalogService) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", NewCatalogHandler(svc).Routes)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	p := newProduct(t)

	tests := []struct {
		name       string
		setup      func(svc *serviceMock)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name: "ok with formatted prices and min price",
			setup: func(svc *serviceMock) {
				svc.On("Product", mock.Anything, p.BusinessID()).Return(p, nil).Once()
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, p.BusinessID(), body["business_id"])
				assert.Equal(t, "9.99", body["min_price"])

				prices, ok := body["prices"].([]any)
				require.True(t, ok)
				require.Len(t, prices, 2)
				assert.Equal(t, "€12.50 / 100g (capsules)", prices[0].(map[string]any)["formatted"])
			},
		},
		{
			name: "not found",
			setup: func(svc *serviceMock) {
				svc.On("Product", mock.Anything, p.BusinessID()).
					Return(nil, fmt.Errorf("catalog.service.Product: %w", model.ErrProductNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, body map[string]any) {
				assert.EqualValues(t, http.StatusNotFound, body["code"])
			},
		},
		{
			name: "unexpected error",
			setup: func(svc *serviceMock) {
				svc.On("Product", mock.Anything, p.BusinessID()).Return(nil, errors.New("boom")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			check:      func(*testing.T, map[string]any) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &serviceMock{}
			tt.setup(svc)

			rec, body := do(t, newServer(svc), http.MethodGet, "/api/v1/products/"+p.BusinessID(), "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			tt.check(t, body)
			svc.AssertExpectations(t)
		})
	}
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{}
	p := newProduct(t)
	want := model.ProductsFilter{
		Categories: []string{"mushrooms", "adaptogens"},
		Forms:      []string{"powder"},
		OnlyActive: true,
	}
	svc.On("ListProducts", mock.Anything, want).Return([]*model.Product{p}, nil).Once()

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?category=mushrooms,adaptogens&category=mushrooms&form=powder&active=true", nil)
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, p.BusinessID(), body[0]["business_id"])
	svc.AssertExpectations(t)
}

func TestIngestProduct(t *testing.T) {
	t.Parallel()

	p := newProduct(t)

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		svc := &serviceMock{}
		svc.On("Ingest", mock.Anything, mock.MatchedBy(func(m map[string]any) bool {
			return m["business_id"] == p.BusinessID()
		})).Return(p, nil).Once()

		raw, err := json.Marshal(p)
		require.NoError(t, err)

		rec, body := do(t, newServer(svc), http.MethodPost, "/api/v1/products", string(raw))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, p.BusinessID(), body["business_id"])
	})

	t.Run("numbers keep full precision", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		svc := &serviceMock{}
		svc.On("Ingest", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(map[string]any) }).
			Return(p, nil).Once()

		body := `{"business_id":"chaga","blockchain_id":9007199254740993,` +
			`"prices":[{"price":12345678901234567.89,"currency":"EUR"}]}`
		rec, _ := do(t, newServer(svc), http.MethodPost, "/api/v1/products", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		assert.Equal(t, json.Number("9007199254740993"), got["blockchain_id"])
		prices := got["prices"].([]any)
		assert.Equal(t, json.Number("12345678901234567.89"), prices[0].(map[string]any)["price"])
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		svc := &serviceMock{}
		rec, _ := do(t, newServer(svc), http.MethodPost, "/api/v1/products", "[1,2")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
	})

	t.Run("validation errors are listed per field", func(t *testing.T) {
		t.Parallel()

		_, verr := model.NewProduct(model.ProductParams{})
		require.Error(t, verr)

		svc := &serviceMock{}
		svc.On("Ingest", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("catalog.service.Ingest: %w", verr)).Once()

		rec, body := do(t, newServer(svc), http.MethodPost, "/api/v1/products", `{"title":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		fields, ok := body["fields"].([]any)
		require.True(t, ok)
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.(map[string]any)["field"].(string))
		}
		assert.Contains(t, names, "business_id")
		assert.Contains(t, names, "title")
	})

	t.Run("inconsistent proportions", func(t *testing.T) {
		t.Parallel()

		svc := &serviceMock{}
		svc.On("Ingest", mock.Anything, mock.Anything).Return(nil, model.ErrInconsistentProportions).Once()

		rec, _ := do(t, newServer(svc), http.MethodPost, "/api/v1/products", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestPublishProduct(t *testing.T) {
	t.Parallel()

	p := newProduct(t)

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		svc := &serviceMock{}
		svc.On("Product", mock.Anything, p.BusinessID()).Return(p, nil).Once()
		svc.On("Publish", mock.Anything, p).Return(testCID, nil).Once()

		rec, body := do(t, newServer(svc), http.MethodPost, "/api/v1/products/"+p.BusinessID()+"/publish", "")
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, testCID, body["cid"])
		svc.AssertExpectations(t)
	})

	t.Run("content store down", func(t *testing.T) {
		t.Parallel()

		svc := &serviceMock{}
		svc.On("Product", mock.Anything, p.BusinessID()).Return(p, nil).Once()
		svc.On("Publish", mock.Anything, p).Return("", model.ErrBadGateway).Once()

		rec, _ := do(t, newServer(svc), http.MethodPost, "/api/v1/products/"+p.BusinessID()+"/publish", "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestInvalidateCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		want       []cache.StoreType
		wantStatus int
	}{
		{name: "all stores", query: "", want: nil, wantStatus: http.StatusNoContent},
		{
			name:       "named stores",
			query:      "?store=description&store=IMAGE",
			want:       []cache.StoreType{cache.StoreDescription, cache.StoreImage},
			wantStatus: http.StatusNoContent,
		},
		{name: "unknown store", query: "?store=blobs", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &serviceMock{}
			if tt.wantStatus == http.StatusNoContent {
				svc.On("InvalidateCache", mock.Anything, tt.want).Once()
			}

			rec, _ := do(t, newServer(svc), http.MethodPost, "/api/v1/cache/invalidate"+tt.query, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
