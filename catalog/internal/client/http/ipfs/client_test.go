package ipfsclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/biomarket/catalog/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return NewClient(Config{GatewayURL: srv.URL + "/", APIURL: srv.URL, Timeout: time.Second}, nil)
}

func TestDownloadJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		want    any
		wantErr error
	}{
		{name: "object", status: http.StatusOK, body: `{"title":"Reishi"}`, want: map[string]any{"title": "Reishi"}},
		{name: "string", status: http.StatusOK, body: `"{\"title\":\"Reishi\"}"`, want: `{"title":"Reishi"}`},
		{name: "null", status: http.StatusOK, body: `null`, want: nil},
		{name: "array", status: http.StatusOK, body: `[1,2]`, wantErr: ErrUnexpectedDocument},
		{name: "not found", status: http.StatusNotFound, body: `not found`, wantErr: model.ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/ipfs/QmDoc", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := c.DownloadJSON(context.Background(), "QmDoc")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDownloadJSONKeepsNumericPrecision(t *testing.T) {
	t.Parallel()

	const doc = `{
		"business_id": "chaga-tincture",
		"blockchain_id": 9007199254740993,
		"status": 1,
		"title": "Chaga tincture",
		"cover_image_url": "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
		"species": ["Inonotus obliquus"],
		"organic_components": [{
			"biounit_id": "chaga",
			"description_cid": "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
			"proportion": "100%"
		}],
		"prices": [
			{"price": 12345678901234567.89, "currency": "EUR", "weight": 0.123456789012345678, "weight_unit": "kg"},
			{"price": 0.123456789012345678, "currency": "BTC"}
		]
	}`

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, doc)
	})

	raw, err := c.DownloadJSON(context.Background(), "QmDoc")
	require.NoError(t, err)
	m, ok := raw.(map[string]any)
	require.True(t, ok)

	p, err := model.ProductFromMapping(m)
	require.NoError(t, err)

	assert.Equal(t, int64(9007199254740993), p.BlockchainID())
	prices := p.Prices()
	require.Len(t, prices, 2)
	assert.Equal(t, "12345678901234567.89", prices[0].Price().String())
	weight, ok := prices[0].Weight()
	require.True(t, ok)
	assert.Equal(t, "0.123456789012345678", weight.String())
	assert.Equal(t, "0.123456789012345678", prices[1].Price().String())
}

func TestDownloadJSONInvalidBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "{broken")
	})

	_, err := c.DownloadJSON(context.Background(), "QmDoc")
	assert.ErrorContains(t, err, "decode")

	_, err = c.DownloadJSON(context.Background(), "")
	assert.Error(t, err)
}

func TestGatewayURL(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{GatewayURL: "https://ipfs.io/"}, nil)

	got, err := c.GatewayURL(context.Background(), "QmImg")
	require.NoError(t, err)
	assert.Equal(t, "https://ipfs.io/ipfs/QmImg", got)

	_, err = c.GatewayURL(context.Background(), "")
	assert.Error(t, err)
}

func TestUploadFile(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v0/add", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("pin"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "product.json", header.Filename)
		assert.JSONEq(t, `{"title":"x"}`, string(data))

		_, _ = io.WriteString(w, `{"Name":"product.json","Hash":"QmNew","Size":"13"}`)
	})

	cid, err := c.UploadFile(context.Background(), "product.json", []byte(`{"title":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "QmNew", cid)
}

func TestUploadFileErrors(t *testing.T) {
	t.Parallel()

	failing := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "node offline", http.StatusServiceUnavailable)
	})
	_, err := failing.UploadFile(context.Background(), "a.json", []byte("{}"))
	assert.ErrorIs(t, err, model.ErrBadGateway)
	assert.ErrorContains(t, err, "node offline")

	noHash := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"Name":"a.json"}`)
	})
	_, err = noHash.UploadFile(context.Background(), "a.json", []byte("{}"))
	assert.ErrorContains(t, err, "empty hash")
}
