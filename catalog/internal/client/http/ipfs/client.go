package ipfsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/you-humble/biomarket/catalog/internal/model"
)

const maxDocumentSize = 4 << 20

var ErrUnexpectedDocument = errors.New("unexpected json document")

type Config struct {
	GatewayURL string
	APIURL     string
	Timeout    time.Duration
}

type client struct {
	http    *http.Client
	gateway string
	api     string
}

func NewClient(cfg Config, httpClient *http.Client) *client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &client{
		http:    httpClient,
		gateway: strings.TrimRight(cfg.GatewayURL, "/"),
		api:     strings.TrimRight(cfg.APIURL, "/"),
	}
}

// DownloadJSON fetches a document through the gateway. The result is a
// map[string]any for objects, a string for JSON strings, or nil for null.
func (c *client) DownloadJSON(ctx context.Context, cid string) (any, error) {
	const op = "ipfs.client.DownloadJSON"

	if cid == "" {
		return nil, fmt.Errorf("%s: empty cid", op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.objectURL(cid), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, model.ErrBadGateway, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: status %d", op, model.ErrBadGateway, resp.StatusCode)
	}

	// числа остаются json.Number до перевода в decimal
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentSize))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	switch doc.(type) {
	case map[string]any, string, nil:
		return doc, nil
	default:
		return nil, fmt.Errorf("%s: %w: %T", op, ErrUnexpectedDocument, doc)
	}
}

func (c *client) GatewayURL(_ context.Context, cid string) (string, error) {
	if cid == "" {
		return "", errors.New("ipfs.client.GatewayURL: empty cid")
	}
	return c.objectURL(cid), nil
}

type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// UploadFile adds data to the node and pins it. It returns the new CID.
func (c *client) UploadFile(ctx context.Context, name string, data []byte) (string, error) {
	const op = "ipfs.client.UploadFile"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	endpoint := c.api + "/api/v0/add?" + url.Values{"pin": {"true"}, "cid-version": {"0"}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, model.ErrBadGateway, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%s: %w: status %d: %s", op, model.ErrBadGateway, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out addResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: decode: %w", op, err)
	}
	if out.Hash == "" {
		return "", fmt.Errorf("%s: empty hash in response", op)
	}

	return out.Hash, nil
}

func (c *client) objectURL(cid string) string {
	return c.gateway + "/ipfs/" + url.PathEscape(cid)
}
