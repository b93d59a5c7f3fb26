package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"market-sync/core/syncer"

	"go.uber.org/zap"
)

// Endpoint paths on the seller API.
const (
	pathCatalogList = "/v1/catalog/list"
	pathStockUpdate = "/v1/stocks/update"
	pathPriceUpdate = "/v1/prices/update"
)

// Client talks to the marketplace seller API. It is stateless across runs
// and safe to share between sequential runs of the same connector.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a marketplace client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 100
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger: logger,
	}
}

// postJSON issues one authenticated POST and decodes the response into
// out. Any non-2xx status or undecodable body yields an UpstreamError
// tagged with the given stage.
func (c *Client) postJSON(ctx context.Context, stage, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Id", c.cfg.ClientID)
	req.Header.Set("Api-Key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return &syncer.UpstreamError{Stage: stage, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &syncer.UpstreamError{Stage: stage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &syncer.UpstreamError{
			Stage:  stage,
			Detail: fmt.Sprintf("status %s: %s", resp.Status, syncer.Excerpt(raw)),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &syncer.UpstreamError{
			Stage:  stage,
			Detail: syncer.Excerpt(raw),
			Err:    err,
		}
	}
	return nil
}
