package rusklimat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"market-sync/core/syncer"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Adapter pulls the supplier's stock report through the JWT-gated dealer
// API. It implements syncer.SourceAdapter.
type Adapter struct {
	cfg     Config
	http    *http.Client
	decoder syncer.LabelDecoder
	logger  *zap.Logger
}

// New creates a rusklimat adapter.
func New(cfg Config, logger *zap.Logger) *Adapter {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	return &Adapter{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		decoder: syncer.LabelDecoder{
			Ceiling:           cfg.QuantityCeiling,
			CeilingLabels:     syncer.SplitLabels(cfg.CeilingLabels),
			UnavailableValues: syncer.SplitLabels(cfg.UnavailableValues),
		},
		logger: logger,
	}
}

// Name implements syncer.SourceAdapter.
func (a *Adapter) Name() string { return "rusklimat" }

// The report is requested with a fixed column set; sorting keeps page
// boundaries stable between requests.
var reportQuery = map[string]any{
	"columns": []string{"nsCode", "vendorCode", "internetPrice", "remains"},
	"filter":  map[string]any{},
	"sort":    map[string]string{"nsCode": "asc"},
}

type authResponse struct {
	Code int `json:"code"`
	Data struct {
		JWTToken string `json:"jwtToken"`
	} `json:"data"`
}

type keyResponse struct {
	RequestKey string `json:"requestKey"`
}

type reportResponse struct {
	TotalCount     int         `json:"totalCount"`
	TotalPageCount int         `json:"totalPageCount"`
	Data           []reportRow `json:"data"`
}

type reportRow struct {
	NsCode        string       `json:"nsCode"`
	InternetPrice *json.Number `json:"internetPrice"`
	Remains       remains      `json:"remains"`
}

type remains struct {
	Total      looseScalar            `json:"total"`
	Warehouses map[string]looseScalar `json:"warehouses"`
}

// looseScalar decodes a JSON string, number, or null into its textual
// form; remains values mix counts and free-text labels.
type looseScalar string

func (s *looseScalar) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseScalar(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = looseScalar(num.String())
	return nil
}

func (s looseScalar) String() string { return string(s) }

// Fetch logs in, exchanges the JWT for a request key, then pages through
// the stock report. Rows without a published internet price carry no
// usable signal for either pass and are dropped, matching the dealer
// portal's own export behavior.
func (a *Adapter) Fetch(ctx context.Context) ([]syncer.SupplierRecord, error) {
	jwt, err := a.login(ctx)
	if err != nil {
		return nil, err
	}
	key, err := a.requestKey(ctx, jwt)
	if err != nil {
		return nil, err
	}

	first, err := a.fetchPage(ctx, jwt, key, 1)
	if err != nil {
		return nil, err
	}
	rows := first.Data
	for page := 2; page <= first.TotalPageCount; page++ {
		next, err := a.fetchPage(ctx, jwt, key, page)
		if err != nil {
			return nil, err
		}
		rows = append(rows, next.Data...)
	}

	records := make([]syncer.SupplierRecord, 0, len(rows))
	skippedNoPrice := 0
	for _, row := range rows {
		if row.InternetPrice == nil {
			skippedNoPrice++
			continue
		}
		price, err := decimal.NewFromString(row.InternetPrice.String())
		if err != nil {
			return nil, &syncer.SourceError{
				Source: a.Name(),
				Err:    fmt.Errorf("article %s: price %q: %w", row.NsCode, *row.InternetPrice, err),
			}
		}
		qty, err := a.quantity(row.Remains)
		if err != nil {
			return nil, &syncer.SourceError{
				Source: a.Name(),
				Err:    fmt.Errorf("article %s: %w", row.NsCode, err),
			}
		}
		records = append(records, syncer.SupplierRecord{
			ExternalID: row.NsCode,
			Quantity:   qty,
			Price:      price.Round(0),
			HasPrice:   true,
		})
	}

	a.logger.Info("supplier report fetched",
		zap.String("source", a.Name()),
		zap.Int("rows", len(records)),
		zap.Int("dropped_no_price", skippedNoPrice),
	)
	return records, nil
}

// quantity resolves the publishable count for the configured warehouse.
// A zero-decoding report total (e.g. a pending-delivery label) overrides
// whatever the warehouse column says.
func (a *Adapter) quantity(r remains) (int, error) {
	if r.Total.String() != "" {
		total, err := a.decoder.Decode(r.Total.String())
		if err != nil {
			return 0, fmt.Errorf("remains total: %w", err)
		}
		if total == 0 {
			return 0, nil
		}
	}

	raw, ok := r.Warehouses[a.cfg.Warehouse]
	if !ok || raw.String() == "" {
		return 0, nil
	}
	qty, err := a.decoder.Decode(raw.String())
	if err != nil {
		return 0, fmt.Errorf("warehouse %q remains: %w", a.cfg.Warehouse, err)
	}
	return qty, nil
}

func (a *Adapter) login(ctx context.Context) (string, error) {
	body := map[string]string{"login": a.cfg.Login, "password": a.cfg.Password}
	var resp authResponse
	if err := a.postJSON(ctx, a.cfg.AuthURL, "", body, &resp); err != nil {
		return "", err
	}
	if resp.Code != http.StatusOK || resp.Data.JWTToken == "" {
		return "", &syncer.SourceError{
			Source: a.Name(),
			Err:    fmt.Errorf("login rejected with code %d", resp.Code),
		}
	}
	return resp.Data.JWTToken, nil
}

func (a *Adapter) requestKey(ctx context.Context, jwt string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.KeyURL, nil)
	if err != nil {
		return "", &syncer.SourceError{Source: a.Name(), Err: err}
	}
	req.Header.Set("Authorization", jwt)

	var resp keyResponse
	if err := a.doJSON(req, &resp); err != nil {
		return "", err
	}
	if resp.RequestKey == "" {
		return "", &syncer.SourceError{
			Source: a.Name(),
			Err:    fmt.Errorf("server returned no request key"),
		}
	}
	return resp.RequestKey, nil
}

func (a *Adapter) fetchPage(ctx context.Context, jwt, key string, page int) (*reportResponse, error) {
	url := fmt.Sprintf("%s%s/?pageSize=%d&page=%d", a.cfg.DataURL, key, a.cfg.PageSize, page)
	var resp reportResponse
	if err := a.postJSON(ctx, url, jwt, reportQuery, &resp); err != nil {
		return nil, err
	}
	if resp.TotalCount == 0 {
		return nil, &syncer.SourceError{
			Source: a.Name(),
			Err:    fmt.Errorf("report page %d came back empty", page),
		}
	}
	return &resp, nil
}

func (a *Adapter) postJSON(ctx context.Context, url, jwt string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &syncer.SourceError{Source: a.Name(), Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &syncer.SourceError{Source: a.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if jwt != "" {
		req.Header.Set("Authorization", jwt)
	}
	return a.doJSON(req, out)
}

func (a *Adapter) doJSON(req *http.Request, out any) error {
	resp, err := a.http.Do(req)
	if err != nil {
		return &syncer.SourceError{Source: a.Name(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &syncer.SourceError{Source: a.Name(), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &syncer.SourceError{
			Source: a.Name(),
			Err:    fmt.Errorf("%s: status %s: %s", req.URL.Path, resp.Status, syncer.Excerpt(raw)),
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &syncer.SourceError{
			Source: a.Name(),
			Err:    fmt.Errorf("%s: decoding response: %w: %s", req.URL.Path, err, syncer.Excerpt(raw)),
		}
	}
	return nil
}
