package invask

import (
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

// Adapter pulls the supplier's full stock table through offset
// pagination. It implements syncer.SourceAdapter.
type Adapter struct {
	cfg     Config
	http    *http.Client
	decoder syncer.LabelDecoder
	logger  *zap.Logger
}

// New creates an invask adapter.
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
func (a *Adapter) Name() string { return "invask" }

type listResponse struct {
	Total    int       `json:"total"`
	Products []product `json:"products"`
}

// product tolerates the API's loose typing: articles and quantity labels
// arrive as either strings or numbers, prices may be null.
type product struct {
	CatNumber     looseScalar `json:"cat_number"`
	QuantityLabel looseScalar `json:"quantityLabel"`
	RegularPrice  looseScalar `json:"regular_price"`
}

// looseScalar decodes a JSON string, number, or null into its textual
// form.
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

// Fetch pages through the stock listing until the accumulated count
// reaches the reported total. A page that adds no rows while the total is
// still ahead means the server stopped making progress; that fails the
// run instead of looping forever.
func (a *Adapter) Fetch(ctx context.Context) ([]syncer.SupplierRecord, error) {
	first, err := a.fetchPage(ctx, 0)
	if err != nil {
		return nil, err
	}
	total := first.Total
	products := first.Products

	for total > len(products) {
		page, err := a.fetchPage(ctx, len(products))
		if err != nil {
			return nil, err
		}
		if len(page.Products) == 0 {
			return nil, &syncer.SourceError{
				Source: a.Name(),
				Err:    fmt.Errorf("empty page at offset %d with %d of %d rows fetched", len(products), len(products), total),
			}
		}
		total = page.Total
		products = append(products, page.Products...)
	}

	records := make([]syncer.SupplierRecord, 0, len(products))
	undecodable := 0
	for _, p := range products {
		qty, err := a.decoder.Decode(p.QuantityLabel.String())
		if err != nil {
			// Rows with labels outside the known encodings carry no usable
			// stock signal; drop them rather than failing the whole feed.
			undecodable++
			a.logger.Warn("dropping row with undecodable quantity",
				zap.String("article", p.CatNumber.String()),
				zap.Error(err),
			)
			continue
		}
		rec := syncer.SupplierRecord{
			ExternalID: p.CatNumber.String(),
			Quantity:   qty,
		}
		if p.RegularPrice.String() != "" {
			price, err := decimal.NewFromString(p.RegularPrice.String())
			if err != nil {
				return nil, &syncer.SourceError{
					Source: a.Name(),
					Err:    fmt.Errorf("article %s: price %q: %w", p.CatNumber, p.RegularPrice, err),
				}
			}
			rec.Price = price
			rec.HasPrice = true
		}
		records = append(records, rec)
	}

	a.logger.Info("supplier table fetched",
		zap.String("source", a.Name()),
		zap.Int("rows", len(records)),
		zap.Int("undecodable", undecodable),
	)
	return records, nil
}

func (a *Adapter) fetchPage(ctx context.Context, offset int) (*listResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.URL, nil)
	if err != nil {
		return nil, &syncer.SourceError{Source: a.Name(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+a.cfg.Token)
	if offset > 0 {
		q := req.URL.Query()
		q.Set("offset", fmt.Sprintf("%d", offset))
		req.URL.RawQuery = q.Encode()
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, &syncer.SourceError{Source: a.Name(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &syncer.SourceError{Source: a.Name(), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &syncer.SourceError{
			Source: a.Name(),
			Err:    fmt.Errorf("status %s: %s", resp.Status, syncer.Excerpt(raw)),
		}
	}

	var page listResponse
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, &syncer.SourceError{
			Source: a.Name(),
			Err:    fmt.Errorf("decoding page at offset %d: %w: %s", offset, err, syncer.Excerpt(raw)),
		}
	}
	return &page, nil
}
