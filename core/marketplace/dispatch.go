package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"market-sync/core/syncer"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type stockEntry struct {
	OfferID     string `json:"offer_id"`
	ProductID   int64  `json:"product_id"`
	Stock       int    `json:"stock"`
	WarehouseID int64  `json:"warehouse_id"`
}

type stockUpdateRequest struct {
	Stocks []stockEntry `json:"stocks"`
}

type priceEntry struct {
	OfferID   string `json:"offer_id"`
	ProductID int64  `json:"product_id"`
	OldPrice  string `json:"old_price"`
	Price     string `json:"price"`
}

type priceUpdateRequest struct {
	Prices []priceEntry `json:"prices"`
}

// throttle paces batch dispatch once a pass crosses the rate-limit
// threshold.
type throttle interface {
	Wait(ctx context.Context) error
}

type noThrottle struct{}

func (noThrottle) Wait(context.Context) error { return nil }

// newThrottle returns the pacing policy for a pass of the given total
// size. Below the threshold batches go out back to back; above it a
// limiter enforces the configured delay between batches. The limiter
// starts with one available token, so the first batch is never delayed.
func (c *Client) newThrottle(total int) throttle {
	if total <= c.cfg.ThrottleThreshold {
		return noThrottle{}
	}
	delay := time.Duration(c.cfg.ThrottleDelayMs) * time.Millisecond
	if delay <= 0 {
		return noThrottle{}
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// DispatchStocks pushes stock batches to the update endpoint, one request
// per batch, in order. The per-batch acknowledgement is logged verbatim;
// partial application by the remote side is accepted as-is. The first
// rejected batch fails the whole run.
func (c *Client) DispatchStocks(ctx context.Context, batches [][]syncer.UpdateRecord) (syncer.DispatchResult, error) {
	total := countRecords(batches)
	th := c.newThrottle(total)
	result := syncer.DispatchResult{Throttled: total > c.cfg.ThrottleThreshold}

	for i, batch := range batches {
		if err := th.Wait(ctx); err != nil {
			return result, err
		}

		entries := make([]stockEntry, 0, len(batch))
		for _, rec := range batch {
			pid, err := parseInternalID(syncer.StageDispatchStock, rec.InternalID)
			if err != nil {
				return result, err
			}
			entries = append(entries, stockEntry{
				OfferID:     rec.ExternalID,
				ProductID:   pid,
				Stock:       rec.Stock,
				WarehouseID: c.cfg.WarehouseID,
			})
		}

		var ack json.RawMessage
		if err := c.postJSON(ctx, syncer.StageDispatchStock, pathStockUpdate, stockUpdateRequest{Stocks: entries}, &ack); err != nil {
			return result, err
		}
		result.Batches++
		result.Records += len(batch)
		c.logger.Info("stock batch acknowledged",
			zap.Int("batch", i+1),
			zap.Int("of", len(batches)),
			zap.Int("size", len(batch)),
			zap.ByteString("ack", ack),
		)
	}
	return result, nil
}

// DispatchPrices pushes price batches under the same contract as
// DispatchStocks. Prices travel as decimal strings of integer currency
// units.
func (c *Client) DispatchPrices(ctx context.Context, batches [][]syncer.UpdateRecord) (syncer.DispatchResult, error) {
	total := countRecords(batches)
	th := c.newThrottle(total)
	result := syncer.DispatchResult{Throttled: total > c.cfg.ThrottleThreshold}

	for i, batch := range batches {
		if err := th.Wait(ctx); err != nil {
			return result, err
		}

		entries := make([]priceEntry, 0, len(batch))
		for _, rec := range batch {
			pid, err := parseInternalID(syncer.StageDispatchPrice, rec.InternalID)
			if err != nil {
				return result, err
			}
			entries = append(entries, priceEntry{
				OfferID:   rec.ExternalID,
				ProductID: pid,
				OldPrice:  strconv.FormatInt(rec.OldPrice, 10),
				Price:     strconv.FormatInt(rec.Price, 10),
			})
		}

		var ack json.RawMessage
		if err := c.postJSON(ctx, syncer.StageDispatchPrice, pathPriceUpdate, priceUpdateRequest{Prices: entries}, &ack); err != nil {
			return result, err
		}
		result.Batches++
		result.Records += len(batch)
		c.logger.Info("price batch acknowledged",
			zap.Int("batch", i+1),
			zap.Int("of", len(batches)),
			zap.Int("size", len(batch)),
			zap.ByteString("ack", ack),
		)
	}
	return result, nil
}

func countRecords(batches [][]syncer.UpdateRecord) int {
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	return total
}

// parseInternalID converts the catalog-provided product id back to its
// numeric wire form. Failure means the catalog served a malformed id.
func parseInternalID(stage, id string) (int64, error) {
	pid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, &syncer.UpstreamError{
			Stage:  stage,
			Detail: fmt.Sprintf("malformed internal product id %q", id),
			Err:    err,
		}
	}
	return pid, nil
}
