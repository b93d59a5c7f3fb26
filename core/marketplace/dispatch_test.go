package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"market-sync/core/syncer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stockRecords(n int) []syncer.UpdateRecord {
	records := make([]syncer.UpdateRecord, n)
	for i := range records {
		records[i] = syncer.UpdateRecord{
			ExternalID: fmt.Sprintf("SKU-%d", i),
			InternalID: fmt.Sprintf("%d", 1000+i),
			Stock:      i,
		}
	}
	return records
}

func mustBatch(t *testing.T, records []syncer.UpdateRecord, size int) [][]syncer.UpdateRecord {
	t.Helper()
	batches, err := syncer.Batch(records, size)
	require.NoError(t, err)
	return batches
}

func TestDispatchStocks(t *testing.T) {
	t.Run("PayloadShape", func(t *testing.T) {
		var got stockUpdateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, pathStockUpdate, r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{"result":[{"updated":true}]}`))
		}))
		defer srv.Close()

		c := NewClient(testConfig(srv.URL), zap.NewNop())
		records := []syncer.UpdateRecord{
			{ExternalID: "A", InternalID: "1", Stock: 11},
		}
		result, err := c.DispatchStocks(context.Background(), mustBatch(t, records, 100))
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Batches)
		assert.Equal(t, 1, result.Records)
		assert.False(t, result.Throttled)

		require.Len(t, got.Stocks, 1)
		assert.Equal(t, stockEntry{
			OfferID:     "A",
			ProductID:   1,
			Stock:       11,
			WarehouseID: 42,
		}, got.Stocks[0])
	})

	t.Run("OneRequestPerBatch", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := NewClient(testConfig(srv.URL), zap.NewNop())
		result, err := c.DispatchStocks(context.Background(), mustBatch(t, stockRecords(250), 100))
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 3, result.Batches)
		assert.Equal(t, 250, result.Records)
	})

	t.Run("RejectedBatchFailsFast", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 2 {
				http.Error(w, `{"error":"too many requests"}`, http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := NewClient(testConfig(srv.URL), zap.NewNop())
		result, err := c.DispatchStocks(context.Background(), mustBatch(t, stockRecords(250), 100))

		var upErr *syncer.UpstreamError
		assert.ErrorAs(t, err, &upErr)
		assert.Equal(t, syncer.StageDispatchStock, upErr.Stage)
		// The failed batch and everything after it stay undispatched.
		assert.Equal(t, 2, calls)
		assert.Equal(t, 1, result.Batches)
		assert.Equal(t, 100, result.Records)
	})

	t.Run("MalformedInternalID", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be sent for a malformed id")
		}))
		defer srv.Close()

		c := NewClient(testConfig(srv.URL), zap.NewNop())
		records := []syncer.UpdateRecord{{ExternalID: "A", InternalID: "not-a-number"}}
		_, err := c.DispatchStocks(context.Background(), mustBatch(t, records, 100))

		var upErr *syncer.UpstreamError
		assert.ErrorAs(t, err, &upErr)
	})

	t.Run("NoBatches", func(t *testing.T) {
		c := NewClient(testConfig("http://unused"), zap.NewNop())
		result, err := c.DispatchStocks(context.Background(), nil)
		assert.NoError(t, err)
		assert.Zero(t, result.Batches)
	})
}

func TestDispatchPrices(t *testing.T) {
	t.Run("PricesTravelAsStrings", func(t *testing.T) {
		var got priceUpdateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, pathPriceUpdate, r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := NewClient(testConfig(srv.URL), zap.NewNop())
		records := []syncer.UpdateRecord{
			{ExternalID: "A", InternalID: "1", Price: 1600},
		}
		_, err := c.DispatchPrices(context.Background(), mustBatch(t, records, 1000))
		assert.NoError(t, err)

		require.Len(t, got.Prices, 1)
		assert.Equal(t, priceEntry{
			OfferID:   "A",
			ProductID: 1,
			OldPrice:  "0",
			Price:     "1600",
		}, got.Prices[0])
	})
}

func TestDispatchThrottle(t *testing.T) {
	t.Run("AboveThreshold", func(t *testing.T) {
		var stamps []time.Time
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stamps = append(stamps, time.Now())
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.ThrottleThreshold = 10
		cfg.ThrottleDelayMs = 50

		c := NewClient(cfg, zap.NewNop())
		result, err := c.DispatchStocks(context.Background(), mustBatch(t, stockRecords(15), 5))
		assert.NoError(t, err)
		assert.True(t, result.Throttled)
		assert.Equal(t, 3, result.Batches)

		// The limiter starts with a token, so only the gaps between
		// batches carry the delay.
		require.Len(t, stamps, 3)
		for i := 1; i < len(stamps); i++ {
			assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), 40*time.Millisecond)
		}
	})

	t.Run("AtThreshold", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.ThrottleThreshold = 15
		cfg.ThrottleDelayMs = 10_000

		c := NewClient(cfg, zap.NewNop())
		start := time.Now()
		result, err := c.DispatchStocks(context.Background(), mustBatch(t, stockRecords(15), 5))
		assert.NoError(t, err)
		assert.False(t, result.Throttled)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("CanceledContextStopsDispatch", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.ThrottleThreshold = 1
		cfg.ThrottleDelayMs = 60_000

		ctx, cancel := context.WithCancel(context.Background())
		c := NewClient(cfg, zap.NewNop())

		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()
		_, err := c.DispatchStocks(ctx, mustBatch(t, stockRecords(10), 5))
		assert.Error(t, err)
		// The first batch goes out on the initial token; the second waits
		// on the limiter and is cut off by the cancel.
		assert.Equal(t, 1, calls)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := testConfig("http://api.example")

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("MissingBaseURL", func(t *testing.T) {
		cfg := valid
		cfg.BaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		cfg := valid
		cfg.APIKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadWarehouse", func(t *testing.T) {
		cfg := valid
		cfg.WarehouseID = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadBatchSize", func(t *testing.T) {
		cfg := valid
		cfg.StockBatchSize = 0
		assert.Error(t, cfg.Validate())
	})
}
