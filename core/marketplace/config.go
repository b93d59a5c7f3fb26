package marketplace

import "fmt"

// Config holds marketplace API credentials and dispatch tuning.
type Config struct {
	// BaseURL is the root of the seller API.
	BaseURL string `mapstructure:"base_url" default:""`
	// ClientID identifies the seller account.
	ClientID string `mapstructure:"client_id" default:""`
	// APIKey authenticates requests alongside ClientID.
	APIKey string `mapstructure:"api_key" default:""`
	// WarehouseID is the warehouse stock updates are written against.
	WarehouseID int64 `mapstructure:"warehouse_id" default:"0"`
	// PageSize bounds catalog listing pages.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// StockBatchSize bounds one stock update request.
	StockBatchSize int `mapstructure:"stock_batch_size" default:"100"`
	// PriceBatchSize bounds one price update request.
	PriceBatchSize int `mapstructure:"price_batch_size" default:"1000"`
	// ThrottleThreshold is the total record count above which inter-batch
	// delays are applied during dispatch.
	ThrottleThreshold int `mapstructure:"throttle_threshold" default:"8000"`
	// ThrottleDelayMs is the delay between batches once throttled.
	ThrottleDelayMs int `mapstructure:"throttle_delay_ms" default:"1000"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"100"`
}

// Validate reports missing or invalid required settings. It runs at
// startup, never per run.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("marketplace: base_url is required")
	}
	if c.ClientID == "" || c.APIKey == "" {
		return fmt.Errorf("marketplace: client_id and api_key are required")
	}
	if c.WarehouseID <= 0 {
		return fmt.Errorf("marketplace: warehouse_id must be positive, got %d", c.WarehouseID)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("marketplace: page_size must be positive, got %d", c.PageSize)
	}
	if c.StockBatchSize <= 0 || c.PriceBatchSize <= 0 {
		return fmt.Errorf("marketplace: batch sizes must be positive, got stock=%d price=%d",
			c.StockBatchSize, c.PriceBatchSize)
	}
	if c.ThrottleThreshold < 0 || c.ThrottleDelayMs < 0 {
		return fmt.Errorf("marketplace: throttle settings must not be negative")
	}
	return nil
}
