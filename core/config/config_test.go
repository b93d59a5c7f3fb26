package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "invask", cfg.Sync.Source)
		assert.Equal(t, 3600, cfg.Sync.IntervalSeconds)
		assert.True(t, cfg.Sync.Stock)
		assert.True(t, cfg.Sync.Price)

		assert.Equal(t, 1000, cfg.Marketplace.PageSize)
		assert.Equal(t, 100, cfg.Marketplace.StockBatchSize)
		assert.Equal(t, 1000, cfg.Marketplace.PriceBatchSize)
		assert.Equal(t, 8000, cfg.Marketplace.ThrottleThreshold)
		assert.Equal(t, 1000, cfg.Marketplace.ThrottleDelayMs)

		assert.Equal(t, "B", cfg.Rules.ArticleColumn)
		assert.Equal(t, "D", cfg.Rules.MarkupColumn)
		assert.Equal(t, 2, cfg.Rules.StartRow)
		assert.Equal(t, int64(500), cfg.Rules.DeliveryFee)

		assert.Equal(t, 500, cfg.Invask.QuantityCeiling)
		assert.Equal(t, 500, cfg.Rusklimat.QuantityCeiling)

		assert.True(t, cfg.Status.Enabled)
		assert.Equal(t, "8080", cfg.Status.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("SYNC_SOURCE", "rusklimat")
		t.Setenv("SYNC_PRICE", "false")
		t.Setenv("MARKETPLACE_BASE_URL", "https://api.example")
		t.Setenv("MARKETPLACE_API_KEY", "secret")
		t.Setenv("MARKETPLACE_THROTTLE_THRESHOLD", "100")
		t.Setenv("RUSKLIMAT_WAREHOUSE", "msk")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "rusklimat", cfg.Sync.Source)
		assert.False(t, cfg.Sync.Price)
		assert.True(t, cfg.Sync.Stock)
		assert.Equal(t, "https://api.example", cfg.Marketplace.BaseURL)
		assert.Equal(t, "secret", cfg.Marketplace.APIKey)
		assert.Equal(t, 100, cfg.Marketplace.ThrottleThreshold)
		assert.Equal(t, "msk", cfg.Rusklimat.Warehouse)
	})
}

func TestSyncValidate(t *testing.T) {
	valid := Sync{Source: "invask", IntervalSeconds: 3600, Stock: true, Price: true}
	assert.NoError(t, valid.Validate())

	t.Run("BadInterval", func(t *testing.T) {
		cfg := valid
		cfg.IntervalSeconds = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingSource", func(t *testing.T) {
		cfg := valid
		cfg.Source = ""
		assert.Error(t, cfg.Validate())
	})
}
