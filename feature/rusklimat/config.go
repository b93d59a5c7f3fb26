package rusklimat

import "fmt"

// Config holds credentials and decoding rules for the rusklimat dealer
// API.
type Config struct {
	// AuthURL is the login endpoint issuing JWTs.
	AuthURL string `mapstructure:"auth_url" default:""`
	// KeyURL is the endpoint exchanging a JWT for a request key.
	KeyURL string `mapstructure:"key_url" default:""`
	// DataURL is the stock report endpoint; the request key is appended
	// as a path segment.
	DataURL string `mapstructure:"data_url" default:""`
	// Login and Password are the dealer account credentials.
	Login    string `mapstructure:"login" default:""`
	Password string `mapstructure:"password" default:""`
	// Warehouse selects which per-warehouse remains column to publish.
	Warehouse string `mapstructure:"warehouse" default:""`
	// PageSize bounds one report page.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// QuantityCeiling substitutes for labels listed in CeilingLabels.
	QuantityCeiling int `mapstructure:"quantity_ceiling" default:"500"`
	// CeilingLabels is a comma-separated list of labels meaning "at least
	// QuantityCeiling units" (e.g. "more than 500").
	CeilingLabels string `mapstructure:"ceiling_labels" default:""`
	// UnavailableValues is a comma-separated list of remains values
	// normalized to zero (e.g. a "delivery expected" label). Matched
	// literally, never evaluated.
	UnavailableValues string `mapstructure:"unavailable_values" default:""`
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	if c.AuthURL == "" || c.KeyURL == "" || c.DataURL == "" {
		return fmt.Errorf("rusklimat: auth_url, key_url and data_url are required")
	}
	if c.Login == "" || c.Password == "" {
		return fmt.Errorf("rusklimat: login and password are required")
	}
	if c.Warehouse == "" {
		return fmt.Errorf("rusklimat: warehouse is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("rusklimat: page_size must be positive, got %d", c.PageSize)
	}
	return nil
}
