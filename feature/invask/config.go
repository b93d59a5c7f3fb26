package invask

import "fmt"

// Config holds credentials and decoding rules for the invask supplier
// API.
type Config struct {
	// URL is the stock listing endpoint.
	URL string `mapstructure:"url" default:""`
	// Token is the bearer token.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// QuantityCeiling substitutes for labels listed in CeilingLabels.
	QuantityCeiling int `mapstructure:"quantity_ceiling" default:"500"`
	// CeilingLabels is a comma-separated list of free-text labels meaning
	// "at least QuantityCeiling units".
	CeilingLabels string `mapstructure:"ceiling_labels" default:""`
	// UnavailableValues is a comma-separated list of quantity values
	// normalized to zero. Values are matched literally, never evaluated.
	UnavailableValues string `mapstructure:"unavailable_values" default:""`
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("invask: url is required")
	}
	if c.Token == "" {
		return fmt.Errorf("invask: token is required")
	}
	return nil
}
