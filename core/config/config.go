package config

import (
	"fmt"
	"reflect"
	"strings"

	"market-sync/core/logger"
	"market-sync/core/marketplace"
	"market-sync/core/storage"
	"market-sync/feature/invask"
	"market-sync/feature/pricerules"
	"market-sync/feature/rusklimat"
	"market-sync/feature/status"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Sync holds run scheduling and pass selection defaults.
	Sync Sync `mapstructure:"sync"`
	// Marketplace holds seller API credentials and dispatch tuning.
	Marketplace marketplace.Config `mapstructure:"marketplace"`
	// Rules locates the price rule spreadsheet.
	Rules pricerules.Config `mapstructure:"rules"`
	// Storage holds object storage settings for remote rule spreadsheets.
	Storage storage.Config `mapstructure:"storage"`
	// Invask holds the invask supplier connector settings.
	Invask invask.Config `mapstructure:"invask"`
	// Rusklimat holds the rusklimat supplier connector settings.
	Rusklimat rusklimat.Config `mapstructure:"rusklimat"`
	// Status holds configuration for the status HTTP server.
	Status status.Config `mapstructure:"status"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// Sync holds run scheduling and pass selection defaults. Command-line
// flags override these per invocation.
type Sync struct {
	// Source selects the supplier connector (invask, rusklimat).
	Source string `mapstructure:"source" default:"invask"`
	// IntervalSeconds is the pause between scheduled runs.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"3600"`
	// Stock enables the stock pass by default.
	Stock bool `mapstructure:"stock" default:"true"`
	// Price enables the price pass by default.
	Price bool `mapstructure:"price" default:"true"`
}

// Validate reports invalid scheduling settings.
func (s Sync) Validate() error {
	if s.IntervalSeconds <= 0 {
		return fmt.Errorf("sync: interval_seconds must be positive, got %d", s.IntervalSeconds)
	}
	if s.Source == "" {
		return fmt.Errorf("sync: source is required")
	}
	return nil
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists; missing file is fine (production).
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MARKETPLACE_API_KEY -> marketplace.api_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
