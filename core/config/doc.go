// Package config provides configuration management for market-sync.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Sync: source selection, pass defaults, scheduling interval
//   - Marketplace: seller API credentials, batch sizes, throttle settings
//   - Rules: price rule spreadsheet location and layout
//   - Storage: S3/MinIO settings for remote rule spreadsheets
//   - Invask / Rusklimat: per-connector supplier credentials
//   - Status: status HTTP server settings
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Marketplace.BaseURL)
package config
