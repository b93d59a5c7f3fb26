package cmd

import (
	"context"
	"fmt"

	"market-sync/core/config"
	"market-sync/core/logger"
	"market-sync/core/marketplace"
	"market-sync/core/storage"
	"market-sync/core/syncer"
	"market-sync/feature/invask"
	"market-sync/feature/pricerules"
	"market-sync/feature/rusklimat"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncSource string
	syncStock  bool
	syncPrice  bool
)

// syncCmd runs a single end-to-end sync run and exits.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass and exit",
	Long: `Run one end-to-end sync: fetch the marketplace catalog, fetch the
supplier dataset, reconcile, and dispatch the updates.

Examples:
  # Stock and prices (config defaults)
  market-sync sync

  # Stock only, from the rusklimat connector
  market-sync sync --source rusklimat --stock

  # Prices only
  market-sync sync --price`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncSource, "source", "", "Supplier connector (invask, rusklimat); defaults to sync.source from config")
	syncCmd.Flags().BoolVar(&syncStock, "stock", false, "Run the stock pass")
	syncCmd.Flags().BoolVar(&syncPrice, "price", false, "Run the price pass")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	opts := resolvePasses(cmd, cfg)
	opts.StockBatchSize = cfg.Marketplace.StockBatchSize
	opts.PriceBatchSize = cfg.Marketplace.PriceBatchSize

	orchestrator, err := buildPipeline(cfg, l, sourceName(cfg), opts.Price)
	if err != nil {
		return err
	}

	report, err := orchestrator.Run(context.Background(), opts)
	if err != nil {
		return err
	}
	l.Info("sync complete",
		zap.String("run_id", report.ID),
		zap.Int("stock_count", report.StockCount),
		zap.Int("price_count", report.PriceCount),
		zap.Duration("took", report.Duration()),
	)
	return nil
}

// resolvePasses merges pass flags with config defaults: explicit flags
// win, otherwise sync.stock/sync.price from configuration apply.
func resolvePasses(cmd *cobra.Command, cfg *config.Config) syncer.Options {
	if cmd.Flags().Changed("stock") || cmd.Flags().Changed("price") {
		return syncer.Options{Stock: syncStock, Price: syncPrice}
	}
	return syncer.Options{Stock: cfg.Sync.Stock, Price: cfg.Sync.Price}
}

func sourceName(cfg *config.Config) string {
	if syncSource != "" {
		return syncSource
	}
	return cfg.Sync.Source
}

// buildPipeline validates the relevant configuration sections and wires
// the orchestrator for one source. The rule source is only constructed
// (and its config only required) when the price pass is requested.
func buildPipeline(cfg *config.Config, l *zap.Logger, source string, withPrices bool) (*syncer.Orchestrator, error) {
	if err := cfg.Sync.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Marketplace.Validate(); err != nil {
		return nil, err
	}
	client := marketplace.NewClient(cfg.Marketplace, l)

	var adapter syncer.SourceAdapter
	switch source {
	case "invask":
		if err := cfg.Invask.Validate(); err != nil {
			return nil, err
		}
		adapter = invask.New(cfg.Invask, l)
	case "rusklimat":
		if err := cfg.Rusklimat.Validate(); err != nil {
			return nil, err
		}
		adapter = rusklimat.New(cfg.Rusklimat, l)
	default:
		return nil, fmt.Errorf("unknown source %q (known sources: invask, rusklimat)", source)
	}

	var rules syncer.RuleSource
	if withPrices {
		if err := cfg.Rules.Validate(); err != nil {
			return nil, err
		}
		var store storage.Client
		if cfg.Rules.Object != "" {
			var err error
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to storage: %w", err)
			}
			if err := storage.EnsureBucket(context.Background(), store, cfg.Storage.Bucket); err != nil {
				return nil, err
			}
		}
		rules = pricerules.NewLoader(cfg.Rules, store, cfg.Storage.Bucket, l)
	}

	return syncer.NewOrchestrator(client, adapter, rules, l), nil
}
