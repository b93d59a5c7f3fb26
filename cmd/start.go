package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"market-sync/core/config"
	"market-sync/core/logger"
	"market-sync/core/syncer"
	"market-sync/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd runs the scheduler: repeated sync runs plus the status server.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the sync scheduler",
	Long: `Run sync passes on an interval until interrupted. Each run fetches
fresh data; nothing is carried over between runs. Failed runs are logged
and the scheduler keeps going. When status.enabled is set, an HTTP
server exposes the latest run report per source.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := syncer.Options{
		Stock:          cfg.Sync.Stock,
		Price:          cfg.Sync.Price,
		StockBatchSize: cfg.Marketplace.StockBatchSize,
		PriceBatchSize: cfg.Marketplace.PriceBatchSize,
	}

	orchestrator, err := buildPipeline(cfg, l, cfg.Sync.Source, opts.Price)
	if err != nil {
		return err
	}

	store := status.NewStore()

	var app *fiber.App
	if cfg.Status.Enabled {
		app = status.NewApp(store, l)
		go func() {
			if err := app.Listen(":" + cfg.Status.Port); err != nil {
				l.Error("status server stopped", zap.Error(err))
			}
		}()
		l.Info("status server listening", zap.String("port", cfg.Status.Port))
	}

	interval := time.Duration(cfg.Sync.IntervalSeconds) * time.Second
	l.Info("scheduler started",
		zap.String("source", cfg.Sync.Source),
		zap.String("passes", syncer.DescribeOptions(opts)),
		zap.Duration("interval", interval),
	)

	for {
		report, runErr := orchestrator.Run(ctx, opts)
		if report != nil {
			store.Put(report)
		}
		if runErr != nil {
			if ctx.Err() != nil {
				break
			}
			// A failed run does not stop the scheduler; the next tick
			// starts from scratch.
			l.Error("run failed", zap.Error(runErr))
		}

		select {
		case <-ctx.Done():
		case <-time.After(interval):
			continue
		}
		break
	}

	l.Info("shutting down")
	if app != nil {
		if err := app.Shutdown(); err != nil {
			l.Error("status server shutdown failed", zap.Error(err))
		}
	}
	return nil
}
