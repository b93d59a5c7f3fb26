package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage names used in log lines and error reports.
const (
	StageFetchCatalog   = "fetch_catalog"
	StageFetchSupplier  = "fetch_supplier"
	StageFetchRules     = "fetch_rules"
	StageReconcileStock = "reconcile_stock"
	StageDispatchStock  = "dispatch_stock"
	StageReconcilePrice = "reconcile_price"
	StageDispatchPrice  = "dispatch_price"
)

// Options select the passes and batch limits for one run.
type Options struct {
	// Stock enables the stock pass.
	Stock bool
	// Price enables the price pass. Requires a RuleSource.
	Price bool
	// StockBatchSize overrides DefaultStockBatchSize when positive.
	StockBatchSize int
	// PriceBatchSize overrides DefaultPriceBatchSize when positive.
	PriceBatchSize int
}

// Orchestrator drives one end-to-end sync run. Stages execute strictly
// sequentially; each stage's output is the next stage's only input, and
// no state survives between runs except configuration.
type Orchestrator struct {
	marketplace Marketplace
	source      SourceAdapter
	rules       RuleSource
	reconciler  *Reconciler
	logger      *zap.Logger
}

// NewOrchestrator wires a pipeline. rules may be nil when the price pass
// is never requested.
func NewOrchestrator(marketplace Marketplace, source SourceAdapter, rules RuleSource, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		marketplace: marketplace,
		source:      source,
		rules:       rules,
		reconciler:  NewReconciler(logger),
		logger:      logger,
	}
}

// Run executes one sync run and returns its report. The report is
// returned even on failure, with the aborting error recorded; partial
// progress (batches already dispatched) is not rolled back. A failed run
// never terminates the process: the caller logs the error and retries on
// the next scheduled tick.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*RunReport, error) {
	if !opts.Stock && !opts.Price {
		return nil, errors.New("no pass selected: enable stock, price, or both")
	}
	if opts.Price && o.rules == nil {
		return nil, errors.New("price pass requested without a rule source")
	}

	report := &RunReport{
		ID:        uuid.NewString(),
		Source:    o.source.Name(),
		StartedAt: time.Now(),
	}
	defer func() {
		report.FinishedAt = time.Now()
	}()

	log := o.logger.With(
		zap.String("run_id", report.ID),
		zap.String("source", report.Source),
	)
	log.Info("sync run started", zap.Bool("stock", opts.Stock), zap.Bool("price", opts.Price))

	fail := func(stage string, err error) (*RunReport, error) {
		report.Errors = append(report.Errors, err.Error())
		log.Error("sync run aborted", zap.String("stage", stage), zap.Error(err))
		return report, err
	}

	// FETCH_CATALOG
	if err := ctx.Err(); err != nil {
		return fail(StageFetchCatalog, err)
	}
	catalog, err := o.marketplace.FetchCatalog(ctx)
	if err != nil {
		return fail(StageFetchCatalog, err)
	}
	log.Info("catalog snapshot fetched", zap.Int("items", len(catalog)))

	// FETCH_SUPPLIER
	if err := ctx.Err(); err != nil {
		return fail(StageFetchSupplier, err)
	}
	supplier, err := o.source.Fetch(ctx)
	if err != nil {
		var srcErr *SourceError
		if !errors.As(err, &srcErr) {
			err = &SourceError{Source: o.source.Name(), Err: err}
		}
		return fail(StageFetchSupplier, err)
	}
	log.Info("supplier dataset fetched", zap.Int("records", len(supplier)))

	// FETCH_RULES (price pass only)
	var rules RuleSet
	if opts.Price {
		if err := ctx.Err(); err != nil {
			return fail(StageFetchRules, err)
		}
		rules, err = o.rules.Load(ctx)
		if err != nil {
			return fail(StageFetchRules, err)
		}
		log.Info("price rules loaded", zap.Int("rules", len(rules)))
	}

	if opts.Stock {
		if err := ctx.Err(); err != nil {
			return fail(StageReconcileStock, err)
		}
		records, stats, err := o.reconciler.Reconcile(catalog, supplier, nil, ModeStock)
		if err != nil {
			return fail(StageReconcileStock, err)
		}
		report.StockStats = stats
		report.StockCount = len(records)
		log.Info("stock pass reconciled",
			zap.Int("joined", stats.Joined),
			zap.Int("skipped_no_supplier", stats.SkippedNoSupplier),
		)

		batches, err := Batch(records, orDefault(opts.StockBatchSize, DefaultStockBatchSize))
		if err != nil {
			return fail(StageDispatchStock, err)
		}
		if err := ctx.Err(); err != nil {
			return fail(StageDispatchStock, err)
		}
		result, err := o.marketplace.DispatchStocks(ctx, batches)
		report.StockDispatch = result
		if err != nil {
			return fail(StageDispatchStock, err)
		}
		log.Info("stock pass dispatched",
			zap.Int("batches", result.Batches),
			zap.Int("records", result.Records),
			zap.Bool("throttled", result.Throttled),
		)
	}

	if opts.Price {
		if err := ctx.Err(); err != nil {
			return fail(StageReconcilePrice, err)
		}
		records, stats, err := o.reconciler.Reconcile(catalog, supplier, rules, ModePrice)
		if err != nil {
			return fail(StageReconcilePrice, err)
		}
		report.PriceStats = stats
		report.PriceCount = len(records)
		log.Info("price pass reconciled",
			zap.Int("joined", stats.Joined),
			zap.Int("skipped_no_supplier", stats.SkippedNoSupplier),
			zap.Int("skipped_no_rule", stats.SkippedNoRule),
		)

		batches, err := Batch(records, orDefault(opts.PriceBatchSize, DefaultPriceBatchSize))
		if err != nil {
			return fail(StageDispatchPrice, err)
		}
		if err := ctx.Err(); err != nil {
			return fail(StageDispatchPrice, err)
		}
		result, err := o.marketplace.DispatchPrices(ctx, batches)
		report.PriceDispatch = result
		if err != nil {
			return fail(StageDispatchPrice, err)
		}
		log.Info("price pass dispatched",
			zap.Int("batches", result.Batches),
			zap.Int("records", result.Records),
			zap.Bool("throttled", result.Throttled),
		)
	}

	log.Info("sync run finished",
		zap.Int("stock_count", report.StockCount),
		zap.Int("price_count", report.PriceCount),
		zap.Duration("took", time.Since(report.StartedAt)),
	)
	return report, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// DescribeOptions renders the selected passes for log lines.
func DescribeOptions(opts Options) string {
	switch {
	case opts.Stock && opts.Price:
		return "stock+price"
	case opts.Stock:
		return "stock"
	case opts.Price:
		return "price"
	default:
		return fmt.Sprintf("none (%+v)", opts)
	}
}
