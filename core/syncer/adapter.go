package syncer

import "context"

// SourceAdapter produces the supplier dataset for one run. One
// implementation exists per connector (REST pagination, JWT-gated API,
// spreadsheet dump); all of them must exhaust their source to completion
// or fail with a SourceError.
type SourceAdapter interface {
	// Name identifies the connector in logs and reports.
	Name() string
	// Fetch returns the full supplier dataset, quantities already decoded.
	Fetch(ctx context.Context) ([]SupplierRecord, error)
}

// RuleSource loads the price rules for one run. Rules are loaded once and
// are immutable for the duration of the run.
type RuleSource interface {
	Load(ctx context.Context) (RuleSet, error)
}

// Marketplace is the read/write boundary to the marketplace: the paginated
// catalog listing and the batch update endpoints.
type Marketplace interface {
	// FetchCatalog paginates the catalog listing to exhaustion and returns
	// the full snapshot for this run.
	FetchCatalog(ctx context.Context) ([]CatalogItem, error)
	// DispatchStocks pushes stock batches, observing the throughput
	// throttle, and fails fast on the first rejected batch.
	DispatchStocks(ctx context.Context, batches [][]UpdateRecord) (DispatchResult, error)
	// DispatchPrices pushes price batches under the same contract.
	DispatchPrices(ctx context.Context, batches [][]UpdateRecord) (DispatchResult, error)
}
