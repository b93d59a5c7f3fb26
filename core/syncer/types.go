package syncer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode selects which value family a reconciliation pass computes.
type Mode string

const (
	// ModeStock emits quantity updates.
	ModeStock Mode = "stock"
	// ModePrice emits price updates.
	ModePrice Mode = "price"
)

// Default batch limits imposed by the marketplace update endpoints.
const (
	DefaultStockBatchSize = 100
	DefaultPriceBatchSize = 1000
)

// CatalogItem is one marketplace-known product from the catalog snapshot.
// Identity is ExternalID; the marketplace guarantees uniqueness within a
// snapshot but this system does not enforce it (duplicates are logged and
// treated as distinct rows).
type CatalogItem struct {
	// ExternalID is the seller-assigned article (offer id), the join key.
	ExternalID string `json:"external_id"`
	// InternalID is the marketplace-assigned product id.
	InternalID string `json:"internal_id"`
}

// SupplierRecord is one row of supplier stock/price data, already
// normalized by the source adapter: Quantity is a plain unit count (label
// decoding happens on the supplier side, before the join).
type SupplierRecord struct {
	// ExternalID is the supplier article matching CatalogItem.ExternalID.
	// It need not be unique; the join takes the first occurrence.
	ExternalID string
	// Quantity is the decoded stock count.
	Quantity int
	// Price is the supplier's raw price in currency units.
	Price decimal.Decimal
	// HasPrice is false when the supplier row carries no price at all.
	HasPrice bool
}

// PriceRule holds the pricing parameters applied to one article.
type PriceRule struct {
	// MarkupPercent is the markup applied on top of the raw price.
	MarkupPercent decimal.Decimal
	// DeliveryFee is the flat fee added after markup, in currency units.
	DeliveryFee decimal.Decimal
}

// RuleSet is a PriceRule lookup keyed by external identifier.
type RuleSet map[string]PriceRule

// Lookup returns the rule for the given article.
func (rs RuleSet) Lookup(externalID string) (PriceRule, bool) {
	rule, ok := rs[externalID]
	return rule, ok
}

// UpdateRecord is the computed value to push for one product. Exactly one
// of the stock/price families is populated, depending on the pass mode.
type UpdateRecord struct {
	ExternalID string
	InternalID string
	// Stock is the quantity to publish (ModeStock).
	Stock int
	// Price is the computed price in integer currency units (ModePrice).
	Price int64
	// OldPrice is the strike-through price; always zero in this system.
	OldPrice int64
}

// ReconcileStats counts join outcomes for one reconciliation pass.
type ReconcileStats struct {
	// Joined counts catalog items that produced an update record.
	Joined int `json:"joined"`
	// SkippedNoSupplier counts catalog items absent from the supplier feed.
	SkippedNoSupplier int `json:"skipped_no_supplier"`
	// SkippedNoPrice counts matched items whose supplier row has no price
	// (price pass only).
	SkippedNoPrice int `json:"skipped_no_price"`
	// SkippedNoRule counts matched items without a price rule (price pass
	// only).
	SkippedNoRule int `json:"skipped_no_rule"`
	// DuplicateCatalogIDs counts external ids seen more than once in the
	// catalog snapshot.
	DuplicateCatalogIDs int `json:"duplicate_catalog_ids"`
}

// DispatchResult summarizes one dispatch pass.
type DispatchResult struct {
	// Batches is the number of acknowledged batches.
	Batches int `json:"batches"`
	// Records is the number of records across acknowledged batches.
	Records int `json:"records"`
	// Throttled is true when the pass exceeded the rate-limit threshold
	// and inter-batch delays were applied.
	Throttled bool `json:"throttled"`
}

// RunReport summarizes one orchestration pass. It is logged and exposed
// via the status endpoint, never persisted.
type RunReport struct {
	// ID is a unique identifier for this run, present on every log line.
	ID string `json:"id"`
	// Source names the supplier connector that fed the run.
	Source string `json:"source"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// StockCount and PriceCount are the record totals dispatched per pass.
	StockCount int `json:"stock_count"`
	PriceCount int `json:"price_count"`

	StockStats ReconcileStats `json:"stock_stats"`
	PriceStats ReconcileStats `json:"price_stats"`

	StockDispatch DispatchResult `json:"stock_dispatch"`
	PriceDispatch DispatchResult `json:"price_dispatch"`

	// Errors holds the failure that aborted the run, if any.
	Errors []string `json:"errors"`
}

// Failed reports whether the run was aborted.
func (r *RunReport) Failed() bool {
	return len(r.Errors) > 0
}

// Duration returns the wall-clock time the run took.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
