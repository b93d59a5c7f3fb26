package syncer

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Reconciler joins a catalog snapshot against a supplier dataset and
// computes the update records for one pass.
type Reconciler struct {
	logger *zap.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(logger *zap.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile performs a catalog-driven left semi-join into the supplier
// dataset, keyed by external identifier. The supplier set is hash-indexed
// up front so lookups stay O(1) at catalog sizes in the tens of
// thousands; when an identifier occurs more than once in the feed, the
// first occurrence wins. Catalog items without a supplier row are skipped
// and counted, never errored. Output order follows catalog order.
func (r *Reconciler) Reconcile(catalog []CatalogItem, supplier []SupplierRecord, rules RuleSet, mode Mode) ([]UpdateRecord, ReconcileStats, error) {
	if mode != ModeStock && mode != ModePrice {
		return nil, ReconcileStats{}, fmt.Errorf("unknown reconcile mode %q", mode)
	}

	index := make(map[string]SupplierRecord, len(supplier))
	for _, rec := range supplier {
		if _, ok := index[rec.ExternalID]; !ok {
			index[rec.ExternalID] = rec
		}
	}

	var stats ReconcileStats
	records := make([]UpdateRecord, 0, len(catalog))
	seen := make(map[string]struct{}, len(catalog))

	for _, item := range catalog {
		if _, dup := seen[item.ExternalID]; dup {
			// Duplicates violate a marketplace invariant; report them but
			// keep both rows so the behavior stays visible.
			stats.DuplicateCatalogIDs++
			r.logger.Warn("duplicate external id in catalog snapshot",
				zap.String("external_id", item.ExternalID))
		}
		seen[item.ExternalID] = struct{}{}

		rec, ok := index[item.ExternalID]
		if !ok {
			stats.SkippedNoSupplier++
			continue
		}

		switch mode {
		case ModeStock:
			records = append(records, UpdateRecord{
				ExternalID: item.ExternalID,
				InternalID: item.InternalID,
				Stock:      rec.Quantity,
			})
		case ModePrice:
			if !rec.HasPrice {
				stats.SkippedNoPrice++
				continue
			}
			rule, ok := rules.Lookup(item.ExternalID)
			if !ok {
				stats.SkippedNoRule++
				continue
			}
			records = append(records, UpdateRecord{
				ExternalID: item.ExternalID,
				InternalID: item.InternalID,
				Price:      PriceProcess(rec.Price, rule),
			})
		}
		stats.Joined++
	}

	return records, stats, nil
}

// PriceProcess computes the publishable price for one article:
//
//	round(raw * (1 + markup/100) + delivery_fee)
//
// in integer currency units. A zero raw price yields the delivery fee
// alone: an item with no base price is priced as shipping-only. This is a
// deliberate business policy, not a fallback. Arithmetic is decimal to
// keep currency results exact.
func PriceProcess(raw decimal.Decimal, rule PriceRule) int64 {
	if raw.IsZero() {
		return rule.DeliveryFee.Round(0).IntPart()
	}
	hundred := decimal.NewFromInt(100)
	factor := hundred.Add(rule.MarkupPercent).Div(hundred)
	return raw.Mul(factor).Add(rule.DeliveryFee).Round(0).IntPart()
}
