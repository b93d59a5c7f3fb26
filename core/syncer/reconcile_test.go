package syncer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReconcile_Stock(t *testing.T) {
	r := NewReconciler(zap.NewNop())

	t.Run("JoinByExternalID", func(t *testing.T) {
		catalog := []CatalogItem{
			{ExternalID: "A", InternalID: "1"},
			{ExternalID: "B", InternalID: "2"},
		}
		supplier := []SupplierRecord{
			{ExternalID: "A", Quantity: 11},
			{ExternalID: "C", Quantity: 7},
		}

		records, stats, err := r.Reconcile(catalog, supplier, nil, ModeStock)
		assert.NoError(t, err)
		assert.Equal(t, []UpdateRecord{
			{ExternalID: "A", InternalID: "1", Stock: 11},
		}, records)
		assert.Equal(t, 1, stats.Joined)
		assert.Equal(t, 1, stats.SkippedNoSupplier)
	})

	t.Run("FirstSupplierOccurrenceWins", func(t *testing.T) {
		catalog := []CatalogItem{{ExternalID: "A", InternalID: "1"}}
		supplier := []SupplierRecord{
			{ExternalID: "A", Quantity: 5},
			{ExternalID: "A", Quantity: 99},
		}

		records, _, err := r.Reconcile(catalog, supplier, nil, ModeStock)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, 5, records[0].Stock)
	})

	t.Run("OutputFollowsCatalogOrder", func(t *testing.T) {
		catalog := []CatalogItem{
			{ExternalID: "C", InternalID: "3"},
			{ExternalID: "A", InternalID: "1"},
			{ExternalID: "B", InternalID: "2"},
		}
		supplier := []SupplierRecord{
			{ExternalID: "A", Quantity: 1},
			{ExternalID: "B", Quantity: 2},
			{ExternalID: "C", Quantity: 3},
		}

		records, _, err := r.Reconcile(catalog, supplier, nil, ModeStock)
		assert.NoError(t, err)
		assert.Equal(t, []string{"C", "A", "B"}, []string{
			records[0].ExternalID, records[1].ExternalID, records[2].ExternalID,
		})
	})

	t.Run("DuplicateCatalogIDsCountedNotDropped", func(t *testing.T) {
		catalog := []CatalogItem{
			{ExternalID: "A", InternalID: "1"},
			{ExternalID: "A", InternalID: "9"},
		}
		supplier := []SupplierRecord{{ExternalID: "A", Quantity: 4}}

		records, stats, err := r.Reconcile(catalog, supplier, nil, ModeStock)
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, 1, stats.DuplicateCatalogIDs)
	})

	t.Run("EmptyInputs", func(t *testing.T) {
		records, stats, err := r.Reconcile(nil, nil, nil, ModeStock)
		assert.NoError(t, err)
		assert.Empty(t, records)
		assert.Zero(t, stats.Joined)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		_, _, err := r.Reconcile(nil, nil, nil, Mode("bogus"))
		assert.Error(t, err)
	})
}

func TestReconcile_Price(t *testing.T) {
	r := NewReconciler(zap.NewNop())

	rules := RuleSet{
		"A": {MarkupPercent: dec("10"), DeliveryFee: dec("500")},
		"B": {MarkupPercent: dec("0"), DeliveryFee: dec("0")},
	}

	t.Run("MarkupAndFeeApplied", func(t *testing.T) {
		catalog := []CatalogItem{{ExternalID: "A", InternalID: "1"}}
		supplier := []SupplierRecord{
			{ExternalID: "A", Price: dec("1000"), HasPrice: true},
		}

		records, stats, err := r.Reconcile(catalog, supplier, rules, ModePrice)
		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, int64(1600), records[0].Price)
		assert.Equal(t, 1, stats.Joined)
	})

	t.Run("MissingPriceSkipped", func(t *testing.T) {
		catalog := []CatalogItem{{ExternalID: "A", InternalID: "1"}}
		supplier := []SupplierRecord{{ExternalID: "A", HasPrice: false}}

		records, stats, err := r.Reconcile(catalog, supplier, rules, ModePrice)
		assert.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 1, stats.SkippedNoPrice)
	})

	t.Run("MissingRuleSkipped", func(t *testing.T) {
		catalog := []CatalogItem{{ExternalID: "Z", InternalID: "9"}}
		supplier := []SupplierRecord{
			{ExternalID: "Z", Price: dec("100"), HasPrice: true},
		}

		records, stats, err := r.Reconcile(catalog, supplier, rules, ModePrice)
		assert.NoError(t, err)
		assert.Empty(t, records)
		assert.Equal(t, 1, stats.SkippedNoRule)
	})
}

func TestPriceProcess(t *testing.T) {
	t.Run("MarkupThenFee", func(t *testing.T) {
		rule := PriceRule{MarkupPercent: dec("10"), DeliveryFee: dec("500")}
		assert.Equal(t, int64(1600), PriceProcess(dec("1000"), rule))
	})

	t.Run("ZeroRawYieldsDeliveryFee", func(t *testing.T) {
		rule := PriceRule{MarkupPercent: dec("10"), DeliveryFee: dec("500")}
		assert.Equal(t, int64(500), PriceProcess(dec("0"), rule))
	})

	t.Run("RoundsToNearestUnit", func(t *testing.T) {
		// 333 * 1.155 = 384.615 -> 385
		rule := PriceRule{MarkupPercent: dec("15.5"), DeliveryFee: dec("0")}
		assert.Equal(t, int64(385), PriceProcess(dec("333"), rule))
	})

	t.Run("FractionalRawPrice", func(t *testing.T) {
		// 99.99 * 1.2 + 50 = 169.988 -> 170
		rule := PriceRule{MarkupPercent: dec("20"), DeliveryFee: dec("50")}
		assert.Equal(t, int64(170), PriceProcess(dec("99.99"), rule))
	})

	t.Run("NoMarkupNoFee", func(t *testing.T) {
		rule := PriceRule{}
		assert.Equal(t, int64(1000), PriceProcess(dec("1000"), rule))
	})
}
