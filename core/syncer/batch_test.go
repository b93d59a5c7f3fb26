package syncer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeRecords(n int) []UpdateRecord {
	records := make([]UpdateRecord, n)
	for i := range records {
		records[i] = UpdateRecord{ExternalID: fmt.Sprintf("SKU-%d", i)}
	}
	return records
}

func TestBatch(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		batches, err := Batch(nil, 100)
		assert.NoError(t, err)
		assert.Empty(t, batches)
	})

	t.Run("InvalidSize", func(t *testing.T) {
		_, err := Batch(makeRecords(5), 0)
		assert.Error(t, err)

		_, err = Batch(makeRecords(5), -1)
		assert.Error(t, err)
	})

	t.Run("ExactMultiple", func(t *testing.T) {
		batches, err := Batch(makeRecords(200), 100)
		assert.NoError(t, err)
		assert.Len(t, batches, 2)
		assert.Len(t, batches[0], 100)
		assert.Len(t, batches[1], 100)
	})

	t.Run("Remainder", func(t *testing.T) {
		batches, err := Batch(makeRecords(205), 100)
		assert.NoError(t, err)
		assert.Len(t, batches, 3)
		assert.Len(t, batches[2], 5)
	})

	t.Run("SingleUnderfilledBatch", func(t *testing.T) {
		batches, err := Batch(makeRecords(7), 100)
		assert.NoError(t, err)
		assert.Len(t, batches, 1)
		assert.Len(t, batches[0], 7)
	})

	t.Run("OrderPreserved", func(t *testing.T) {
		records := makeRecords(250)
		batches, err := Batch(records, 100)
		assert.NoError(t, err)

		var flat []UpdateRecord
		for _, b := range batches {
			flat = append(flat, b...)
		}
		assert.Equal(t, records, flat)
	})
}
