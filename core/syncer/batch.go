package syncer

import "fmt"

// Batch splits records into contiguous chunks of at most size records,
// preserving order. Every chunk is full except possibly the last, which
// holds the remainder. Chunks are subslices of the input; no records are
// copied. A non-positive size is a configuration error.
func Batch(records []UpdateRecord, size int) ([][]UpdateRecord, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", size)
	}
	if len(records) == 0 {
		return nil, nil
	}

	batches := make([][]UpdateRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches, nil
}
