package syncer

import (
	"fmt"
	"strconv"
	"strings"
)

// QuantityDecoder normalizes a supplier quantity field to a plain unit
// count. Suppliers encode availability in several textual forms
// ("available", ">10", "more than 500"); adapters run the decoder on
// every row before the join so the reconciler only ever sees integers.
type QuantityDecoder interface {
	// Decode converts a raw quantity value to a unit count.
	Decode(raw string) (int, error)
}

// LabelDecoder is the standard QuantityDecoder. All mappings are declared
// as explicit configuration values; no configured text is ever evaluated.
type LabelDecoder struct {
	// Ceiling is the count substituted for labels listed in CeilingLabels.
	Ceiling int
	// CeilingLabels are free-text labels meaning "at least Ceiling units"
	// (e.g. "more than 500", "available on request").
	CeilingLabels []string
	// UnavailableValues are values normalized to zero: labels or counts
	// the supplier uses to mean "effectively out of stock".
	UnavailableValues []string
}

// Decode implements QuantityDecoder.
//
// Resolution order: unavailable sentinel, ceiling label, bucketed ">N"
// label (decoded as N+1), plain integer passthrough. Anything else is a
// decode failure the adapter must surface. Sentinels are matched against
// both the raw label and the decoded count, so a sentinel of "2" also
// zeroes a ">1" bucket.
func (d LabelDecoder) Decode(raw string) (int, error) {
	label := strings.TrimSpace(raw)

	if d.unavailable(label) {
		return 0, nil
	}

	for _, v := range d.CeilingLabels {
		if strings.EqualFold(label, v) {
			return d.Ceiling, nil
		}
	}

	if rest, ok := strings.CutPrefix(label, ">"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return 0, fmt.Errorf("bucketed quantity label %q: %w", raw, err)
		}
		return d.normalize(n + 1), nil
	}

	n, err := strconv.Atoi(label)
	if err != nil {
		return 0, fmt.Errorf("unrecognized quantity label %q", raw)
	}
	return d.normalize(n), nil
}

func (d LabelDecoder) unavailable(label string) bool {
	for _, v := range d.UnavailableValues {
		if label == v {
			return true
		}
	}
	return false
}

// normalize zeroes negative counts and decoded counts whose value is
// itself listed as unavailable.
func (d LabelDecoder) normalize(n int) int {
	if n < 0 {
		return 0
	}
	if d.unavailable(strconv.Itoa(n)) {
		return 0
	}
	return n
}

// SplitLabels parses a comma-separated label list from configuration,
// dropping empty entries.
func SplitLabels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
