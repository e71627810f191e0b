package aggregate

import (
	"github.com/vintermark/facet-engine/pkg/types"
)

// RangeAggregator resolves the numeric window of a range/histogram facet.
// Bounds come from the base records, non-numeric values are discarded first.
// Explicitly configured bounds and step win over the observed data.
type RangeAggregator struct{}

func (RangeAggregator) Aggregate(def types.FacetDefinition, base, _ []*types.ItemAttributes) *types.FacetResult {
	var (
		minValue, maxValue float64
		seen               bool
	)
	for _, record := range base {
		n, ok := record.Value(def.Key).AsNumber()
		if !ok {
			continue
		}
		if !seen {
			minValue, maxValue = n, n
			seen = true
			continue
		}
		minValue = min(minValue, n)
		maxValue = max(maxValue, n)
	}

	result := resultFor(def)
	if !seen {
		// Degenerate window instead of a failed facet.
		result.Range = &types.FacetRange{Min: 0, Max: 100, Step: 1}
		return &result
	}

	var step float64
	if cfg := def.Config; cfg != nil && cfg.Range != nil {
		if cfg.Range.Min != nil {
			minValue = *cfg.Range.Min
		}
		if cfg.Range.Max != nil {
			maxValue = *cfg.Range.Max
		}
		if cfg.Range.Step != nil {
			step = *cfg.Range.Step
		}
	}
	if step <= 0 {
		step = StepForSpan(maxValue - minValue)
	}

	result.Range = &types.FacetRange{Min: minValue, Max: maxValue, Step: step}
	return &result
}
