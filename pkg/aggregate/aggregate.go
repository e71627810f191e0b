package aggregate

import (
	"github.com/vintermark/facet-engine/pkg/types"
)

// Aggregator turns one facet definition plus the base and filtered attribute
// records into a displayable facet result. Implementations are pure functions
// of their inputs so distinct facets can run in parallel.
//
// The base records drive the value universe (what remains selectable), the
// filtered records drive the counts. Callers pass only records that carry a
// value for the facet key.
type Aggregator interface {
	Aggregate(def types.FacetDefinition, base, filtered []*types.ItemAttributes) *types.FacetResult
}

// For returns the aggregator registered for an aggregation type. Price is
// excluded here, it operates on catalog items instead of attribute records.
func For(aggregationType types.AggregationType) (Aggregator, bool) {
	switch aggregationType {
	case types.AggregationTerm:
		return TermAggregator{}, true
	case types.AggregationRange, types.AggregationHistogram:
		return RangeAggregator{}, true
	case types.AggregationBoolean:
		return BooleanAggregator{}, true
	}
	return nil, false
}

// resultFor seeds a FacetResult with the definition's display configuration.
func resultFor(def types.FacetDefinition) types.FacetResult {
	result := types.FacetResult{
		Key:             def.Key,
		Label:           def.Label,
		AggregationType: def.AggregationType,
		DisplayPriority: def.DisplayPriority,
	}
	if cfg := def.Config; cfg != nil {
		result.DisplayType = cfg.DisplayType
		result.ShowCount = cfg.ShowCount
		result.MaxDisplayItems = cfg.MaxDisplayItems
	}
	return result
}
