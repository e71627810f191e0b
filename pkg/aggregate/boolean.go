package aggregate

import (
	"github.com/vintermark/facet-engine/pkg/types"
)

// BooleanAggregator offers Yes/No options. An option appears only when at
// least one base record carries that truth value, and the output order is
// always Yes before No, never frequency based.
type BooleanAggregator struct{}

func (BooleanAggregator) Aggregate(def types.FacetDefinition, base, filtered []*types.ItemAttributes) *types.FacetResult {
	var hasTrue, hasFalse bool
	for _, record := range base {
		if b, ok := record.Value(def.Key).AsBool(); ok {
			if b {
				hasTrue = true
			} else {
				hasFalse = true
			}
		}
		if hasTrue && hasFalse {
			break
		}
	}

	var trueCount, falseCount int
	for _, record := range filtered {
		if b, ok := record.Value(def.Key).AsBool(); ok {
			if b {
				trueCount++
			} else {
				falseCount++
			}
		}
	}

	values := make([]types.FacetValue, 0, 2)
	if hasTrue {
		values = append(values, types.FacetValue{Value: "true", Label: "Yes", Count: trueCount})
	}
	if hasFalse {
		values = append(values, types.FacetValue{Value: "false", Label: "No", Count: falseCount})
	}

	result := resultFor(def)
	result.Values = values
	return &result
}
