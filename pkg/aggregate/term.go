package aggregate

import (
	"sort"

	"github.com/vintermark/facet-engine/pkg/types"
)

// TermAggregator buckets categorical values. The universe comes from the
// base records so options stay visible while the user filters, counts come
// from the filtered records.
type TermAggregator struct{}

func (TermAggregator) Aggregate(def types.FacetDefinition, base, filtered []*types.ItemAttributes) *types.FacetResult {
	universe := map[string]struct{}{}
	for _, record := range base {
		if term, ok := record.Value(def.Key).Term(); ok {
			universe[term] = struct{}{}
		}
	}

	counts := make(map[string]int, len(universe))
	for _, record := range filtered {
		if term, ok := record.Value(def.Key).Term(); ok {
			counts[term]++
		}
	}

	values := make([]types.FacetValue, 0, len(universe))
	for term := range universe {
		values = append(values, types.FacetValue{
			Value: term,
			Label: term,
			Count: counts[term],
		})
	}
	// Lexicographic label order keeps the option list stable between
	// requests with identical data.
	sort.Slice(values, func(i, j int) bool {
		return values[i].Label < values[j].Label
	})

	result := resultFor(def)
	result.Values = values
	return &result
}
