package aggregate

import (
	"math"

	"github.com/vintermark/facet-engine/pkg/types"
)

// AggregatePrice resolves the price facet window over the base item set.
// Price is a derived, variant-level, currency-dependent quantity, so this
// strategy reads catalog items instead of attribute records. Prices are
// stored in minor units and the window is reported in major units, floored
// at the low end and ceiled at the high end, which can make the reported
// window up to one major unit wider than the data.
//
// Returns nil when no variant in the base set carries a positive price, the
// caller then omits the facet entirely.
func AggregatePrice(def types.FacetDefinition, base []types.CatalogItem) *types.FacetResult {
	var (
		minPrice, maxPrice int
		seen               bool
	)
	for _, item := range base {
		for _, price := range item.PositivePrices() {
			if !seen {
				minPrice, maxPrice = price, price
				seen = true
				continue
			}
			minPrice = min(minPrice, price)
			maxPrice = max(maxPrice, price)
		}
	}
	if !seen {
		return nil
	}

	lower := math.Floor(float64(minPrice) / 100)
	upper := math.Ceil(float64(maxPrice) / 100)

	result := resultFor(def)
	result.Range = &types.FacetRange{
		Min:  lower,
		Max:  upper,
		Step: PriceStepForSpan(upper - lower),
	}
	return &result
}
