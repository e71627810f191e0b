package filter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vintermark/facet-engine/pkg/types"
)

// Evaluator computes the base and filtered item sets for one request. The
// base set enumerates everything a shopper could still select, so it is never
// narrowed by the applied filters, only the filtered set is.
type Evaluator struct {
	catalog types.CatalogQuery
	logger  zerolog.Logger
}

func NewEvaluator(catalog types.CatalogQuery, logger zerolog.Logger) *Evaluator {
	return &Evaluator{catalog: catalog, logger: logger}
}

// BaseSet returns all published items in scope for the categories, variant
// prices resolved for the pricing context.
func (e *Evaluator) BaseSet(ctx context.Context, categoryIds []string, pricing types.PricingContext) ([]types.CatalogItem, error) {
	items, err := e.catalog.ListItems(ctx, categoryIds, pricing)
	if err != nil {
		e.logger.Error().
			Err(err).
			Int("categories", len(categoryIds)).
			Msg("base set fetch failed")
		return nil, fmt.Errorf("list items: %w", err)
	}
	published := make([]types.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Published {
			published = append(published, item)
		}
	}
	return published, nil
}

// FilteredSet fetches an equivalent base query and narrows it by the applied
// filters. With no filters the base set comes back unchanged.
func (e *Evaluator) FilteredSet(ctx context.Context, categoryIds []string, filters types.AppliedFilters, pricing types.PricingContext) ([]types.CatalogItem, error) {
	items, err := e.BaseSet(ctx, categoryIds, pricing)
	if err != nil {
		return nil, err
	}
	if filters.IsEmpty() {
		return items, nil
	}

	if priceRange, ok := filters.PriceFilter(); ok {
		items = narrowByPrice(items, priceRange)
	}

	attributeKeys := filters.AttributeKeys()
	if len(attributeKeys) == 0 {
		return items, nil
	}

	ids := make([]types.ItemId, len(items))
	for i, item := range items {
		ids[i] = item.Id
	}
	records, err := e.catalog.ListItemAttributes(ctx, ids)
	if err != nil {
		e.logger.Error().
			Err(err).
			Int("items", len(ids)).
			Msg("attribute fetch for filtering failed")
		return nil, fmt.Errorf("list item attributes: %w", err)
	}
	return NarrowByAttributes(items, AttributesById(records), filters), nil
}

// AttributesById indexes attribute records by item id.
func AttributesById(records []types.ItemAttributes) map[types.ItemId]*types.ItemAttributes {
	byId := make(map[types.ItemId]*types.ItemAttributes, len(records))
	for i := range records {
		byId[records[i].ItemId] = &records[i]
	}
	return byId
}

// narrowByPrice keeps items where any variant price falls inside the range.
func narrowByPrice(items []types.CatalogItem, priceRange types.PriceRange) []types.CatalogItem {
	matched := make([]types.CatalogItem, 0, len(items))
	for _, item := range items {
		for _, variant := range item.Variants {
			if priceRange.MatchesMinor(variant.CalculatedPrice) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// NarrowByAttributes applies every non-price filter conjunctively: an item
// survives only if it matches each filtered key. Within one key a list filter
// is disjunctive. Items without attribute data for a filtered key never match
// that filter.
func NarrowByAttributes(items []types.CatalogItem, attributes map[types.ItemId]*types.ItemAttributes, filters types.AppliedFilters) []types.CatalogItem {
	keys := knownKeys(filters.AttributeKeys(), attributes)
	if len(keys) == 0 {
		return items
	}
	matched := make([]types.CatalogItem, 0, len(items))
	for _, item := range items {
		record := attributes[item.Id]
		if matchesAllKeys(record, keys, filters) {
			matched = append(matched, item)
		}
	}
	return matched
}

// knownKeys keeps only filter keys that at least one record in scope carries
// a value for. Keys of removed attributes are ignored rather than emptying
// the result.
func knownKeys(keys []string, attributes map[types.ItemId]*types.ItemAttributes) []string {
	known := make([]string, 0, len(keys))
	for _, key := range keys {
		for _, record := range attributes {
			if record.HasValue(key) {
				known = append(known, key)
				break
			}
		}
	}
	return known
}

func matchesAllKeys(record *types.ItemAttributes, keys []string, filters types.AppliedFilters) bool {
	for _, key := range keys {
		scalars := filters.ScalarsFor(key)
		if len(scalars) == 0 {
			// Malformed filter value, not applicable rather than an error.
			continue
		}
		if record == nil {
			return false
		}
		value := record.Value(key)
		if value.IsZero() {
			return false
		}
		if !matchesAny(value, scalars) {
			return false
		}
	}
	return true
}

func matchesAny(value types.AttributeValue, scalars []any) bool {
	for _, scalar := range scalars {
		if value.EqualsScalar(scalar) {
			return true
		}
	}
	return false
}
