package engine

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintermark/facet-engine/pkg/catalog"
	"github.com/vintermark/facet-engine/pkg/types"
)

func attrs(values map[string]any) map[string]types.AttributeValue {
	converted := make(map[string]types.AttributeValue, len(values))
	for key, value := range values {
		converted[key] = types.ValueOf(value)
	}
	return converted
}

func facetAttr(key, valueType string, aggregation types.AggregationType, priority int) types.AttributeDefinition {
	return types.AttributeDefinition{
		Key:   key,
		Label: key,
		Type:  valueType,
		Config: &types.FacetConfig{
			IsFacet:         true,
			AggregationType: aggregation,
			ShowCount:       true,
			DisplayPriority: priority,
		},
	}
}

// cameraStore builds the shared camera fixture:
//
//	item 1: Canon / FF   / wifi true  / 1500.00
//	item 2: Canon / APSC / wifi false /  800.00
//	item 3: Sony  / FF   / wifi true  / 2300.00
func cameraStore() *catalog.Memory {
	store := catalog.NewMemory()
	store.AddCategory("cameras", "Cameras", "")
	store.AddItem(types.CatalogItem{Id: 1, Categories: []string{"cameras"}, Published: true, Variants: []types.Variant{{CalculatedPrice: 150000}}})
	store.AddItem(types.CatalogItem{Id: 2, Categories: []string{"cameras"}, Published: true, Variants: []types.Variant{{CalculatedPrice: 80000}}})
	store.AddItem(types.CatalogItem{Id: 3, Categories: []string{"cameras"}, Published: true, Variants: []types.Variant{{CalculatedPrice: 230000}}})
	store.SetItemAttributes(types.ItemAttributes{ItemId: 1, TemplateId: "tpl", Values: attrs(map[string]any{"brand": "Canon", "sensor": "FF", "wifi": true})})
	store.SetItemAttributes(types.ItemAttributes{ItemId: 2, TemplateId: "tpl", Values: attrs(map[string]any{"brand": "Canon", "sensor": "APSC", "wifi": false})})
	store.SetItemAttributes(types.ItemAttributes{ItemId: 3, TemplateId: "tpl", Values: attrs(map[string]any{"brand": "Sony", "sensor": "FF", "wifi": true})})
	store.AddTemplate(types.AttributeTemplate{Id: "tpl", Active: true, Attributes: []types.AttributeDefinition{
		facetAttr("brand", "select", types.AggregationTerm, 2),
		facetAttr("sensor", "select", types.AggregationTerm, 3),
		facetAttr("wifi", "boolean", types.AggregationBoolean, 4),
	}})
	return store
}

func newOrchestrator(store *catalog.Memory) *Orchestrator {
	return New(store, zerolog.Nop())
}

func facetByKey(t *testing.T, response types.AggregationResponse, key string) types.FacetResult {
	t.Helper()
	for _, facet := range response.Facets {
		if facet.Key == key {
			return facet
		}
	}
	t.Fatalf("facet %q missing from %v", key, response.Facets)
	return types.FacetResult{}
}

func offeredValues(facet types.FacetResult) []string {
	values := make([]string, len(facet.Values))
	for i, v := range facet.Values {
		values[i] = v.Value
	}
	return values
}

func TestAggregateOptionsStableUnderFiltering(t *testing.T) {
	o := newOrchestrator(cameraStore())
	ctx := context.Background()

	unfiltered := o.Aggregate(ctx, AggregationRequest{CategoryId: "cameras", IncludeCounts: true})
	filtered := o.Aggregate(ctx, AggregationRequest{
		CategoryId:    "cameras",
		Filters:       types.AppliedFilters{"brand": "Canon"},
		IncludeCounts: true,
	})

	assert.Equal(t,
		offeredValues(facetByKey(t, unfiltered, "brand")),
		offeredValues(facetByKey(t, filtered, "brand")),
		"applying brand=Canon must not hide Sony as a selectable option")

	brand := facetByKey(t, filtered, "brand")
	counts := map[string]int{}
	for _, v := range brand.Values {
		counts[v.Value] = v.Count
	}
	assert.Equal(t, 2, counts["Canon"])
	assert.Equal(t, 0, counts["Sony"], "still offered, with a zero count under the filter")
}

func TestAggregateConjunctionAcrossKeys(t *testing.T) {
	o := newOrchestrator(cameraStore())
	response := o.Aggregate(context.Background(), AggregationRequest{
		CategoryId:    "cameras",
		Filters:       types.AppliedFilters{"brand": "Canon", "sensor": "FF"},
		IncludeCounts: true,
	})

	// Only item 1 survives both filters.
	sensor := facetByKey(t, response, "sensor")
	counts := map[string]int{}
	for _, v := range sensor.Values {
		counts[v.Value] = v.Count
	}
	assert.Equal(t, 1, counts["FF"])
	assert.Equal(t, 0, counts["APSC"])
}

func TestAggregateFacetOrderPriceFirst(t *testing.T) {
	o := newOrchestrator(cameraStore())
	response := o.Aggregate(context.Background(), AggregationRequest{CategoryId: "cameras", IncludeCounts: true})

	keys := make([]string, len(response.Facets))
	for i, facet := range response.Facets {
		keys[i] = facet.Key
	}
	assert.Equal(t, []string{types.PriceFacetKey, "brand", "sensor", "wifi"}, keys)
}

func TestAggregateEchoesAppliedFiltersVerbatim(t *testing.T) {
	o := newOrchestrator(cameraStore())
	filters := types.AppliedFilters{
		"brand":             []any{"Canon", "Sony"},
		"discontinued":      "yes", // no longer a facet, still echoed
		types.PriceFacetKey: map[string]any{"min": 100.0},
	}
	response := o.Aggregate(context.Background(), AggregationRequest{
		CategoryId:    "cameras",
		Filters:       filters,
		IncludeCounts: true,
	})
	assert.Equal(t, filters, response.AppliedFilters)
}

func TestAggregateEmptyCategory(t *testing.T) {
	store := catalog.NewMemory()
	store.AddCategory("empty", "Empty", "")
	o := newOrchestrator(store)

	response := o.Aggregate(context.Background(), AggregationRequest{CategoryId: "empty", IncludeCounts: true})
	assert.Equal(t, 0, response.TotalProducts)
	require.Len(t, response.Facets, 1, "system facet shell only")
	price := response.Facets[0]
	assert.Equal(t, types.PriceFacetKey, price.Key)
	assert.Empty(t, price.Values)
	assert.Nil(t, price.Range)
}

func TestAggregatePriceDegeneracy(t *testing.T) {
	store := catalog.NewMemory()
	store.AddCategory("unpriced", "Unpriced", "")
	store.AddItem(types.CatalogItem{Id: 1, Categories: []string{"unpriced"}, Published: true, Variants: []types.Variant{{CalculatedPrice: 0}}})
	store.AddItem(types.CatalogItem{Id: 2, Categories: []string{"unpriced"}, Published: true})
	store.SetItemAttributes(types.ItemAttributes{ItemId: 1, TemplateId: "tpl", Values: attrs(map[string]any{"brand": "Canon"})})
	store.SetItemAttributes(types.ItemAttributes{ItemId: 2, TemplateId: "tpl", Values: attrs(map[string]any{"brand": "Sony"})})
	store.AddTemplate(types.AttributeTemplate{Id: "tpl", Active: true, Attributes: []types.AttributeDefinition{
		facetAttr("brand", "select", types.AggregationTerm, 1),
	}})
	o := newOrchestrator(store)

	response := o.Aggregate(context.Background(), AggregationRequest{CategoryId: "unpriced", IncludeCounts: true})
	assert.Equal(t, 2, response.TotalProducts, "total reflects the true item count")
	for _, facet := range response.Facets {
		assert.NotEqual(t, types.PriceFacetKey, facet.Key, "zero-priced category must omit the price facet")
	}
	assert.Len(t, facetByKey(t, response, "brand").Values, 2)
}

func TestAggregatePriceRange(t *testing.T) {
	o := newOrchestrator(cameraStore())
	response := o.Aggregate(context.Background(), AggregationRequest{CategoryId: "cameras", IncludeCounts: true})
	price := facetByKey(t, response, types.PriceFacetKey)
	require.NotNil(t, price.Range)
	assert.Equal(t, 800.0, price.Range.Min)
	assert.Equal(t, 2300.0, price.Range.Max)
	assert.Equal(t, 50.0, price.Range.Step)
}

type failingCatalog struct {
	types.CatalogQuery
}

func (failingCatalog) FetchCategoryTree(context.Context, string) (*types.CategoryNode, error) {
	return nil, types.ErrUpstream
}

func (failingCatalog) ListItems(context.Context, []string, types.PricingContext) ([]types.CatalogItem, error) {
	return nil, types.ErrUpstream
}

func TestAggregateDegradesOnPortFailure(t *testing.T) {
	o := New(failingCatalog{}, zerolog.Nop())
	filters := types.AppliedFilters{"brand": "Canon"}

	response := o.Aggregate(context.Background(), AggregationRequest{
		CategoryId:    "cameras",
		Filters:       filters,
		IncludeCounts: true,
	})
	assert.Equal(t, "cameras", response.CategoryId)
	assert.Equal(t, 0, response.TotalProducts)
	assert.Empty(t, response.Facets)
	assert.Equal(t, filters, response.AppliedFilters, "filters echoed even on degrade")
}

func TestAggregateDropsUnknownAggregationType(t *testing.T) {
	store := cameraStore()
	store.AddTemplate(types.AttributeTemplate{Id: "exotic", Active: true, Attributes: []types.AttributeDefinition{
		facetAttr("hologram", "select", "quantum", 1),
	}})
	store.SetItemAttributes(types.ItemAttributes{ItemId: 1, TemplateId: "exotic", Values: attrs(map[string]any{"hologram": "yes"})})
	o := newOrchestrator(store)

	response := o.Aggregate(context.Background(), AggregationRequest{CategoryId: "cameras", IncludeCounts: true})
	for _, facet := range response.Facets {
		assert.NotEqual(t, "hologram", facet.Key, "unknown aggregation type is dropped, not fatal")
	}
	assert.NotEmpty(t, response.Facets, "the rest of the aggregation proceeds")
}

func TestAggregateSkipsFacetWithoutBaseData(t *testing.T) {
	store := cameraStore()
	store.AddTemplate(types.AttributeTemplate{Id: "tpl2", Active: true, Attributes: []types.AttributeDefinition{
		facetAttr("stabilizer", "select", types.AggregationTerm, 9),
	}})
	// tpl2 is referenced by an item whose record carries no stabilizer value.
	store.SetItemAttributes(types.ItemAttributes{ItemId: 3, TemplateId: "tpl2", Values: attrs(map[string]any{"brand": "Sony", "sensor": "FF", "wifi": true})})
	o := newOrchestrator(store)

	response := o.Aggregate(context.Background(), AggregationRequest{CategoryId: "cameras", IncludeCounts: true})
	for _, facet := range response.Facets {
		assert.NotEqual(t, "stabilizer", facet.Key, "facet with empty base subset is skipped")
	}
}

func TestAggregateWithoutCountsUsesBaseSet(t *testing.T) {
	o := newOrchestrator(cameraStore())
	response := o.Aggregate(context.Background(), AggregationRequest{
		CategoryId:    "cameras",
		Filters:       types.AppliedFilters{"brand": "Canon"},
		IncludeCounts: false,
	})

	// Counts fall back to the base set: the filter is not evaluated.
	brand := facetByKey(t, response, "brand")
	counts := map[string]int{}
	for _, v := range brand.Values {
		counts[v.Value] = v.Count
	}
	assert.Equal(t, 2, counts["Canon"])
	assert.Equal(t, 1, counts["Sony"])
	assert.Equal(t, 3, response.TotalProducts)
}

func TestListFacetsForCategory(t *testing.T) {
	o := newOrchestrator(cameraStore())
	defs := o.ListFacetsForCategory(context.Background(), "cameras")
	require.Len(t, defs, 4)
	assert.Equal(t, types.PriceFacetKey, defs[0].Key)
}

func TestListFacetsDegradesToSystemFacets(t *testing.T) {
	o := New(failingCatalog{}, zerolog.Nop())
	defs := o.ListFacetsForCategory(context.Background(), "cameras")
	require.Len(t, defs, 1)
	assert.Equal(t, types.PriceFacetKey, defs[0].Key)
}
