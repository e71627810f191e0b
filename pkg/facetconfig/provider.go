package facetconfig

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/vintermark/facet-engine/pkg/hierarchy"
	"github.com/vintermark/facet-engine/pkg/types"
)

// Provider derives the facet definitions applicable to a category: the facet
// configured attributes of every active template used by items in scope, plus
// the built-in system facets.
type Provider struct {
	catalog  types.CatalogQuery
	resolver *hierarchy.Resolver
	logger   zerolog.Logger
}

func NewProvider(catalog types.CatalogQuery, resolver *hierarchy.Resolver, logger zerolog.Logger) *Provider {
	return &Provider{catalog: catalog, resolver: resolver, logger: logger}
}

// FacetsForCategory returns the definitions ordered by display priority
// ascending. Categories with no items, no attribute records or no active
// templates still yield the system facets, the price facet is always a
// candidate.
func (p *Provider) FacetsForCategory(ctx context.Context, categoryId string) ([]types.FacetDefinition, error) {
	categoryIds := p.resolver.ExpandList(ctx, categoryId)

	items, err := p.catalog.ListItems(ctx, categoryIds, types.PricingContext{})
	if err != nil {
		return nil, fmt.Errorf("list items for %q: %w", categoryId, err)
	}
	if len(items) == 0 {
		return SystemFacets(), nil
	}

	itemIds := make([]types.ItemId, len(items))
	for i, item := range items {
		itemIds[i] = item.Id
	}
	records, err := p.catalog.ListItemAttributes(ctx, itemIds)
	if err != nil {
		return nil, fmt.Errorf("list item attributes for %q: %w", categoryId, err)
	}

	templateIds := distinctTemplateIds(records)
	if len(templateIds) == 0 {
		return SystemFacets(), nil
	}
	templates, err := p.catalog.ListActiveTemplates(ctx, templateIds)
	if err != nil {
		return nil, fmt.Errorf("list active templates for %q: %w", categoryId, err)
	}

	byKey := map[string]types.FacetDefinition{}
	for _, template := range templates {
		if !template.Active {
			continue
		}
		for _, attribute := range template.Attributes {
			if !attribute.IsFacet() {
				continue
			}
			def := definitionFor(attribute)
			if existing, ok := byKey[def.Key]; ok && existing.DisplayPriority <= def.DisplayPriority {
				continue
			}
			byKey[def.Key] = def
		}
	}

	defs := SystemFacets()
	for _, def := range byKey {
		defs = append(defs, def)
	}
	SortByPriority(defs)
	return defs, nil
}

// SystemFacets lists the facets not derived from any attribute template.
func SystemFacets() []types.FacetDefinition {
	return []types.FacetDefinition{types.PriceFacetDefinition()}
}

// SortByPriority orders ascending by display priority, key as tiebreaker so
// equal priorities keep a stable order.
func SortByPriority(defs []types.FacetDefinition) {
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].DisplayPriority != defs[j].DisplayPriority {
			return defs[i].DisplayPriority < defs[j].DisplayPriority
		}
		return defs[i].Key < defs[j].Key
	})
}

func distinctTemplateIds(records []types.ItemAttributes) []string {
	seen := map[string]struct{}{}
	ids := make([]string, 0, 4)
	for _, record := range records {
		if record.TemplateId == "" {
			continue
		}
		if _, ok := seen[record.TemplateId]; ok {
			continue
		}
		seen[record.TemplateId] = struct{}{}
		ids = append(ids, record.TemplateId)
	}
	return ids
}

func definitionFor(attribute types.AttributeDefinition) types.FacetDefinition {
	cfg := attribute.Config
	def := types.FacetDefinition{
		Key:             attribute.Key,
		Label:           attribute.Label,
		Type:            attribute.Type,
		AggregationType: cfg.AggregationType,
		DisplayPriority: cfg.DisplayPriority,
		Config:          cfg,
	}
	if def.AggregationType == "" {
		def.AggregationType = defaultAggregation(attribute.Type)
	}
	return def
}

// defaultAggregation fills in the aggregation type for templates created
// before the facet config carried one.
func defaultAggregation(valueType string) types.AggregationType {
	switch valueType {
	case "number":
		return types.AggregationRange
	case "boolean":
		return types.AggregationBoolean
	}
	return types.AggregationTerm
}
