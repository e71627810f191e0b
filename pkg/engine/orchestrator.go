package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vintermark/facet-engine/pkg/aggregate"
	"github.com/vintermark/facet-engine/pkg/facetconfig"
	"github.com/vintermark/facet-engine/pkg/filter"
	"github.com/vintermark/facet-engine/pkg/hierarchy"
	"github.com/vintermark/facet-engine/pkg/types"
)

// Orchestrator is the façade over the aggregation pipeline: category scope,
// base and filtered sets, facet definitions, per-type aggregation, merge and
// sort. Stateless per call, every input is fetched fresh through the catalog
// query port.
type Orchestrator struct {
	catalog   types.CatalogQuery
	resolver  *hierarchy.Resolver
	evaluator *filter.Evaluator
	provider  *facetconfig.Provider
	logger    zerolog.Logger
}

func New(catalog types.CatalogQuery, logger zerolog.Logger) *Orchestrator {
	resolver := hierarchy.NewResolver(catalog, logger)
	return &Orchestrator{
		catalog:   catalog,
		resolver:  resolver,
		evaluator: filter.NewEvaluator(catalog, logger),
		provider:  facetconfig.NewProvider(catalog, resolver, logger),
		logger:    logger,
	}
}

// AggregationRequest carries the inputs of the aggregate operation. With
// IncludeCounts false the filtered set is never computed and counts fall back
// to the base set.
type AggregationRequest struct {
	CategoryId    string
	Filters       types.AppliedFilters
	Pricing       types.PricingContext
	IncludeCounts bool
}

// Aggregate computes the full facet response for a category under the
// applied filters. It never returns an error: any failure inside the
// pipeline degrades to an empty-facets response with the filters echoed, so
// callers always receive a well-formed answer.
func (o *Orchestrator) Aggregate(ctx context.Context, req AggregationRequest) types.AggregationResponse {
	aggregationsTotal.Inc()
	start := time.Now()
	defer func() {
		aggregationDuration.Observe(time.Since(start).Seconds())
	}()

	response, err := o.aggregate(ctx, req)
	if err != nil {
		aggregationsDegraded.Inc()
		o.logger.Error().
			Err(err).
			Str("categoryId", req.CategoryId).
			Msg("aggregation failed, degrading to empty response")
		return types.AggregationResponse{
			CategoryId:     req.CategoryId,
			TotalProducts:  0,
			Facets:         []types.FacetResult{},
			AppliedFilters: req.Filters,
		}
	}
	return response
}

func (o *Orchestrator) aggregate(ctx context.Context, req AggregationRequest) (types.AggregationResponse, error) {
	categoryIds := o.resolver.ExpandList(ctx, req.CategoryId)

	base, filtered, err := o.computeSets(ctx, categoryIds, req)
	if err != nil {
		return types.AggregationResponse{}, err
	}

	facets, err := o.computeFacets(ctx, req, base, filtered)
	if err != nil {
		return types.AggregationResponse{}, err
	}

	sortFacets(facets)
	return types.AggregationResponse{
		CategoryId:     req.CategoryId,
		TotalProducts:  len(base),
		Facets:         facets,
		AppliedFilters: req.Filters,
	}, nil
}

// computeSets fetches the base and filtered item sets, concurrently when both
// are needed. Without counts, or without filters, the filtered set is just
// the base set.
func (o *Orchestrator) computeSets(ctx context.Context, categoryIds []string, req AggregationRequest) (base, filtered []types.CatalogItem, err error) {
	if !req.IncludeCounts || req.Filters.IsEmpty() {
		base, err = o.evaluator.BaseSet(ctx, categoryIds, req.Pricing)
		return base, base, err
	}

	type setResult struct {
		items []types.CatalogItem
		err   error
	}
	baseCh := make(chan setResult, 1)
	filteredCh := make(chan setResult, 1)
	go func() {
		items, fetchErr := o.evaluator.BaseSet(ctx, categoryIds, req.Pricing)
		baseCh <- setResult{items: items, err: fetchErr}
	}()
	go func() {
		items, fetchErr := o.evaluator.FilteredSet(ctx, categoryIds, req.Filters, req.Pricing)
		filteredCh <- setResult{items: items, err: fetchErr}
	}()

	baseResult := <-baseCh
	filteredResult := <-filteredCh
	if baseResult.err != nil {
		return nil, nil, baseResult.err
	}
	if filteredResult.err != nil {
		return nil, nil, filteredResult.err
	}
	return baseResult.items, filteredResult.items, nil
}

// computeFacets runs the price facet and the attribute facets concurrently
// and joins before returning.
func (o *Orchestrator) computeFacets(ctx context.Context, req AggregationRequest, base, filtered []types.CatalogItem) ([]types.FacetResult, error) {
	if len(base) == 0 {
		// Empty categories keep the system facet shells so clients can
		// still render the panel.
		facets := make([]types.FacetResult, 0, 1)
		for _, def := range facetconfig.SystemFacets() {
			facets = append(facets, types.FacetResult{
				Key:             def.Key,
				Label:           def.Label,
				AggregationType: def.AggregationType,
				DisplayType:     def.Config.DisplayType,
				ShowCount:       def.Config.ShowCount,
				DisplayPriority: def.DisplayPriority,
			})
		}
		return facets, nil
	}

	var (
		wg         sync.WaitGroup
		priceFacet *types.FacetResult
		attrFacets []types.FacetResult
		attrError  error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		priceFacet = aggregate.AggregatePrice(types.PriceFacetDefinition(), base)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		attrFacets, attrError = o.attributeFacets(ctx, req.CategoryId, base, filtered)
	}()
	wg.Wait()

	if attrError != nil {
		return nil, attrError
	}

	facets := make([]types.FacetResult, 0, len(attrFacets)+1)
	if priceFacet != nil {
		facets = append(facets, *priceFacet)
	}
	facets = append(facets, attrFacets...)
	return facets, nil
}

// attributeFacets resolves the facet definitions for the category, fetches
// the attribute records once for the base set and slices the filtered subset
// out of them, then dispatches every non-price definition to its aggregator.
func (o *Orchestrator) attributeFacets(ctx context.Context, categoryId string, base, filtered []types.CatalogItem) ([]types.FacetResult, error) {
	defs, err := o.provider.FacetsForCategory(ctx, categoryId)
	if err != nil {
		return nil, err
	}

	baseIds := make([]types.ItemId, len(base))
	for i, item := range base {
		baseIds[i] = item.Id
	}
	records, err := o.catalog.ListItemAttributes(ctx, baseIds)
	if err != nil {
		return nil, err
	}

	filteredIds := types.NewItemList()
	for _, item := range filtered {
		filteredIds.Add(item.Id)
	}

	resultCh := make(chan *types.FacetResult, len(defs))
	var wg sync.WaitGroup
	for _, def := range defs {
		if def.Key == types.PriceFacetKey {
			continue
		}
		aggregator, ok := aggregate.For(def.AggregationType)
		if !ok {
			unknownAggregationType.Inc()
			o.logger.Warn().
				Str("facet", def.Key).
				Str("aggregationType", string(def.AggregationType)).
				Msg("dropping facet with unknown aggregation type")
			continue
		}

		baseRecords, filteredRecords := recordsForKey(records, filteredIds, def.Key)
		if len(baseRecords) == 0 {
			continue
		}

		wg.Add(1)
		go func(def types.FacetDefinition, aggregator aggregate.Aggregator) {
			defer wg.Done()
			resultCh <- aggregator.Aggregate(def, baseRecords, filteredRecords)
		}(def, aggregator)
	}
	wg.Wait()
	close(resultCh)

	facets := make([]types.FacetResult, 0, len(defs))
	for facet := range resultCh {
		if facet != nil {
			facets = append(facets, *facet)
		}
	}
	return facets, nil
}

// recordsForKey restricts the base records to items carrying a value for the
// key and splits out the filtered subset.
func recordsForKey(records []types.ItemAttributes, filteredIds types.ItemList, key string) (base, filtered []*types.ItemAttributes) {
	base = make([]*types.ItemAttributes, 0, len(records))
	filtered = make([]*types.ItemAttributes, 0, len(records))
	for i := range records {
		record := &records[i]
		if !record.HasValue(key) {
			continue
		}
		base = append(base, record)
		if filteredIds.Has(record.ItemId) {
			filtered = append(filtered, record)
		}
	}
	return base, filtered
}

// sortFacets orders ascending by display priority with price pinned first
// regardless of its configured priority, key as tiebreaker.
func sortFacets(facets []types.FacetResult) {
	priority := func(f types.FacetResult) int {
		if f.Key == types.PriceFacetKey {
			return -1
		}
		return f.DisplayPriority
	}
	sort.SliceStable(facets, func(i, j int) bool {
		pi, pj := priority(facets[i]), priority(facets[j])
		if pi != pj {
			return pi < pj
		}
		return facets[i].Key < facets[j].Key
	})
}

// ListFacetsForCategory is the narrow read-only operation: which facets exist
// for a category, no counts, no live ranges. Failures degrade to the system
// facets so the caller still gets a usable list.
func (o *Orchestrator) ListFacetsForCategory(ctx context.Context, categoryId string) []types.FacetDefinition {
	defs, err := o.provider.FacetsForCategory(ctx, categoryId)
	if err != nil {
		o.logger.Error().
			Err(err).
			Str("categoryId", categoryId).
			Msg("facet listing failed, returning system facets only")
		return facetconfig.SystemFacets()
	}
	return defs
}
