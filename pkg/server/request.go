package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/vintermark/facet-engine/pkg/common/jsoncompat"
	"github.com/vintermark/facet-engine/pkg/engine"
	"github.com/vintermark/facet-engine/pkg/types"
)

// AggregateBody is the wire shape of the aggregate operation. Pricing and
// the counts flag can come from the body or from query parameters, the body
// wins when both are present.
type AggregateBody struct {
	CategoryId    string                `json:"categoryId"`
	Filters       types.AppliedFilters  `json:"filters"`
	Pricing       *types.PricingContext `json:"pricing,omitempty"`
	IncludeCounts *bool                 `json:"includeCounts,omitempty"`
}

type aggregateQuery struct {
	Region        string `schema:"region"`
	Currency      string `schema:"currency"`
	IncludeCounts *bool  `schema:"counts"`
}

// AggregateRequestFromHTTP decodes the POST body plus query parameters into
// an engine request. Counts default to on.
func AggregateRequestFromHTTP(r *http.Request) (engine.AggregationRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return engine.AggregationRequest{}, fmt.Errorf("read body: %w", err)
	}
	var wire AggregateBody
	if err := jsoncompat.Unmarshal(body, &wire); err != nil {
		return engine.AggregationRequest{}, fmt.Errorf("decode body: %w", err)
	}
	if wire.CategoryId == "" {
		return engine.AggregationRequest{}, fmt.Errorf("categoryId is required")
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	var query aggregateQuery
	if err := decoder.Decode(&query, r.URL.Query()); err != nil {
		return engine.AggregationRequest{}, fmt.Errorf("decode query: %w", err)
	}

	req := engine.AggregationRequest{
		CategoryId:    wire.CategoryId,
		Filters:       wire.Filters,
		Pricing:       types.PricingContext{RegionId: query.Region, CurrencyCode: query.Currency},
		IncludeCounts: true,
	}
	if wire.Pricing != nil {
		req.Pricing = *wire.Pricing
	}
	if query.IncludeCounts != nil {
		req.IncludeCounts = *query.IncludeCounts
	}
	if wire.IncludeCounts != nil {
		req.IncludeCounts = *wire.IncludeCounts
	}
	return req, nil
}
