package types

import "errors"

type ItemId uint32

// PriceFacetKey is the key of the built-in price facet. It is not backed by
// any attribute template and is always a candidate for a category.
const PriceFacetKey = "price"

var (
	ErrNotFound = errors.New("not found")
	ErrUpstream = errors.New("upstream failure")
)

// PricingContext selects the region/currency under which variant prices are
// calculated by the catalog. The engine treats calculated prices as opaque
// integer minor units and performs no conversion itself.
type PricingContext struct {
	RegionId     string `json:"regionId" schema:"region"`
	CurrencyCode string `json:"currencyCode" schema:"currency"`
}

// CategoryNode is one node of the category tree returned by the catalog.
type CategoryNode struct {
	Id       string          `json:"id"`
	Name     string          `json:"name,omitempty"`
	Children []*CategoryNode `json:"children,omitempty"`
}

type AggregationType string

const (
	AggregationTerm      AggregationType = "term"
	AggregationRange     AggregationType = "range"
	AggregationHistogram AggregationType = "histogram"
	AggregationBoolean   AggregationType = "boolean"
	AggregationPrice     AggregationType = "price"
)

// RangeBucket is an optional display bucket configured on a range facet.
// Opaque to the engine, echoed through to the UI.
type RangeBucket struct {
	Label string  `json:"label"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
}

type RangeConfig struct {
	Min     *float64      `json:"min,omitempty"`
	Max     *float64      `json:"max,omitempty"`
	Step    *float64      `json:"step,omitempty"`
	Buckets []RangeBucket `json:"buckets,omitempty"`
}

// FacetConfig is the facet part of an attribute definition. Long-lived
// configuration owned by the template admin, immutable for the duration of an
// aggregation call.
type FacetConfig struct {
	IsFacet         bool            `json:"isFacet"`
	AggregationType AggregationType `json:"aggregationType,omitempty"`
	DisplayType     string          `json:"displayType,omitempty"`
	ShowCount       bool            `json:"showCount,omitempty"`
	DisplayPriority int             `json:"displayPriority,omitempty"`
	Range           *RangeConfig    `json:"range,omitempty"`
	MaxDisplayItems int             `json:"maxDisplayItems,omitempty"`
}

type AttributeDefinition struct {
	Key    string       `json:"key"`
	Label  string       `json:"label"`
	Type   string       `json:"type"` // text, number, boolean, select
	Config *FacetConfig `json:"facetConfig,omitempty"`
}

func (d *AttributeDefinition) IsFacet() bool {
	return d.Config != nil && d.Config.IsFacet
}

type AttributeTemplate struct {
	Id         string                `json:"id"`
	Name       string                `json:"name,omitempty"`
	Active     bool                  `json:"active"`
	Attributes []AttributeDefinition `json:"attributes"`
}

// FacetDefinition is one facet applicable to a category: either derived from
// an attribute definition or a built-in system facet.
type FacetDefinition struct {
	Key             string          `json:"key"`
	Label           string          `json:"label"`
	Type            string          `json:"type,omitempty"`
	AggregationType AggregationType `json:"aggregationType"`
	DisplayPriority int             `json:"displayPriority"`
	Config          *FacetConfig    `json:"config,omitempty"`
}

// PriceFacetDefinition returns the built-in price facet. Priority 0 keeps it
// first in any merged facet list.
func PriceFacetDefinition() FacetDefinition {
	return FacetDefinition{
		Key:             PriceFacetKey,
		Label:           "Price",
		Type:            "number",
		AggregationType: AggregationPrice,
		DisplayPriority: 0,
		Config: &FacetConfig{
			IsFacet:         true,
			AggregationType: AggregationPrice,
			DisplayType:     "slider",
			ShowCount:       false,
		},
	}
}
