package types

// FacetValue is one selectable option of a term or boolean facet.
type FacetValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FacetRange is the resolved numeric window of a range or price facet.
type FacetRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// FacetResult is one displayable facet: options with counts for term/boolean
// types, a numeric window for range/price types.
type FacetResult struct {
	Key             string          `json:"key"`
	Label           string          `json:"label"`
	AggregationType AggregationType `json:"aggregationType"`
	DisplayType     string          `json:"displayType,omitempty"`
	Values          []FacetValue    `json:"values,omitempty"`
	Range           *FacetRange     `json:"range,omitempty"`
	ShowCount       bool            `json:"showCount"`
	MaxDisplayItems int             `json:"maxDisplayItems,omitempty"`
	DisplayPriority int             `json:"displayPriority"`
}

// AggregationResponse is the full answer for one aggregation request. The
// applied filters are echoed verbatim so clients can reconcile state.
type AggregationResponse struct {
	CategoryId     string         `json:"categoryId"`
	TotalProducts  int            `json:"totalProducts"`
	Facets         []FacetResult  `json:"facets"`
	AppliedFilters AppliedFilters `json:"appliedFilters"`
}
