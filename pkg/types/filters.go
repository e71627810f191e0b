package types

// AppliedFilters maps a facet key to the user's current selection: a scalar,
// a list of scalars (OR within the facet) or, for the price facet, a
// {min,max} range. Values keep their decoded JSON shape so the response can
// echo them verbatim. Keys that do not resolve to a current facet are
// ignored, never rejected.
type AppliedFilters map[string]any

func (f AppliedFilters) IsEmpty() bool {
	return len(f) == 0
}

func (f AppliedFilters) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// AttributeKeys returns every filter key except the price facet, which is
// evaluated against variant prices rather than attribute data.
func (f AppliedFilters) AttributeKeys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		if key != PriceFacetKey {
			keys = append(keys, key)
		}
	}
	return keys
}

// PriceRange is the price filter expressed in major units. A nil bound is
// unconstrained on that side.
type PriceRange struct {
	Min *float64
	Max *float64
}

// MatchesMinor reports whether a calculated price in minor units falls inside
// the range. Bounds are scaled by 100 and inclusive. Non-positive prices mean
// "no price data" and never match.
func (r PriceRange) MatchesMinor(price int) bool {
	if price <= 0 {
		return false
	}
	if r.Min != nil && float64(price) < *r.Min*100 {
		return false
	}
	if r.Max != nil && float64(price) > *r.Max*100 {
		return false
	}
	return true
}

// PriceFilter extracts the price range from the applied filters. A malformed
// shape is reported as absent, the aggregation never hard-fails on one bad
// filter value.
func (f AppliedFilters) PriceFilter() (PriceRange, bool) {
	raw, ok := f[PriceFacetKey]
	if !ok {
		return PriceRange{}, false
	}
	shaped, ok := raw.(map[string]any)
	if !ok {
		return PriceRange{}, false
	}
	r := PriceRange{
		Min: numberIn(shaped, "min"),
		Max: numberIn(shaped, "max"),
	}
	if r.Min == nil && r.Max == nil {
		return PriceRange{}, false
	}
	return r, true
}

func numberIn(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

// ScalarsFor flattens the filter value for key into the scalar list an item
// value must match one of. A scalar becomes a single-element list. Nested
// non-scalar entries are dropped.
func (f AppliedFilters) ScalarsFor(key string) []any {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	switch typed := raw.(type) {
	case []any:
		scalars := make([]any, 0, len(typed))
		for _, v := range typed {
			switch v.(type) {
			case string, float64, int, bool:
				scalars = append(scalars, v)
			}
		}
		return scalars
	case []string:
		scalars := make([]any, len(typed))
		for i, v := range typed {
			scalars[i] = v
		}
		return scalars
	case string, float64, int, bool:
		return []any{typed}
	}
	return nil
}
