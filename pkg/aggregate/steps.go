package aggregate

// StepForSpan derives a slider step for a numeric attribute facet when no
// explicit step is configured.
func StepForSpan(span float64) float64 {
	switch {
	case span <= 10:
		return 1
	case span <= 100:
		return 5
	case span <= 1000:
		return 10
	}
	return 50
}

// PriceStepForSpan derives the step for the price facet. The span is in
// major units and price sliders favor coarser steps.
func PriceStepForSpan(span float64) float64 {
	switch {
	case span <= 100:
		return 5
	case span <= 500:
		return 10
	case span <= 1000:
		return 25
	case span <= 5000:
		return 50
	}
	return 100
}
