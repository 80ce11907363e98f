package calculator

import (
	"math"

	"pricepilot/internal/domain"
)

// maxWasteRatePct caps the waste rate below 100 so the gross-up divisor
// never reaches zero.
const maxWasteRatePct = 99.9

// ComposeUnitCost derives the per-unit variable cost of a product from
// its cost items, grossed up for yield loss when a waste rate applies.
// Spending on materials that are partially wasted must be inflated so
// the cost per sellable unit is captured: base / (1 - w/100).
//
// Malformed item amounts degrade to zero; the function never fails.
func ComposeUnitCost(items []domain.CostItem, wasteRatePct float64) float64 {
	base := 0.0
	for _, item := range items {
		base += sanitizeAmount(item.Amount)
	}

	w := clampWasteRate(wasteRatePct)
	if w == 0 {
		return base
	}
	return base / (1 - w/100)
}

func clampWasteRate(w float64) float64 {
	if math.IsNaN(w) || w <= 0 {
		return 0
	}
	if w >= 100 {
		return maxWasteRatePct
	}
	return w
}

func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
