package calculator

import "math"

type BreakEvenResult struct {
	ContributionMargin float64

	// BreakEvenUnits is only meaningful when Reachable is true. An
	// unreachable break-even (zero or negative contribution margin
	// with fixed costs to cover) reports 0 units, and callers must
	// not read that as "already achieved".
	BreakEvenUnits int
	Reachable      bool
}

// AnalyzeBreakEven computes the per-product break-even point: the unit
// count at which contribution margin exactly covers the product's
// monthly fixed cost burden (allocated share plus product-specific).
func AnalyzeBreakEven(price, unitVariableCost, monthlyFixedCost float64) BreakEvenResult {
	contribution := price - unitVariableCost
	fixed := sanitizeAmount(monthlyFixedCost)

	if fixed == 0 {
		return BreakEvenResult{
			ContributionMargin: contribution,
			BreakEvenUnits:     0,
			Reachable:          true,
		}
	}
	if contribution <= 0 {
		return BreakEvenResult{
			ContributionMargin: contribution,
			BreakEvenUnits:     0,
			Reachable:          false,
		}
	}
	return BreakEvenResult{
		ContributionMargin: contribution,
		BreakEvenUnits:     int(math.Ceil(fixed / contribution)),
		Reachable:          true,
	}
}

// PortfolioBreakEven computes the quantity-weighted average contribution
// margin and the portfolio-level break-even unit count. Products enter
// as parallel slices of contribution margin and monthly quantity.
// A non-positive weighted contribution yields 0 units (division guard).
func PortfolioBreakEven(contributions, quantities []float64, totalFixedCost float64) (weightedAvgContribution, breakEvenUnits float64) {
	weightedSum := 0.0
	quantitySum := 0.0
	for i := range contributions {
		qty := sanitizeAmount(quantities[i])
		weightedSum += contributions[i] * qty
		quantitySum += qty
	}
	if quantitySum == 0 {
		return 0, 0
	}
	weightedAvgContribution = weightedSum / quantitySum
	if weightedAvgContribution <= 0 {
		return weightedAvgContribution, 0
	}
	return weightedAvgContribution, sanitizeAmount(totalFixedCost) / weightedAvgContribution
}
