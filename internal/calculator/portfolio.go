package calculator

import (
	"math"

	"pricepilot/internal/domain"

	"github.com/montanaflynn/stats"
)

type AggregateInput struct {
	Results []domain.FinancialResult

	// SharedFixedDefined is the defined shared pool (fixed costs +
	// depreciation + R&D), NOT the sum of allocated amounts.
	// Allocation distributes cost, it never creates or destroys it,
	// so totals reconcile against the defined input.
	SharedFixedDefined float64
	ProductFixedTotal  float64

	CashOnHand float64
}

// AggregatePortfolio sums per-product results into portfolio totals.
// Paused and uncertain-quantity products are excluded from the
// quantity-weighted sums; their fixed costs still count.
func AggregatePortfolio(in AggregateInput) domain.PortfolioTotals {
	revenues := []float64{}
	variableCosts := []float64{}
	contributions := []float64{}
	quantities := []float64{}

	for _, r := range in.Results {
		if r.Paused || r.QuantityUncertain {
			continue
		}
		revenues = append(revenues, r.Price*r.MonthlyQuantity)
		variableCosts = append(variableCosts, r.UnitVariableCost*r.MonthlyQuantity)
		contributions = append(contributions, r.ContributionMargin)
		quantities = append(quantities, r.MonthlyQuantity)
	}

	totals := domain.PortfolioTotals{
		Revenue:      sum(revenues),
		VariableCost: sum(variableCosts),
		FixedCost:    sanitizeAmount(in.SharedFixedDefined) + sanitizeAmount(in.ProductFixedTotal),
	}
	totals.TotalCost = totals.VariableCost + totals.FixedCost
	totals.Profit = totals.Revenue - totals.TotalCost

	if totals.Revenue > 0 {
		totals.MarginPct = totals.Profit / totals.Revenue * 100
	}

	totals.BurnRate = math.Max(0, totals.TotalCost-totals.Revenue)
	totals.RunwayMonths = runway(in.CashOnHand, totals.BurnRate)

	totals.WeightedAvgContribution, totals.BreakEvenUnits = PortfolioBreakEven(contributions, quantities, totals.FixedCost)

	return totals
}

// runway returns months of cash at the current monthly loss: +Inf when
// there is no loss (sentinel, not an error), 0 when losing money with
// no cash.
func runway(cashOnHand, monthlyLoss float64) float64 {
	if monthlyLoss <= 0 {
		return math.Inf(1)
	}
	cash := sanitizeAmount(cashOnHand)
	if cash == 0 {
		return 0
	}
	return cash / monthlyLoss
}

func sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return s
}
