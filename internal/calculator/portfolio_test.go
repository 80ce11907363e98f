package calculator

import (
	"math"
	"testing"

	"pricepilot/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_AggregatePortfolio(t *testing.T) {
	t.Run("sums revenue, cost and profit", func(t *testing.T) {
		totals := AggregatePortfolio(AggregateInput{
			Results: []domain.FinancialResult{
				{Price: 50, UnitVariableCost: 30, MonthlyQuantity: 100, ContributionMargin: 20},
				{Price: 20, UnitVariableCost: 5, MonthlyQuantity: 200, ContributionMargin: 15},
			},
			SharedFixedDefined: 2000,
			ProductFixedTotal:  500,
			CashOnHand:         10000,
		})

		require.InDelta(t, 9000, totals.Revenue, 1e-9)
		require.InDelta(t, 4000, totals.VariableCost, 1e-9)
		require.InDelta(t, 2500, totals.FixedCost, 1e-9)
		require.InDelta(t, 6500, totals.TotalCost, 1e-9)
		require.InDelta(t, 2500, totals.Profit, 1e-9)
		require.InDelta(t, 2500.0/9000*100, totals.MarginPct, 1e-9)
		require.Zero(t, totals.BurnRate)
		require.True(t, math.IsInf(totals.RunwayMonths, 1))
	})

	t.Run("fixed cost total reconciles to defined inputs, never to allocation", func(t *testing.T) {
		// allocated amounts do not appear anywhere in the input on
		// purpose: totals come from defined costs only
		totals := AggregatePortfolio(AggregateInput{
			Results:            []domain.FinancialResult{{Price: 10, MonthlyQuantity: 1}},
			SharedFixedDefined: 1234,
			ProductFixedTotal:  766,
		})
		require.InDelta(t, 2000, totals.FixedCost, 1e-9)
	})

	t.Run("paused and uncertain products are excluded from revenue", func(t *testing.T) {
		totals := AggregatePortfolio(AggregateInput{
			Results: []domain.FinancialResult{
				{Price: 50, UnitVariableCost: 30, MonthlyQuantity: 100},
				{Price: 99, UnitVariableCost: 1, MonthlyQuantity: 500, Paused: true},
				{Price: 75, UnitVariableCost: 2, QuantityUncertain: true},
			},
		})
		require.InDelta(t, 5000, totals.Revenue, 1e-9)
	})

	t.Run("burn and runway", func(t *testing.T) {
		totals := AggregatePortfolio(AggregateInput{
			Results: []domain.FinancialResult{
				{Price: 10, UnitVariableCost: 10, MonthlyQuantity: 100},
			},
			SharedFixedDefined: 2000,
			CashOnHand:         12000,
		})
		require.InDelta(t, 2000, totals.BurnRate, 1e-9)
		require.InDelta(t, 6, totals.RunwayMonths, 1e-9)
	})

	t.Run("runway is infinite exactly when revenue covers cost", func(t *testing.T) {
		profitable := AggregatePortfolio(AggregateInput{
			Results:    []domain.FinancialResult{{Price: 30, UnitVariableCost: 10, MonthlyQuantity: 100}},
			CashOnHand: 500,
		})
		require.True(t, math.IsInf(profitable.RunwayMonths, 1))

		losing := AggregatePortfolio(AggregateInput{
			Results:            []domain.FinancialResult{{Price: 30, UnitVariableCost: 10, MonthlyQuantity: 100}},
			SharedFixedDefined: 5000,
			CashOnHand:         500,
		})
		require.False(t, math.IsInf(losing.RunwayMonths, 1))
	})

	t.Run("loss with no cash means zero runway", func(t *testing.T) {
		totals := AggregatePortfolio(AggregateInput{
			Results:            []domain.FinancialResult{},
			SharedFixedDefined: 1000,
		})
		require.Zero(t, totals.RunwayMonths)
	})

	t.Run("zero revenue guards the margin division", func(t *testing.T) {
		totals := AggregatePortfolio(AggregateInput{
			SharedFixedDefined: 1000,
		})
		require.Zero(t, totals.MarginPct)
	})
}
