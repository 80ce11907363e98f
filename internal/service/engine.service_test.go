package service

import (
	"math"
	"testing"

	"pricepilot/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func bakerySnapshot() domain.Snapshot {
	return domain.Snapshot{
		Products: []domain.Product{
			{
				ID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
				Name: "Sourdough loaf",
				CostItems: []domain.CostItem{
					{ID: uuid.New(), Name: "flour", Amount: 60, Kind: domain.CostKindMaterial},
					{ID: uuid.New(), Name: "labor", Amount: 40, Kind: domain.CostKindLabor},
				},
				Quantity: domain.QuantityEstimate{Method: domain.QuantityFixed, Fixed: &domain.FixedQuantity{Value: 300}},
			},
			{
				ID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
				Name: "Croissant",
				CostItems: []domain.CostItem{
					{ID: uuid.New(), Name: "butter", Amount: 30, Kind: domain.CostKindMaterial},
				},
				Quantity: domain.QuantityEstimate{Method: domain.QuantityFixed, Fixed: &domain.FixedQuantity{Value: 700}},
			},
		},
		FixedCosts: []domain.FixedCost{
			{ID: uuid.New(), Category: domain.FixedCostRent, MonthlyAmount: 1000},
		},
		Allocation: domain.AllocationConfig{Method: domain.AllocationVolume},
		Strategy:   domain.StrategyConfig{Primary: domain.StrategyCostPlus, TargetMarginPct: floatPtr(25)},
		Waste:      domain.WasteConfig{Mode: domain.WasteNone},
		CashOnHand: 12000,
		Sector:     domain.SectorFood,
	}
}

func Test_Compute(t *testing.T) {
	engine := NewPricingEngine(nil)

	t.Run("cost plus pricing with no fixed burden", func(t *testing.T) {
		snapshot := domain.Snapshot{
			Products: []domain.Product{
				{
					ID:        uuid.New(),
					Name:      "Widget",
					CostItems: []domain.CostItem{{ID: uuid.New(), Amount: 100}},
					Quantity:  domain.QuantityEstimate{Method: domain.QuantityFixed, Fixed: &domain.FixedQuantity{Value: 50}},
				},
			},
			Allocation: domain.AllocationConfig{Method: domain.AllocationEqual},
			Strategy:   domain.StrategyConfig{Primary: domain.StrategyCostPlus, TargetMarginPct: floatPtr(25)},
		}

		report := engine.Compute(snapshot)
		require.Len(t, report.Results, 1)

		r := report.Results[0]
		require.InDelta(t, 100, r.UnitVariableCost, 1e-9)
		require.InDelta(t, 125, r.Price, 1e-9)
		require.InDelta(t, 25, r.AchievedMarginPct, 1e-9)
	})

	t.Run("volume allocation splits the shared pool", func(t *testing.T) {
		report := engine.Compute(bakerySnapshot())
		require.Len(t, report.Results, 2)

		require.InDelta(t, 300, report.Results[0].AllocatedFixedMonthly, 1e-6)
		require.InDelta(t, 700, report.Results[1].AllocatedFixedMonthly, 1e-6)
	})

	t.Run("fixed cost totals reconcile to defined inputs", func(t *testing.T) {
		snapshot := bakerySnapshot()
		snapshot.Products[0].ProductFixedCosts = []domain.ProductFixedCost{
			{ID: uuid.New(), Name: "display oven", MonthlyAmount: 200},
		}

		report := engine.Compute(snapshot)
		require.InDelta(t, 1200, report.Totals.FixedCost, 1e-9)
	})

	t.Run("paused products keep configuration but carry nothing", func(t *testing.T) {
		snapshot := bakerySnapshot()
		snapshot.Products[1].Paused = true

		report := engine.Compute(snapshot)
		paused := report.Results[1]
		require.True(t, paused.Paused)
		require.Zero(t, paused.Revenue)
		require.Zero(t, paused.AllocatedFixedMonthly)
		require.InDelta(t, 30, paused.UnitVariableCost, 1e-9)

		// the whole shared pool lands on the active product
		require.InDelta(t, 1000, report.Results[0].AllocatedFixedMonthly, 1e-6)
	})

	t.Run("uncertain quantity is flagged, not zeroed silently", func(t *testing.T) {
		snapshot := bakerySnapshot()
		snapshot.Products[1].Quantity = domain.QuantityEstimate{Method: domain.QuantityUncertain}

		report := engine.Compute(snapshot)
		require.True(t, report.Results[1].QuantityUncertain)
		require.Empty(t, report.Results[1].Scenarios)

		found := false
		for _, d := range report.Diagnostics {
			if d.Title == "Products excluded for uncertain quantity" {
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run("invalid manual allocation substitutes equal and warns", func(t *testing.T) {
		snapshot := bakerySnapshot()
		snapshot.Allocation = domain.AllocationConfig{
			Method: domain.AllocationManual,
			ManualRatios: map[uuid.UUID]float64{
				snapshot.Products[0].ID: 90,
				snapshot.Products[1].ID: 40,
			},
		}

		report := engine.Compute(snapshot)
		require.InDelta(t, 500, report.Results[0].AllocatedFixedMonthly, 1e-9)
		require.InDelta(t, 500, report.Results[1].AllocatedFixedMonthly, 1e-9)

		found := false
		for _, d := range report.Diagnostics {
			if d.Title == "Fixed cost allocation fell back to equal split" {
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run("out-of-range price without clamping is flagged", func(t *testing.T) {
		snapshot := domain.Snapshot{
			Products: []domain.Product{
				{
					ID:              uuid.New(),
					Name:            "Widget",
					CostItems:       []domain.CostItem{{ID: uuid.New(), Amount: 100}},
					Quantity:        domain.QuantityEstimate{Method: domain.QuantityFixed, Fixed: &domain.FixedQuantity{Value: 50}},
					CompetitorRange: &domain.CompetitorRange{Min: 90, Max: 110},
				},
			},
			Allocation: domain.AllocationConfig{Method: domain.AllocationEqual},
			Strategy: domain.StrategyConfig{
				Primary: domain.StrategyCustom,
				Custom:  &domain.CustomPricing{Mode: domain.CustomModePrice, TargetPrice: 115},
			},
		}

		report := engine.Compute(snapshot)
		require.Len(t, report.Results, 1)

		// 115 sits above the range but within 20% of the 100 average, so
		// only the range diagnostic can catch it
		r := report.Results[0]
		require.InDelta(t, 115, r.Price, 1e-9)
		require.True(t, r.OutOfCompetitorRange)

		found := false
		for _, d := range report.Diagnostics {
			if d.Title == "Prices outside the competitor range" {
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run("runway of six months at a two thousand burn", func(t *testing.T) {
		snapshot := domain.Snapshot{
			Products: []domain.Product{
				{
					ID:        uuid.New(),
					Name:      "Widget",
					CostItems: []domain.CostItem{{ID: uuid.New(), Amount: 10}},
					Quantity:  domain.QuantityEstimate{Method: domain.QuantityFixed, Fixed: &domain.FixedQuantity{Value: 100}},
					// pin the price at cost so contribution is zero
					PinnedPrice: floatPtr(10),
				},
			},
			FixedCosts: []domain.FixedCost{
				{ID: uuid.New(), Category: domain.FixedCostRent, MonthlyAmount: 2000},
			},
			Allocation: domain.AllocationConfig{Method: domain.AllocationEqual},
			Strategy:   domain.StrategyConfig{Primary: domain.StrategyCostPlus},
			CashOnHand: 12000,
		}

		report := engine.Compute(snapshot)
		require.InDelta(t, 2000, report.Totals.BurnRate, 1e-9)
		require.InDelta(t, 6, report.Totals.RunwayMonths, 1e-9)
	})

	t.Run("profitable portfolio has infinite runway", func(t *testing.T) {
		report := engine.Compute(bakerySnapshot())
		require.True(t, math.IsInf(report.Totals.RunwayMonths, 1))
	})

	t.Run("identical snapshots produce identical reports", func(t *testing.T) {
		snapshot := bakerySnapshot()
		first := engine.Compute(snapshot)
		second := engine.Compute(snapshot)
		require.Equal(t, "", cmp.Diff(first, second))
	})
}
