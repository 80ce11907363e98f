package service

import (
	"time"

	"pricepilot/internal/calculator"
	"pricepilot/internal/domain"

	"go.uber.org/zap"
)

// PricingEngine runs the full computation pipeline over one snapshot.
type PricingEngine interface {
	Compute(snapshot domain.Snapshot) domain.Report
}

type pricingEngineHandler struct {
	Logger      *zap.SugaredLogger
	Multipliers calculator.ScenarioMultipliers
}

func NewPricingEngine(log *zap.SugaredLogger) PricingEngine {
	return pricingEngineHandler{
		Logger:      log,
		Multipliers: calculator.DefaultScenarioMultipliers(),
	}
}

// Compute is a pure function over the snapshot: cost composition, fixed
// cost allocation, pricing, break-even, scenarios, aggregation, then
// diagnostics, strictly in that order. Identical snapshots yield
// identical reports.
func (h pricingEngineHandler) Compute(snapshot domain.Snapshot) domain.Report {
	start := time.Now()

	type productState struct {
		product          domain.Product
		unitVariableCost float64
		quantity         float64
		quantityKnown    bool
	}

	states := make([]productState, 0, len(snapshot.Products))
	for _, p := range snapshot.Products {
		qty, known := p.Quantity.Resolve()
		states = append(states, productState{
			product:          p,
			unitVariableCost: calculator.ComposeUnitCost(p.CostItems, snapshot.Waste.RateFor(p)),
			quantity:         qty,
			quantityKnown:    known,
		})
	}

	// paused products keep their cost configuration but carry no share
	// of the fixed cost pool and no quantity
	allocProducts := []calculator.AllocationProduct{}
	for _, s := range states {
		if s.product.Paused {
			continue
		}
		allocProducts = append(allocProducts, calculator.AllocationProduct{
			ID:               s.product.ID,
			Quantity:         s.quantity,
			UnitVariableCost: s.unitVariableCost,
		})
	}

	sharedFixedTotal := snapshot.SharedFixedCostTotal()
	allocation := calculator.AllocateFixedCosts(allocProducts, sharedFixedTotal, snapshot.Allocation)

	results := make([]domain.FinancialResult, 0, len(states))
	formulaFallbacks := []string{}
	for _, s := range states {
		p := s.product

		allocatedMonthly := allocation.AmountByProduct[p.ID]
		allocatedPerUnit := allocation.PerUnitByProduct[p.ID]
		unitCost := s.unitVariableCost + allocatedPerUnit

		competitorAvg := 0.0
		if p.CompetitorRange != nil {
			competitorAvg = p.CompetitorRange.Average()
		}

		priced := calculator.PriceProduct(calculator.PriceInput{
			UnitCost:         unitCost,
			UnitVariableCost: s.unitVariableCost,
			Strategy:         snapshot.Strategy,
			CompetitorAvg:    competitorAvg,
			CompetitorRange:  p.CompetitorRange,
			HigherValue:      p.HigherValue,
			PinnedPrice:      p.PinnedPrice,
		})
		if priced.FormulaFallback {
			formulaFallbacks = append(formulaFallbacks, p.Name)
		}

		productFixedMonthly := p.FixedCostTotal()
		fixedBurden := allocatedMonthly + productFixedMonthly

		be := calculator.AnalyzeBreakEven(priced.Price, s.unitVariableCost, fixedBurden)

		result := domain.FinancialResult{
			ProductID: p.ID,
			Name:      p.Name,

			UnitVariableCost:      s.unitVariableCost,
			AllocatedRatioPct:     allocation.RatioPctByProduct[p.ID],
			AllocatedFixedMonthly: allocatedMonthly,
			AllocatedFixedPerUnit: allocatedPerUnit,
			ProductFixedMonthly:   productFixedMonthly,
			UnitCost:              unitCost,

			Price:                priced.Price,
			AchievedMarginPct:    priced.AchievedMarginPct,
			PricePinned:          priced.Pinned,
			CompetitorAvg:        competitorAvg,
			OutOfCompetitorRange: priced.OutOfCompetitorRange,

			QuantityUncertain: !s.quantityKnown,
			Paused:            p.Paused,

			ContributionMargin: be.ContributionMargin,
			BreakEvenUnits:     be.BreakEvenUnits,
			BreakEvenReachable: be.Reachable,
		}

		if s.quantityKnown && !p.Paused {
			result.MonthlyQuantity = s.quantity
			result.Revenue = priced.Price * s.quantity
			result.TotalCost = s.unitVariableCost*s.quantity + fixedBurden
			result.Profit = result.Revenue - result.TotalCost
			result.Scenarios = calculator.ProjectScenarios(calculator.ScenarioInput{
				Price:            priced.Price,
				UnitVariableCost: s.unitVariableCost,
				MonthlyFixedCost: fixedBurden,
				BaseQuantity:     s.quantity,
			}, h.Multipliers)
		}

		results = append(results, result)
	}

	totals := calculator.AggregatePortfolio(calculator.AggregateInput{
		Results:            results,
		SharedFixedDefined: sharedFixedTotal,
		ProductFixedTotal:  snapshot.ProductFixedCostTotal(),
		CashOnHand:         snapshot.CashOnHand,
	})

	// summed in slice order so repeated runs add in the same order
	allocatedTotal := 0.0
	for _, p := range allocProducts {
		allocatedTotal += allocation.AmountByProduct[p.ID]
	}

	diagnostics := calculator.GenerateDiagnostics(calculator.DiagnosticsInput{
		Totals:    totals,
		Results:   results,
		Benchmark: domain.BenchmarkForSector(snapshot.Sector),
		Strategy:  snapshot.Strategy,

		AllocatedSharedTotal:         allocatedTotal,
		DefinedSharedTotal:           sharedFixedTotal,
		AllocationSubstituted:        allocation.Substituted,
		AllocationSubstitutionReason: allocation.SubstitutionReason,
		FormulaFallbackProducts:      formulaFallbacks,
	})

	if h.Logger != nil {
		h.Logger.Debugw("computed pricing report",
			"products", len(results),
			"diagnostics", len(diagnostics),
			"allocationMethod", allocation.Method,
			"formulaFallbacks", len(formulaFallbacks),
			"durationMs", time.Since(start).Milliseconds(),
		)
	}

	return domain.Report{
		Results:     results,
		Totals:      totals,
		Diagnostics: diagnostics,
	}
}
