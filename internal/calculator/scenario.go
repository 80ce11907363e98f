package calculator

import "pricepilot/internal/domain"

// ScenarioMultipliers perturb quantity only; price stays fixed across
// scenarios. That is a deliberate modeling choice: the question the
// projection answers is "what if demand differs", not "what if we
// reprice".
type ScenarioMultipliers struct {
	Worst    float64
	Expected float64
	Best     float64
}

func DefaultScenarioMultipliers() ScenarioMultipliers {
	return ScenarioMultipliers{Worst: 0.75, Expected: 1.0, Best: 1.2}
}

type ScenarioInput struct {
	Price            float64
	UnitVariableCost float64
	MonthlyFixedCost float64
	BaseQuantity     float64
}

// ProjectScenarios derives the worst/expected/best rows. All three come
// from the same projection function, so the expected row always matches
// the headline result at multiplier 1.0.
func ProjectScenarios(in ScenarioInput, m ScenarioMultipliers) []domain.ScenarioRow {
	return []domain.ScenarioRow{
		projectScenario(domain.ScenarioWorst, m.Worst, in),
		projectScenario(domain.ScenarioExpected, m.Expected, in),
		projectScenario(domain.ScenarioBest, m.Best, in),
	}
}

func projectScenario(name domain.ScenarioName, multiplier float64, in ScenarioInput) domain.ScenarioRow {
	qty := sanitizeAmount(in.BaseQuantity) * sanitizeAmount(multiplier)
	revenue := in.Price * qty
	totalCost := in.UnitVariableCost*qty + sanitizeAmount(in.MonthlyFixedCost)
	profit := revenue - totalCost

	marginPct := 0.0
	if revenue > 0 {
		marginPct = profit / revenue * 100
	}

	be := AnalyzeBreakEven(in.Price, in.UnitVariableCost, in.MonthlyFixedCost)

	return domain.ScenarioRow{
		Name:           name,
		Multiplier:     multiplier,
		Quantity:       qty,
		Revenue:        revenue,
		TotalCost:      totalCost,
		Profit:         profit,
		MarginPct:      marginPct,
		BreakEvenUnits: be.BreakEvenUnits,
	}
}
