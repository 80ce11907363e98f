package calculator

import (
	"math"

	"pricepilot/internal/domain"

	"github.com/shopspring/decimal"
)

// minViablePriceFactor is the guardrail floor: no strategy may produce a
// price below cost x 1.05.
const minViablePriceFactor = 1.05

// skimmingTargetMargin is the margin-on-price target the skimming
// strategy inverts (price = cost / (1 - 0.45)).
const skimmingTargetMargin = 0.45

type PriceInput struct {
	// UnitCost is the full unit cost: variable plus allocated fixed
	// per unit. UnitVariableCost is exposed separately to custom
	// formulas.
	UnitCost         float64
	UnitVariableCost float64

	Strategy        domain.StrategyConfig
	CompetitorAvg   float64
	CompetitorRange *domain.CompetitorRange
	HigherValue     bool
	PinnedPrice     *float64
}

type PriceResult struct {
	Price             float64
	AchievedMarginPct float64

	// Pinned is true when the caller's explicit price was passed
	// through, skipping strategy, modifiers and guardrails.
	Pinned bool

	// Clamped is true when the price was forced into the competitor
	// range; OutOfCompetitorRange is true when clamping is disabled
	// and the price landed outside the range.
	Clamped              bool
	OutOfCompetitorRange bool

	// FormulaFallback is true when a custom formula failed to evaluate
	// and the default cost-plus margin was used instead.
	FormulaFallback bool
}

// PriceProduct computes the suggested price for one product: primary
// strategy, then secondary modifiers in caller order, then guardrails.
// The achieved margin is always computed on cost, not on price.
func PriceProduct(in PriceInput) PriceResult {
	cost := sanitizeAmount(in.UnitCost)

	if in.PinnedPrice != nil {
		price := sanitizeAmount(*in.PinnedPrice)
		return PriceResult{
			Price:             price,
			AchievedMarginPct: marginOnCost(price, cost),
			Pinned:            true,
		}
	}

	price, formulaFallback := primaryPrice(cost, in)

	for _, mod := range in.Strategy.Secondary {
		price = applyModifier(price, mod)
	}

	// cost_plus is guarded by its own margin-restore rule below, which
	// also covers targets under 5%; the generic floor would overshoot
	// them
	if in.Strategy.Primary != domain.StrategyCostPlus {
		floor := cost * minViablePriceFactor
		if price < floor {
			price = floor
		}
	}

	out := PriceResult{FormulaFallback: formulaFallback}
	if in.CompetitorRange != nil && in.CompetitorRange.Max > 0 {
		if in.Strategy.ClampToCompetitorRange {
			if price < in.CompetitorRange.Min {
				price = in.CompetitorRange.Min
				out.Clamped = true
			} else if price > in.CompetitorRange.Max {
				price = in.CompetitorRange.Max
				out.Clamped = true
			}
		} else if price < in.CompetitorRange.Min || price > in.CompetitorRange.Max {
			out.OutOfCompetitorRange = true
		}
	}

	// cost_plus promises its target margin: if the modified price
	// undershoots it, push up to the minimum restoring price, ceiled
	// to cent precision
	if in.Strategy.Primary == domain.StrategyCostPlus && !out.Clamped {
		target := clampMargin(in.Strategy.ResolvedTargetMarginPct())
		if marginOnCost(price, cost) < target {
			restored := decimal.NewFromFloat(cost).
				Mul(decimal.NewFromFloat(1 + target/100)).
				RoundUp(2)
			price = restored.InexactFloat64()
		}
	}

	out.Price = price
	out.AchievedMarginPct = marginOnCost(price, cost)
	return out
}

func primaryPrice(cost float64, in PriceInput) (price float64, formulaFallback bool) {
	competitorAvg := sanitizeAmount(in.CompetitorAvg)

	switch in.Strategy.Primary {
	case domain.StrategyCostPlus:
		margin := clampMargin(in.Strategy.ResolvedTargetMarginPct())
		return cost * (1 + margin/100), false

	case domain.StrategyCompetitive:
		if competitorAvg > 0 {
			return competitorAvg, false
		}
		return cost * 1.25, false

	case domain.StrategyPenetration:
		if competitorAvg > 0 {
			return competitorAvg * 0.8, false
		}
		return cost * 1.15, false

	case domain.StrategySkimming:
		return cost / (1 - skimmingTargetMargin), false

	case domain.StrategyValueBased:
		anchor := competitorAvg
		if anchor == 0 {
			anchor = cost * 1.4
		}
		uplift := 1.2
		if in.HigherValue {
			uplift = 1.25
		}
		return anchor * uplift, false

	case domain.StrategyCustom:
		return customPrice(cost, in)
	}

	// unknown strategy degrades to cost_plus at the default margin
	return cost * (1 + domain.DefaultCostPlusMarginPct/100), false
}

func customPrice(cost float64, in PriceInput) (float64, bool) {
	fallback := cost * (1 + domain.DefaultCostPlusMarginPct/100)
	custom := in.Strategy.Custom
	if custom == nil {
		return fallback, false
	}
	switch custom.Mode {
	case domain.CustomModeMargin:
		return cost * (1 + clampMargin(custom.MarginPct)/100), false
	case domain.CustomModePrice:
		return sanitizeAmount(custom.TargetPrice), false
	case domain.CustomModeProfit:
		return cost + sanitizeAmount(custom.TargetProfit), false
	case domain.CustomModeFormula:
		price, err := EvaluateFormula(custom.Formula, FormulaVars{
			Cost:             cost,
			UnitVariableCost: sanitizeAmount(in.UnitVariableCost),
			CompetitorAvg:    sanitizeAmount(in.CompetitorAvg),
		})
		if err != nil {
			return fallback, true
		}
		return price, false
	}
	return fallback, false
}

func applyModifier(price float64, mod domain.SecondaryModifier) float64 {
	switch mod {
	case domain.ModifierPsychological:
		// charm pricing: round down to the nearest 100, end in 99
		return math.Floor(price/100)*100 + 99
	case domain.ModifierBundle:
		return price * 0.95
	case domain.ModifierDynamic:
		return price * 1.1
	case domain.ModifierSkimming:
		return price * 1.2
	}
	return price
}

func marginOnCost(price, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return (price - cost) / cost * 100
}

func clampMargin(m float64) float64 {
	if math.IsNaN(m) || m < 0 {
		return 0
	}
	if m >= 100 {
		return 99.9
	}
	return m
}
