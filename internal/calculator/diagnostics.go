package calculator

import (
	"fmt"
	"math"
	"strings"

	"pricepilot/internal/domain"
)

type DiagnosticsInput struct {
	Totals    domain.PortfolioTotals
	Results   []domain.FinancialResult
	Benchmark domain.SectorBenchmark
	Strategy  domain.StrategyConfig

	AllocatedSharedTotal         float64
	DefinedSharedTotal           float64
	AllocationSubstituted        bool
	AllocationSubstitutionReason string

	FormulaFallbackProducts []string
}

// outlier bands around the sector benchmark: a product more than 2pp
// under the floor is an underperformer, more than 3pp over the ceiling
// is a star.
const (
	underperformerSlackPct = 2.0
	starSlackPct           = 3.0
)

// costPlusUndershootTolerancePp is the achieved-vs-target margin slack
// before a cost_plus product is flagged.
const costPlusUndershootTolerancePp = 0.05

type diagnosticRule func(DiagnosticsInput) *domain.Diagnostic

// rule order is fixed but display-only; no business meaning attaches to
// the position of a diagnostic in the output list.
var diagnosticRules = []diagnosticRule{
	ruleAllocationSubstituted,
	ruleFormulaFallback,
	rulePortfolioMargin,
	ruleContributionShortfall,
	ruleAllocationReconciliation,
	rulePricedBelowCost,
	ruleCostPlusUndershoot,
	ruleMissingCompetitorData,
	ruleOutsideCompetitorRange,
	ruleCompetitorDeviation,
	ruleBreakEvenGap,
	ruleRunway,
	ruleUnderperformers,
	ruleStarProducts,
	ruleUncertainQuantities,
	ruleSectorNudge,
}

// GenerateDiagnostics evaluates every rule unconditionally and
// independently; each rule yields zero or one diagnostic.
func GenerateDiagnostics(in DiagnosticsInput) []domain.Diagnostic {
	out := []domain.Diagnostic{}
	for _, rule := range diagnosticRules {
		if d := rule(in); d != nil {
			out = append(out, *d)
		}
	}
	return out
}

func ruleAllocationSubstituted(in DiagnosticsInput) *domain.Diagnostic {
	if !in.AllocationSubstituted {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityWarning,
		Title:           "Fixed cost allocation fell back to equal split",
		Description:     fmt.Sprintf("The configured allocation could not be applied: %s. Shared fixed costs were split equally instead so no cost was dropped.", in.AllocationSubstitutionReason),
		SuggestedAction: "Review the manual allocation ratios so they sum to 100%.",
	}
}

func ruleFormulaFallback(in DiagnosticsInput) *domain.Diagnostic {
	if len(in.FormulaFallbackProducts) == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityWarning,
		Title:           "Custom pricing formula could not be evaluated",
		Description:     fmt.Sprintf("The formula failed for: %s. Cost-plus pricing at the default margin was used instead.", strings.Join(in.FormulaFallbackProducts, ", ")),
		SuggestedAction: "Fix the formula; valid variables are cost, unitVariableCost and competitorAvg.",
	}
}

func rulePortfolioMargin(in DiagnosticsInput) *domain.Diagnostic {
	if in.Totals.Revenue == 0 {
		return nil
	}
	margin := in.Totals.MarginPct
	b := in.Benchmark
	switch {
	case margin < 0:
		return &domain.Diagnostic{
			Severity:        domain.SeverityWarning,
			Title:           "The business is losing money overall",
			Description:     fmt.Sprintf("Overall margin is %.1f%%. The %s sector typically runs %.0f-%.0f%%.", margin, b.Sector, b.MinMarginPct, b.MaxMarginPct),
			SuggestedAction: "Raise prices, cut variable costs, or reduce fixed costs until the margin turns positive.",
		}
	case margin < b.MinMarginPct:
		return &domain.Diagnostic{
			Severity:        domain.SeverityWarning,
			Title:           "Overall margin is below the sector band",
			Description:     fmt.Sprintf("Overall margin is %.1f%%, under the %s sector floor of %.0f%%.", margin, b.Sector, b.MinMarginPct),
			SuggestedAction: "Revisit pricing strategy or cost structure to close the gap to the sector floor.",
		}
	case margin > b.MaxMarginPct:
		return &domain.Diagnostic{
			Severity:    domain.SeveritySuccess,
			Title:       "Overall margin beats the sector band",
			Description: fmt.Sprintf("Overall margin is %.1f%%, above the %s sector ceiling of %.0f%%.", margin, b.Sector, b.MaxMarginPct),
		}
	}
	return &domain.Diagnostic{
		Severity:    domain.SeveritySuccess,
		Title:       "Overall margin is healthy for the sector",
		Description: fmt.Sprintf("Overall margin is %.1f%%, within the %s sector band of %.0f-%.0f%%.", margin, b.Sector, b.MinMarginPct, b.MaxMarginPct),
	}
}

func ruleContributionShortfall(in DiagnosticsInput) *domain.Diagnostic {
	totalContribution := 0.0
	for _, r := range in.Results {
		if r.Paused || r.QuantityUncertain {
			continue
		}
		totalContribution += r.ContributionMargin * r.MonthlyQuantity
	}
	gap := in.Totals.FixedCost - totalContribution
	if gap <= 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityWarning,
		Title:           "Contribution does not cover fixed costs",
		Description:     fmt.Sprintf("Monthly contribution falls %.2f short of total fixed costs (%.2f vs %.2f).", gap, totalContribution, in.Totals.FixedCost),
		SuggestedAction: "Increase volume or prices, or trim fixed costs, to close the monthly shortfall.",
	}
}

func ruleAllocationReconciliation(in DiagnosticsInput) *domain.Diagnostic {
	delta := in.AllocatedSharedTotal - in.DefinedSharedTotal
	tolerance := math.Max(1, 0.02*in.DefinedSharedTotal)
	if math.Abs(delta) <= tolerance {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityWarning,
		Title:           "Allocated fixed costs do not reconcile",
		Description:     fmt.Sprintf("Allocated shared fixed costs differ from the defined total by %+.2f.", delta),
		SuggestedAction: "Check the allocation configuration; allocation should redistribute costs, never change their total.",
	}
}

func rulePricedBelowCost(in DiagnosticsInput) *domain.Diagnostic {
	names := []string{}
	for _, r := range in.Results {
		if r.Paused {
			continue
		}
		if r.Price < r.UnitCost {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityWarning,
		Title:           "Products priced below total unit cost",
		Description:     fmt.Sprintf("These products sell below their full unit cost: %s.", strings.Join(names, ", ")),
		SuggestedAction: "Raise these prices above unit cost, or treat them as deliberate loss leaders.",
	}
}

func ruleCostPlusUndershoot(in DiagnosticsInput) *domain.Diagnostic {
	if in.Strategy.Primary != domain.StrategyCostPlus {
		return nil
	}
	target := in.Strategy.ResolvedTargetMarginPct()
	names := []string{}
	for _, r := range in.Results {
		if r.Paused || r.PricePinned {
			continue
		}
		if target-r.AchievedMarginPct > costPlusUndershootTolerancePp {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityWarning,
		Title:           "Cost-plus margin target missed",
		Description:     fmt.Sprintf("Achieved margin undershoots the %.1f%% target on: %s.", target, strings.Join(names, ", ")),
		SuggestedAction: "Check competitor clamping and secondary modifiers; they can pull prices under the margin target.",
	}
}

func ruleMissingCompetitorData(in DiagnosticsInput) *domain.Diagnostic {
	// competitor presence is inferred from the results: a product with
	// no deviation basis has no range recorded
	missing := 0
	for _, r := range in.Results {
		if r.Paused {
			continue
		}
		if r.CompetitorAvg == 0 {
			missing++
		}
	}
	if missing == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityInfo,
		Title:           "Competitor data is missing",
		Description:     fmt.Sprintf("%d products have no competitor price range.", missing),
		SuggestedAction: "Add competitor ranges to benchmark your pricing against the market.",
	}
}

func ruleOutsideCompetitorRange(in DiagnosticsInput) *domain.Diagnostic {
	names := []string{}
	for _, r := range in.Results {
		if r.Paused {
			continue
		}
		if r.OutOfCompetitorRange {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityWarning,
		Title:           "Prices outside the competitor range",
		Description:     fmt.Sprintf("Range clamping is disabled and these products price outside their competitor range: %s.", strings.Join(names, ", ")),
		SuggestedAction: "Enable competitor range clamping, or confirm the out-of-range price is intentional.",
	}
}

func ruleCompetitorDeviation(in DiagnosticsInput) *domain.Diagnostic {
	names := []string{}
	for _, r := range in.Results {
		if r.Paused || r.CompetitorAvg == 0 {
			continue
		}
		deviation := math.Abs(r.Price-r.CompetitorAvg) / r.CompetitorAvg * 100
		if deviation > 20 {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityInfo,
		Title:           "Prices deviate strongly from competitors",
		Description:     fmt.Sprintf("These products sit more than 20%% away from the competitor average: %s.", strings.Join(names, ", ")),
		SuggestedAction: "Large deviations can be intentional (premium or penetration), but confirm they match your positioning.",
	}
}

func ruleBreakEvenGap(in DiagnosticsInput) *domain.Diagnostic {
	if in.Totals.BreakEvenUnits <= 0 {
		return nil
	}
	currentUnits := 0.0
	for _, r := range in.Results {
		if r.Paused || r.QuantityUncertain {
			continue
		}
		currentUnits += r.MonthlyQuantity
	}
	gap := in.Totals.BreakEvenUnits - currentUnits
	if gap <= 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityInfo,
		Title:           "Break-even not yet reached",
		Description:     fmt.Sprintf("About %.0f more units per month are needed to break even (%.0f vs %.0f planned).", gap, in.Totals.BreakEvenUnits, currentUnits),
		SuggestedAction: "Plan how to close the unit gap, or rework costs so break-even comes down.",
	}
}

func ruleRunway(in DiagnosticsInput) *domain.Diagnostic {
	if math.IsInf(in.Totals.RunwayMonths, 1) {
		return &domain.Diagnostic{
			Severity:    domain.SeveritySuccess,
			Title:       "No burn: the business sustains itself",
			Description: "Revenue covers total costs, so cash on hand is not being consumed.",
		}
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityInfo,
		Title:           "Cash runway",
		Description:     fmt.Sprintf("At the current burn rate of %.2f per month, cash lasts %.1f months.", in.Totals.BurnRate, in.Totals.RunwayMonths),
		SuggestedAction: "Keep runway above your ability to raise revenue or funding.",
	}
}

func productMarginPct(r domain.FinancialResult) (float64, bool) {
	if r.Paused || r.QuantityUncertain || r.Revenue <= 0 {
		return 0, false
	}
	return r.Profit / r.Revenue * 100, true
}

func ruleUnderperformers(in DiagnosticsInput) *domain.Diagnostic {
	names := []string{}
	for _, r := range in.Results {
		margin, ok := productMarginPct(r)
		if !ok {
			continue
		}
		if margin < in.Benchmark.MinMarginPct-underperformerSlackPct {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityWarning,
		Title:           "Underperforming products",
		Description:     fmt.Sprintf("These products run well below the sector margin floor: %s.", strings.Join(names, ", ")),
		SuggestedAction: "Reprice, rework costs, or consider pausing these products.",
	}
}

func ruleStarProducts(in DiagnosticsInput) *domain.Diagnostic {
	names := []string{}
	for _, r := range in.Results {
		margin, ok := productMarginPct(r)
		if !ok {
			continue
		}
		if margin > in.Benchmark.MaxMarginPct+starSlackPct {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:    domain.SeveritySuccess,
		Title:       "Star products",
		Description: fmt.Sprintf("These products clear the sector margin ceiling: %s.", strings.Join(names, ", ")),
	}
}

func ruleUncertainQuantities(in DiagnosticsInput) *domain.Diagnostic {
	names := []string{}
	for _, r := range in.Results {
		if r.Paused {
			continue
		}
		if r.QuantityUncertain {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.Diagnostic{
		Severity:        domain.SeverityInfo,
		Title:           "Products excluded for uncertain quantity",
		Description:     fmt.Sprintf("No sales estimate exists for: %s. They are excluded from revenue and break-even figures.", strings.Join(names, ", ")),
		SuggestedAction: "Pick any quantity estimation method, even a rough range, to include them.",
	}
}

func ruleSectorNudge(in DiagnosticsInput) *domain.Diagnostic {
	if in.Benchmark.Nudge == "" {
		return nil
	}
	return &domain.Diagnostic{
		Severity:    domain.SeverityInfo,
		Title:       fmt.Sprintf("Tip for the %s sector", in.Benchmark.Sector),
		Description: in.Benchmark.Nudge,
	}
}
