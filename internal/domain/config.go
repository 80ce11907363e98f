package domain

import "github.com/google/uuid"

type AllocationMethod string

const (
	AllocationEqual   AllocationMethod = "equal"
	AllocationVolume  AllocationMethod = "volume"
	AllocationRevenue AllocationMethod = "revenue"
	AllocationManual  AllocationMethod = "manual"
)

// AllocationConfig selects how shared fixed costs are distributed across
// products. ManualRatios is only consulted for the manual method; values
// are percentages.
type AllocationConfig struct {
	Method       AllocationMethod      `json:"method"`
	ManualRatios map[uuid.UUID]float64 `json:"manualRatios,omitempty"`
}

type PricingStrategy string

const (
	StrategyCostPlus    PricingStrategy = "cost_plus"
	StrategyCompetitive PricingStrategy = "competitive"
	StrategyPenetration PricingStrategy = "penetration"
	StrategySkimming    PricingStrategy = "skimming"
	StrategyValueBased  PricingStrategy = "value_based"
	StrategyCustom      PricingStrategy = "custom"
)

type SecondaryModifier string

const (
	ModifierPsychological SecondaryModifier = "psychological"
	ModifierBundle        SecondaryModifier = "bundle"
	ModifierDynamic       SecondaryModifier = "dynamic"
	ModifierSkimming      SecondaryModifier = "skimming"
)

type CustomPricingMode string

const (
	CustomModeMargin  CustomPricingMode = "margin"
	CustomModePrice   CustomPricingMode = "price"
	CustomModeProfit  CustomPricingMode = "profit"
	CustomModeFormula CustomPricingMode = "formula"
)

// CustomPricing carries the parameters of the custom strategy. Exactly
// one mode is active; the other fields are ignored.
type CustomPricing struct {
	Mode         CustomPricingMode `json:"mode"`
	MarginPct    float64           `json:"marginPct,omitempty"`
	TargetPrice  float64           `json:"targetPrice,omitempty"`
	TargetProfit float64           `json:"targetProfit,omitempty"`

	// Formula is an arithmetic expression over the variables cost,
	// unitVariableCost and competitorAvg, e.g. "cost * 1.3".
	Formula string `json:"formula,omitempty"`
}

// DefaultCostPlusMarginPct applies when no target margin is configured.
const DefaultCostPlusMarginPct = 30.0

type StrategyConfig struct {
	Primary PricingStrategy `json:"primary"`

	// Secondary modifiers apply sequentially, in list order, to the
	// running price produced by the primary strategy.
	Secondary []SecondaryModifier `json:"secondary,omitempty"`

	// Target margin for cost_plus. Nil means DefaultCostPlusMarginPct;
	// an explicit 0 is honored.
	TargetMarginPct *float64 `json:"targetMarginPct,omitempty"`

	Custom *CustomPricing `json:"custom,omitempty"`

	// When enabled and a competitor range exists, the final price is
	// clamped into the range. When disabled, out-of-range prices pass
	// through and diagnostics flag them.
	ClampToCompetitorRange bool `json:"clampToCompetitorRange"`
}

func (c StrategyConfig) ResolvedTargetMarginPct() float64 {
	if c.TargetMarginPct == nil {
		return DefaultCostPlusMarginPct
	}
	return *c.TargetMarginPct
}

type WasteMode string

const (
	WasteNone       WasteMode = "none"
	WasteGlobal     WasteMode = "global"
	WastePerProduct WasteMode = "perProduct"
)

type WasteConfig struct {
	Mode          WasteMode `json:"mode"`
	GlobalRatePct float64   `json:"globalRatePct,omitempty"`
}

// RateFor resolves the waste rate that applies to a product under this
// config. The returned rate is a raw percentage; the cost composer is
// responsible for range clamping.
func (w WasteConfig) RateFor(p Product) float64 {
	switch w.Mode {
	case WasteGlobal:
		return w.GlobalRatePct
	case WastePerProduct:
		return p.WasteRatePct
	}
	return 0
}

// Snapshot is the full, caller-owned input state of one computation
// pass. The engine never retains it between calls.
type Snapshot struct {
	Products   []Product        `json:"products"`
	FixedCosts []FixedCost      `json:"fixedCosts"`
	Allocation AllocationConfig `json:"allocation"`
	Strategy   StrategyConfig   `json:"strategy"`
	Waste      WasteConfig      `json:"waste"`

	DepreciationMonthly float64 `json:"depreciationMonthly,omitempty"`
	RnDBudgetMonthly    float64 `json:"rndBudgetMonthly,omitempty"`
	CashOnHand          float64 `json:"cashOnHand,omitempty"`
	Sector              Sector  `json:"sector,omitempty"`
}

// SharedFixedCostTotal is the pool the allocator distributes: defined
// monthly fixed costs plus depreciation and the R&D budget. Product-
// specific fixed costs stay out of it.
func (s Snapshot) SharedFixedCostTotal() float64 {
	total := 0.0
	for _, fc := range s.FixedCosts {
		if !validAmount(fc.MonthlyAmount) {
			continue
		}
		total += fc.MonthlyAmount
	}
	if validAmount(s.DepreciationMonthly) {
		total += s.DepreciationMonthly
	}
	if validAmount(s.RnDBudgetMonthly) {
		total += s.RnDBudgetMonthly
	}
	return total
}

func (s Snapshot) ProductFixedCostTotal() float64 {
	total := 0.0
	for _, p := range s.Products {
		total += p.FixedCostTotal()
	}
	return total
}

func (s Snapshot) DeepCopy() Snapshot {
	out := s
	if s.Products != nil {
		out.Products = make([]Product, 0, len(s.Products))
		for _, p := range s.Products {
			out.Products = append(out.Products, p.DeepCopy())
		}
	}
	out.FixedCosts = copySlice(s.FixedCosts)
	if s.Allocation.ManualRatios != nil {
		out.Allocation.ManualRatios = make(map[uuid.UUID]float64, len(s.Allocation.ManualRatios))
		for id, pct := range s.Allocation.ManualRatios {
			out.Allocation.ManualRatios[id] = pct
		}
	}
	out.Strategy.Secondary = copySlice(s.Strategy.Secondary)
	if s.Strategy.TargetMarginPct != nil {
		v := *s.Strategy.TargetMarginPct
		out.Strategy.TargetMarginPct = &v
	}
	if s.Strategy.Custom != nil {
		c := *s.Strategy.Custom
		out.Strategy.Custom = &c
	}
	return out
}
