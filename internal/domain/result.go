package domain

import "github.com/google/uuid"

type ScenarioName string

const (
	ScenarioWorst    ScenarioName = "worst"
	ScenarioExpected ScenarioName = "expected"
	ScenarioBest     ScenarioName = "best"
)

type ScenarioRow struct {
	Name           ScenarioName `json:"name"`
	Multiplier     float64      `json:"multiplier"`
	Quantity       float64      `json:"quantity"`
	Revenue        float64      `json:"revenue"`
	TotalCost      float64      `json:"totalCost"`
	Profit         float64      `json:"profit"`
	MarginPct      float64      `json:"marginPct"`
	BreakEvenUnits int          `json:"breakEvenUnits"`
}

// FinancialResult is the per-product output of one computation pass.
// It is recomputed from scratch on every invocation and immutable once
// returned.
type FinancialResult struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`

	UnitVariableCost      float64 `json:"unitVariableCost"`
	AllocatedRatioPct     float64 `json:"allocatedRatioPct"`
	AllocatedFixedMonthly float64 `json:"allocatedFixedMonthly"`
	AllocatedFixedPerUnit float64 `json:"allocatedFixedPerUnit"`
	ProductFixedMonthly   float64 `json:"productFixedMonthly"`
	UnitCost              float64 `json:"unitCost"`

	Price             float64 `json:"price"`
	AchievedMarginPct float64 `json:"achievedMarginPct"`
	PricePinned       bool    `json:"pricePinned"`
	CompetitorAvg     float64 `json:"competitorAvg,omitempty"`

	// Set when clamping is disabled and the price fell outside the
	// competitor range.
	OutOfCompetitorRange bool `json:"outOfCompetitorRange,omitempty"`

	MonthlyQuantity   float64 `json:"monthlyQuantity"`
	QuantityUncertain bool    `json:"quantityUncertain"`
	Paused            bool    `json:"paused"`

	Revenue   float64 `json:"revenue"`
	TotalCost float64 `json:"totalCost"`
	Profit    float64 `json:"profit"`

	ContributionMargin float64 `json:"contributionMargin"`
	BreakEvenUnits     int     `json:"breakEvenUnits"`
	BreakEvenReachable bool    `json:"breakEvenReachable"`

	Scenarios []ScenarioRow `json:"scenarios"`
}

// PortfolioTotals aggregates one pass across all products. Runway uses
// +Inf as the "profitable, never runs out" sentinel.
type PortfolioTotals struct {
	Revenue      float64 `json:"revenue"`
	VariableCost float64 `json:"variableCost"`
	FixedCost    float64 `json:"fixedCost"`
	TotalCost    float64 `json:"totalCost"`
	Profit       float64 `json:"profit"`
	MarginPct    float64 `json:"marginPct"`

	BurnRate     float64 `json:"burnRate"`
	RunwayMonths float64 `json:"runwayMonths"`

	WeightedAvgContribution float64 `json:"weightedAvgContribution"`
	BreakEvenUnits          float64 `json:"breakEvenUnits"`
}

// Report is the full output snapshot of one engine invocation.
type Report struct {
	Results     []FinancialResult `json:"results"`
	Totals      PortfolioTotals   `json:"totals"`
	Diagnostics []Diagnostic      `json:"diagnostics"`
}
