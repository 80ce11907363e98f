package domain

import (
	"math"

	"github.com/google/uuid"
)

type CostKind string

const (
	CostKindMaterial  CostKind = "material"
	CostKindLabor     CostKind = "labor"
	CostKindPackaging CostKind = "packaging"
	CostKindShipping  CostKind = "shipping"
	CostKindFee       CostKind = "fee"
	CostKindOther     CostKind = "other"
)

// CostItem is one line of variable cost incurred per unit produced.
type CostItem struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	Kind   CostKind  `json:"kind"`
}

type FixedCostCategory string

const (
	FixedCostRent      FixedCostCategory = "rent"
	FixedCostSalaries  FixedCostCategory = "salaries"
	FixedCostUtilities FixedCostCategory = "utilities"
	FixedCostMarketing FixedCostCategory = "marketing"
	FixedCostInsurance FixedCostCategory = "insurance"
	FixedCostSoftware  FixedCostCategory = "software"
	FixedCostCustom    FixedCostCategory = "custom"
)

// FixedCost is a shared, portfolio-level monthly cost. It belongs to the
// business as a whole and gets distributed across products by the
// allocator.
type FixedCost struct {
	ID            uuid.UUID         `json:"id"`
	Category      FixedCostCategory `json:"category"`
	Name          string            `json:"name,omitempty"`
	MonthlyAmount float64           `json:"monthlyAmount"`
}

// ProductFixedCost is a fixed cost attributable to exactly one product.
// It never enters shared allocation.
type ProductFixedCost struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	MonthlyAmount float64   `json:"monthlyAmount"`
}

type CompetitorRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (c CompetitorRange) Average() float64 {
	return (c.Min + c.Max) / 2
}

type Product struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	CostItems         []CostItem         `json:"costItems"`
	ProductFixedCosts []ProductFixedCost `json:"productFixedCosts,omitempty"`
	Quantity          QuantityEstimate   `json:"quantity"`
	CompetitorRange   *CompetitorRange   `json:"competitorRange,omitempty"`

	// A paused product contributes zero to quantity-based aggregates
	// but keeps its cost configuration.
	Paused bool `json:"paused"`

	// Per-product waste rate, only consulted when the snapshot's waste
	// mode is perProduct.
	WasteRatePct float64 `json:"wasteRatePct,omitempty"`

	// Flags the product as higher-value than the market for
	// value-based pricing.
	HigherValue bool `json:"higherValue,omitempty"`

	// When set, the caller has pinned an explicit price and the
	// strategy engine passes it through untouched.
	PinnedPrice *float64 `json:"pinnedPrice,omitempty"`
}

// FixedCostTotal sums the product-specific fixed costs.
func (p Product) FixedCostTotal() float64 {
	total := 0.0
	for _, fc := range p.ProductFixedCosts {
		if !validAmount(fc.MonthlyAmount) {
			continue
		}
		total += fc.MonthlyAmount
	}
	return total
}

func (p Product) DeepCopy() Product {
	out := p
	out.CostItems = copySlice(p.CostItems)
	out.ProductFixedCosts = copySlice(p.ProductFixedCosts)
	if p.CompetitorRange != nil {
		r := *p.CompetitorRange
		out.CompetitorRange = &r
	}
	if p.PinnedPrice != nil {
		v := *p.PinnedPrice
		out.PinnedPrice = &v
	}
	out.Quantity = p.Quantity.DeepCopy()
	return out
}

// validAmount rejects NaN, infinities and negatives so malformed input
// degrades to zero instead of poisoning downstream formulas.
func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// copySlice preserves nil-ness so a copied snapshot diffs clean against
// its source.
func copySlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
