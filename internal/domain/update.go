package domain

import "github.com/google/uuid"

// ProductPatch is a partial update to one product, keyed by ID. Nil
// fields are left untouched. List fields merge by element ID: existing
// elements are replaced, unknown elements are appended.
type ProductPatch struct {
	ID                      uuid.UUID          `json:"id"`
	Name                    *string            `json:"name,omitempty"`
	CostItems               []CostItem         `json:"costItems,omitempty"`
	RemoveCostItems         []uuid.UUID        `json:"removeCostItems,omitempty"`
	ProductFixedCosts       []ProductFixedCost `json:"productFixedCosts,omitempty"`
	RemoveProductFixedCosts []uuid.UUID        `json:"removeProductFixedCosts,omitempty"`
	Quantity                *QuantityEstimate  `json:"quantity,omitempty"`
	CompetitorRange         *CompetitorRange   `json:"competitorRange,omitempty"`
	Paused                  *bool              `json:"paused,omitempty"`
	WasteRatePct            *float64           `json:"wasteRatePct,omitempty"`
	PinnedPrice             *float64           `json:"pinnedPrice,omitempty"`
	ClearPinnedPrice        bool               `json:"clearPinnedPrice,omitempty"`
}

// SnapshotPatch is a partial update to the whole snapshot. Products and
// fixed costs merge by ID (insert if absent); scalar fields are
// last-write-wins when non-nil.
type SnapshotPatch struct {
	Products         []ProductPatch    `json:"products,omitempty"`
	RemoveProducts   []uuid.UUID       `json:"removeProducts,omitempty"`
	FixedCosts       []FixedCost       `json:"fixedCosts,omitempty"`
	RemoveFixedCosts []uuid.UUID       `json:"removeFixedCosts,omitempty"`
	Allocation       *AllocationConfig `json:"allocation,omitempty"`
	Strategy         *StrategyConfig   `json:"strategy,omitempty"`
	Waste            *WasteConfig      `json:"waste,omitempty"`

	DepreciationMonthly *float64 `json:"depreciationMonthly,omitempty"`
	RnDBudgetMonthly    *float64 `json:"rndBudgetMonthly,omitempty"`
	CashOnHand          *float64 `json:"cashOnHand,omitempty"`
	Sector              *Sector  `json:"sector,omitempty"`
}

// ApplyUpdate returns a new snapshot with the patch applied. The input
// snapshot is never mutated; callers own both values.
func ApplyUpdate(state Snapshot, patch SnapshotPatch) Snapshot {
	out := state.DeepCopy()

	for _, pp := range patch.Products {
		idx := -1
		for i, p := range out.Products {
			if p.ID == pp.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			out.Products = append(out.Products, productFromPatch(pp))
			continue
		}
		out.Products[idx] = mergeProduct(out.Products[idx], pp)
	}
	if len(patch.RemoveProducts) > 0 {
		out.Products = removeByID(out.Products, patch.RemoveProducts, func(p Product) uuid.UUID { return p.ID })
	}

	for _, fc := range patch.FixedCosts {
		idx := -1
		for i, existing := range out.FixedCosts {
			if existing.ID == fc.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			out.FixedCosts = append(out.FixedCosts, fc)
		} else {
			out.FixedCosts[idx] = fc
		}
	}
	if len(patch.RemoveFixedCosts) > 0 {
		out.FixedCosts = removeByID(out.FixedCosts, patch.RemoveFixedCosts, func(fc FixedCost) uuid.UUID { return fc.ID })
	}

	if patch.Allocation != nil {
		out.Allocation = *patch.Allocation
	}
	if patch.Strategy != nil {
		out.Strategy = *patch.Strategy
	}
	if patch.Waste != nil {
		out.Waste = *patch.Waste
	}
	if patch.DepreciationMonthly != nil {
		out.DepreciationMonthly = *patch.DepreciationMonthly
	}
	if patch.RnDBudgetMonthly != nil {
		out.RnDBudgetMonthly = *patch.RnDBudgetMonthly
	}
	if patch.CashOnHand != nil {
		out.CashOnHand = *patch.CashOnHand
	}
	if patch.Sector != nil {
		out.Sector = *patch.Sector
	}

	return out
}

func productFromPatch(pp ProductPatch) Product {
	p := Product{ID: pp.ID, Quantity: QuantityEstimate{Method: QuantityUncertain}}
	return mergeProduct(p, pp)
}

func mergeProduct(p Product, pp ProductPatch) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	for _, item := range pp.CostItems {
		idx := -1
		for i, existing := range p.CostItems {
			if existing.ID == item.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			p.CostItems = append(p.CostItems, item)
		} else {
			p.CostItems[idx] = item
		}
	}
	if len(pp.RemoveCostItems) > 0 {
		p.CostItems = removeByID(p.CostItems, pp.RemoveCostItems, func(c CostItem) uuid.UUID { return c.ID })
	}
	for _, fc := range pp.ProductFixedCosts {
		idx := -1
		for i, existing := range p.ProductFixedCosts {
			if existing.ID == fc.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			p.ProductFixedCosts = append(p.ProductFixedCosts, fc)
		} else {
			p.ProductFixedCosts[idx] = fc
		}
	}
	if len(pp.RemoveProductFixedCosts) > 0 {
		p.ProductFixedCosts = removeByID(p.ProductFixedCosts, pp.RemoveProductFixedCosts, func(c ProductFixedCost) uuid.UUID { return c.ID })
	}
	if pp.Quantity != nil {
		p.Quantity = pp.Quantity.DeepCopy()
	}
	if pp.CompetitorRange != nil {
		r := *pp.CompetitorRange
		p.CompetitorRange = &r
	}
	if pp.Paused != nil {
		p.Paused = *pp.Paused
	}
	if pp.WasteRatePct != nil {
		p.WasteRatePct = *pp.WasteRatePct
	}
	if pp.ClearPinnedPrice {
		p.PinnedPrice = nil
	} else if pp.PinnedPrice != nil {
		v := *pp.PinnedPrice
		p.PinnedPrice = &v
	}
	return p
}

func removeByID[T any](list []T, ids []uuid.UUID, idOf func(T) uuid.UUID) []T {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := list[:0]
	for _, item := range list {
		if _, ok := drop[idOf(item)]; !ok {
			out = append(out, item)
		}
	}
	return out
}
