package calculator

import (
	"fmt"
	"math"

	"pricepilot/internal/domain"

	"github.com/google/uuid"
)

// ratioSumTolerancePct is how far the resolved ratios may drift from 100
// before the allocator refuses them and fails safe to equal split.
const ratioSumTolerancePct = 0.1

// zeroFloorPct is assigned to any product that has positive quantity but
// would round to a 0% share, so it never silently vanishes from cost
// responsibility.
const zeroFloorPct = 0.01

// AllocationProduct is one eligible product as the allocator sees it:
// resolved monthly quantity plus unit variable cost for the
// revenue-weighted method.
type AllocationProduct struct {
	ID               uuid.UUID
	Quantity         float64
	UnitVariableCost float64
}

type AllocationResult struct {
	// Method actually applied. Differs from the configured method when
	// the allocator had to substitute equal split.
	Method domain.AllocationMethod

	RatioPctByProduct map[uuid.UUID]float64
	AmountByProduct   map[uuid.UUID]float64
	PerUnitByProduct  map[uuid.UUID]float64

	Substituted        bool
	SubstitutionReason string
}

// AllocateFixedCosts distributes the shared fixed cost pool across the
// eligible products. It never fails: an invalid manual configuration is
// replaced by equal split and reported through the substitution fields,
// so fixed costs are never dropped and ratios always sum to 100.
func AllocateFixedCosts(products []AllocationProduct, totalShared float64, cfg domain.AllocationConfig) AllocationResult {
	out := AllocationResult{
		Method:            cfg.Method,
		RatioPctByProduct: map[uuid.UUID]float64{},
		AmountByProduct:   map[uuid.UUID]float64{},
		PerUnitByProduct:  map[uuid.UUID]float64{},
	}
	if len(products) == 0 {
		return out
	}
	totalShared = sanitizeAmount(totalShared)

	ratios, err := resolveRatios(products, totalShared, cfg)
	if err == nil {
		err = validateRatios(ratios)
	}
	if err != nil {
		ratios = equalRatios(len(products))
		out.Method = domain.AllocationEqual
		out.Substituted = true
		out.SubstitutionReason = err.Error()
	}

	if cfg.Method == domain.AllocationVolume || cfg.Method == domain.AllocationRevenue {
		ratios = applyZeroFloor(products, ratios, totalShared)
	}

	for i, p := range products {
		out.RatioPctByProduct[p.ID] = ratios[i]
		amount := ratios[i] / 100 * totalShared
		out.AmountByProduct[p.ID] = amount
		if p.Quantity > 0 {
			out.PerUnitByProduct[p.ID] = amount / p.Quantity
		} else {
			out.PerUnitByProduct[p.ID] = 0
		}
	}
	return out
}

func resolveRatios(products []AllocationProduct, totalShared float64, cfg domain.AllocationConfig) ([]float64, error) {
	switch cfg.Method {
	case domain.AllocationEqual:
		return equalRatios(len(products)), nil

	case domain.AllocationVolume:
		weights := make([]float64, len(products))
		for i, p := range products {
			weights[i] = sanitizeAmount(p.Quantity)
		}
		return weightedRatios(weights), nil

	case domain.AllocationRevenue:
		// quantity x unit variable cost proxies revenue potential
		// before a price exists
		weights := make([]float64, len(products))
		for i, p := range products {
			weights[i] = sanitizeAmount(p.Quantity) * sanitizeAmount(p.UnitVariableCost)
		}
		return weightedRatios(weights), nil

	case domain.AllocationManual:
		return manualRatios(products, totalShared, cfg.ManualRatios)
	}
	return nil, fmt.Errorf("unknown allocation method %q", cfg.Method)
}

func equalRatios(n int) []float64 {
	ratios := make([]float64, n)
	for i := range ratios {
		ratios[i] = 100 / float64(n)
	}
	return ratios
}

// weightedRatios distributes 100 proportionally to the weights, falling
// back to equal split when all weights are zero.
func weightedRatios(weights []float64) []float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return equalRatios(len(weights))
	}
	ratios := make([]float64, len(weights))
	for i, w := range weights {
		ratios[i] = w / total * 100
	}
	return ratios
}

func manualRatios(products []AllocationProduct, totalShared float64, manual map[uuid.UUID]float64) ([]float64, error) {
	ratios := make([]float64, len(products))
	specifiedSum := 0.0
	unspecified := 0
	for i, p := range products {
		pct, ok := manual[p.ID]
		if !ok {
			ratios[i] = -1 // placeholder, filled below
			unspecified++
			continue
		}
		if math.IsNaN(pct) || pct < 0 {
			return nil, fmt.Errorf("manual ratio for product %s is invalid (%v)", p.ID, pct)
		}
		ratios[i] = pct
		specifiedSum += pct
	}

	remainder := 100 - specifiedSum
	if unspecified > 0 {
		// unspecified products split the remainder equally while any
		// shared cost exists, else they carry nothing
		share := 0.0
		if totalShared > 0 {
			if remainder < 0 {
				return nil, fmt.Errorf("manual ratios sum to %.2f%%, leaving nothing for %d unspecified products", specifiedSum, unspecified)
			}
			share = remainder / float64(unspecified)
		}
		for i := range ratios {
			if ratios[i] == -1 {
				ratios[i] = share
			}
		}
	}
	return ratios, nil
}

func validateRatios(ratios []float64) error {
	sum := 0.0
	for _, r := range ratios {
		if math.IsNaN(r) || r < 0 {
			return fmt.Errorf("resolved a negative allocation ratio (%v)", r)
		}
		sum += r
	}
	if math.Abs(sum-100) > ratioSumTolerancePct {
		return fmt.Errorf("allocation ratios sum to %.2f%%, expected 100%%", sum)
	}
	return nil
}

// applyZeroFloor lifts any positive-quantity product off an exact 0%
// share and renormalizes the remaining mass so the total stays at 100.
func applyZeroFloor(products []AllocationProduct, ratios []float64, totalShared float64) []float64 {
	if totalShared <= 0 {
		return ratios
	}
	floored := 0
	for i, p := range products {
		if p.Quantity > 0 && ratios[i] == 0 {
			floored++
		}
	}
	if floored == 0 {
		return ratios
	}

	flooredMass := zeroFloorPct * float64(floored)
	remainingSum := 0.0
	for i, p := range products {
		if !(p.Quantity > 0 && ratios[i] == 0) {
			remainingSum += ratios[i]
		}
	}

	out := make([]float64, len(ratios))
	for i, p := range products {
		if p.Quantity > 0 && ratios[i] == 0 {
			out[i] = zeroFloorPct
		} else if remainingSum > 0 {
			out[i] = ratios[i] / remainingSum * (100 - flooredMass)
		}
	}
	return out
}
