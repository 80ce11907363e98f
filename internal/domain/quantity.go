package domain

type QuantityMethod string

const (
	QuantityFixed      QuantityMethod = "fixed"
	QuantityRange      QuantityMethod = "range"
	QuantityCapacity   QuantityMethod = "capacity"
	QuantityMarket     QuantityMethod = "market"
	QuantityHistorical QuantityMethod = "historical"
	QuantityUncertain  QuantityMethod = "uncertain"
)

// QuantityEstimate is a tagged union over the supported monthly-quantity
// estimation methods. Exactly one variant is active, selected by Method;
// the matching pointer carries the variant's fields. The uncertain
// variant has no payload and yields no numeric quantity.
type QuantityEstimate struct {
	Method     QuantityMethod      `json:"method"`
	Fixed      *FixedQuantity      `json:"fixed,omitempty"`
	Range      *RangeQuantity      `json:"range,omitempty"`
	Capacity   *CapacityQuantity   `json:"capacity,omitempty"`
	Market     *MarketQuantity     `json:"market,omitempty"`
	Historical *HistoricalQuantity `json:"historical,omitempty"`
}

type FixedQuantity struct {
	Value float64 `json:"value"`
}

type RangeQuantity struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CapacityQuantity struct {
	Max            float64 `json:"max"`
	UtilizationPct float64 `json:"utilizationPct"`
}

type MarketQuantity struct {
	Size     float64 `json:"size"`
	SharePct float64 `json:"sharePct"`
}

type HistoricalQuantity struct {
	M1 float64 `json:"m1"`
	M2 float64 `json:"m2"`
	M3 float64 `json:"m3"`
}

// Resolve computes the numeric monthly quantity for the active variant.
// The second return is false when the estimate is uncertain (or the
// active variant's payload is missing), meaning the product must be
// excluded from quantity-weighted aggregates rather than zeroed.
func (q QuantityEstimate) Resolve() (float64, bool) {
	switch q.Method {
	case QuantityFixed:
		if q.Fixed == nil {
			return 0, false
		}
		return clampQuantity(q.Fixed.Value), true
	case QuantityRange:
		if q.Range == nil {
			return 0, false
		}
		return clampQuantity((q.Range.Min + q.Range.Max) / 2), true
	case QuantityCapacity:
		if q.Capacity == nil {
			return 0, false
		}
		return clampQuantity(q.Capacity.Max * clampPct(q.Capacity.UtilizationPct) / 100), true
	case QuantityMarket:
		if q.Market == nil {
			return 0, false
		}
		return clampQuantity(q.Market.Size * clampPct(q.Market.SharePct) / 100), true
	case QuantityHistorical:
		if q.Historical == nil {
			return 0, false
		}
		return clampQuantity((q.Historical.M1 + q.Historical.M2 + q.Historical.M3) / 3), true
	case QuantityUncertain:
		return 0, false
	}
	return 0, false
}

func (q QuantityEstimate) DeepCopy() QuantityEstimate {
	out := QuantityEstimate{Method: q.Method}
	if q.Fixed != nil {
		v := *q.Fixed
		out.Fixed = &v
	}
	if q.Range != nil {
		v := *q.Range
		out.Range = &v
	}
	if q.Capacity != nil {
		v := *q.Capacity
		out.Capacity = &v
	}
	if q.Market != nil {
		v := *q.Market
		out.Market = &v
	}
	if q.Historical != nil {
		v := *q.Historical
		out.Historical = &v
	}
	return out
}

func clampQuantity(v float64) float64 {
	if !validAmount(v) {
		return 0
	}
	return v
}

func clampPct(v float64) float64 {
	if !validAmount(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
