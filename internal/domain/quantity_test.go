package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_QuantityEstimate_Resolve(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		qty, ok := QuantityEstimate{Method: QuantityFixed, Fixed: &FixedQuantity{Value: 250}}.Resolve()
		require.True(t, ok)
		require.InDelta(t, 250, qty, 1e-9)
	})

	t.Run("range takes the midpoint", func(t *testing.T) {
		qty, ok := QuantityEstimate{Method: QuantityRange, Range: &RangeQuantity{Min: 100, Max: 300}}.Resolve()
		require.True(t, ok)
		require.InDelta(t, 200, qty, 1e-9)
	})

	t.Run("capacity applies utilization", func(t *testing.T) {
		qty, ok := QuantityEstimate{Method: QuantityCapacity, Capacity: &CapacityQuantity{Max: 400, UtilizationPct: 75}}.Resolve()
		require.True(t, ok)
		require.InDelta(t, 300, qty, 1e-9)
	})

	t.Run("capacity utilization is capped at 100", func(t *testing.T) {
		qty, _ := QuantityEstimate{Method: QuantityCapacity, Capacity: &CapacityQuantity{Max: 400, UtilizationPct: 150}}.Resolve()
		require.InDelta(t, 400, qty, 1e-9)
	})

	t.Run("market applies share", func(t *testing.T) {
		qty, ok := QuantityEstimate{Method: QuantityMarket, Market: &MarketQuantity{Size: 10000, SharePct: 2}}.Resolve()
		require.True(t, ok)
		require.InDelta(t, 200, qty, 1e-9)
	})

	t.Run("historical averages three months", func(t *testing.T) {
		qty, ok := QuantityEstimate{Method: QuantityHistorical, Historical: &HistoricalQuantity{M1: 90, M2: 110, M3: 130}}.Resolve()
		require.True(t, ok)
		require.InDelta(t, 110, qty, 1e-9)
	})

	t.Run("uncertain yields no quantity", func(t *testing.T) {
		qty, ok := QuantityEstimate{Method: QuantityUncertain}.Resolve()
		require.False(t, ok)
		require.Zero(t, qty)
	})

	t.Run("missing variant payload yields no quantity", func(t *testing.T) {
		_, ok := QuantityEstimate{Method: QuantityFixed}.Resolve()
		require.False(t, ok)
	})

	t.Run("negative inputs clamp to zero", func(t *testing.T) {
		qty, ok := QuantityEstimate{Method: QuantityFixed, Fixed: &FixedQuantity{Value: -10}}.Resolve()
		require.True(t, ok)
		require.Zero(t, qty)
	})
}
