package calculator

import (
	"math"
	"testing"

	"pricepilot/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_ComposeUnitCost(t *testing.T) {
	t.Run("sums cost items without waste", func(t *testing.T) {
		items := []domain.CostItem{
			{Name: "flour", Amount: 30, Kind: domain.CostKindMaterial},
			{Name: "labor", Amount: 45, Kind: domain.CostKindLabor},
			{Name: "box", Amount: 5, Kind: domain.CostKindPackaging},
		}
		require.InDelta(t, 80, ComposeUnitCost(items, 0), 1e-9)
	})

	t.Run("grosses up for waste", func(t *testing.T) {
		items := []domain.CostItem{{Amount: 80}}
		// 20% waste: 80 / 0.8 = 100 per sellable unit
		require.InDelta(t, 100, ComposeUnitCost(items, 20), 1e-9)
	})

	t.Run("waste of zero is the identity", func(t *testing.T) {
		items := []domain.CostItem{{Amount: 55.5}}
		require.InDelta(t, 55.5, ComposeUnitCost(items, 0), 1e-9)
	})

	t.Run("waste at or above 100 is clamped to 99.9", func(t *testing.T) {
		items := []domain.CostItem{{Amount: 10}}
		clamped := ComposeUnitCost(items, 100)
		require.InDelta(t, 10/(1-0.999), clamped, 1e-6)
		require.InDelta(t, clamped, ComposeUnitCost(items, 250), 1e-9)
		require.False(t, math.IsInf(clamped, 0))
	})

	t.Run("negative waste is ignored", func(t *testing.T) {
		items := []domain.CostItem{{Amount: 10}}
		require.InDelta(t, 10, ComposeUnitCost(items, -5), 1e-9)
	})

	t.Run("malformed amounts degrade to zero", func(t *testing.T) {
		items := []domain.CostItem{
			{Amount: math.NaN()},
			{Amount: math.Inf(1)},
			{Amount: -20},
			{Amount: 12},
		}
		require.InDelta(t, 12, ComposeUnitCost(items, 0), 1e-9)
	})

	t.Run("no items means zero cost", func(t *testing.T) {
		require.Zero(t, ComposeUnitCost(nil, 30))
	})
}
