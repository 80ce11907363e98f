package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_AnalyzeBreakEven(t *testing.T) {
	t.Run("covers fixed cost at the ceiling unit count", func(t *testing.T) {
		out := AnalyzeBreakEven(50, 30, 1000)
		require.InDelta(t, 20, out.ContributionMargin, 1e-9)
		require.Equal(t, 50, out.BreakEvenUnits)
		require.True(t, out.Reachable)
	})

	t.Run("rounds partial units up", func(t *testing.T) {
		out := AnalyzeBreakEven(50, 30, 1010)
		require.Equal(t, 51, out.BreakEvenUnits)
	})

	t.Run("zero contribution margin is unreachable, not achieved", func(t *testing.T) {
		out := AnalyzeBreakEven(30, 30, 1000)
		require.False(t, out.Reachable)
		require.Zero(t, out.BreakEvenUnits)
	})

	t.Run("negative contribution margin is unreachable", func(t *testing.T) {
		out := AnalyzeBreakEven(25, 30, 1000)
		require.False(t, out.Reachable)
		require.InDelta(t, -5, out.ContributionMargin, 1e-9)
	})

	t.Run("no fixed cost means break-even at zero units", func(t *testing.T) {
		out := AnalyzeBreakEven(50, 30, 0)
		require.True(t, out.Reachable)
		require.Zero(t, out.BreakEvenUnits)
	})
}

func Test_PortfolioBreakEven(t *testing.T) {
	t.Run("weights contribution by quantity", func(t *testing.T) {
		// (20*100 + 10*300) / 400 = 12.5
		avg, units := PortfolioBreakEven([]float64{20, 10}, []float64{100, 300}, 5000)
		require.InDelta(t, 12.5, avg, 1e-9)
		require.InDelta(t, 400, units, 1e-9)
	})

	t.Run("zero quantities guard the division", func(t *testing.T) {
		avg, units := PortfolioBreakEven([]float64{20}, []float64{0}, 5000)
		require.Zero(t, avg)
		require.Zero(t, units)
	})

	t.Run("negative weighted contribution yields zero units", func(t *testing.T) {
		avg, units := PortfolioBreakEven([]float64{-5}, []float64{100}, 5000)
		require.InDelta(t, -5, avg, 1e-9)
		require.Zero(t, units)
	})
}
