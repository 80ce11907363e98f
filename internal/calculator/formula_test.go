package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_EvaluateFormula(t *testing.T) {
	vars := FormulaVars{Cost: 100, UnitVariableCost: 80, CompetitorAvg: 150}

	t.Run("arithmetic over the exposed variables", func(t *testing.T) {
		price, err := EvaluateFormula("cost * 1.3", vars)
		require.NoError(t, err)
		require.InDelta(t, 130, price, 1e-9)

		price, err = EvaluateFormula("(unitVariableCost + 20) * 1.5", vars)
		require.NoError(t, err)
		require.InDelta(t, 150, price, 1e-9)
	})

	t.Run("helper functions", func(t *testing.T) {
		price, err := EvaluateFormula("min(cost * 2, competitorAvg)", vars)
		require.NoError(t, err)
		require.InDelta(t, 150, price, 1e-9)

		price, err = EvaluateFormula("round(cost * 1.337)", vars)
		require.NoError(t, err)
		require.InDelta(t, 134, price, 1e-9)
	})

	t.Run("empty formula errors", func(t *testing.T) {
		_, err := EvaluateFormula("", vars)
		require.Error(t, err)
	})

	t.Run("syntax errors are reported", func(t *testing.T) {
		_, err := EvaluateFormula("cost *", vars)
		require.Error(t, err)
	})

	t.Run("unknown variables are reported", func(t *testing.T) {
		_, err := EvaluateFormula("wholesalePrice * 2", vars)
		require.Error(t, err)
	})

	t.Run("negative results are rejected", func(t *testing.T) {
		_, err := EvaluateFormula("cost - 200", vars)
		require.Error(t, err)
	})

	t.Run("division by zero is rejected", func(t *testing.T) {
		_, err := EvaluateFormula("cost / (cost - 100)", vars)
		require.Error(t, err)
	})
}
