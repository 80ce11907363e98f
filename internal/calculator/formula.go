package calculator

import (
	"fmt"
	"math"

	"github.com/maja42/goval"
)

// FormulaVars are the variables exposed to custom pricing formulas.
type FormulaVars struct {
	Cost             float64
	UnitVariableCost float64
	CompetitorAvg    float64
}

// EvaluateFormula evaluates a caller-supplied pricing expression, e.g.
// "cost * 1.3" or "competitorAvg - 5". The result must be a finite,
// non-negative number.
func EvaluateFormula(expression string, vars FormulaVars) (float64, error) {
	if expression == "" {
		return 0, fmt.Errorf("empty pricing formula")
	}

	eval := goval.NewEvaluator()
	variables := map[string]interface{}{
		"cost":             vars.Cost,
		"unitVariableCost": vars.UnitVariableCost,
		"competitorAvg":    vars.CompetitorAvg,
	}
	functions := map[string]goval.ExpressionFunction{
		"min": func(args ...interface{}) (interface{}, error) {
			a, b, err := twoFloats("min", args)
			if err != nil {
				return 0, err
			}
			return math.Min(a, b), nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			a, b, err := twoFloats("max", args)
			if err != nil {
				return 0, err
			}
			return math.Max(a, b), nil
		},
		"round": func(args ...interface{}) (interface{}, error) {
			if len(args) < 1 {
				return 0, fmt.Errorf("round needs 1 arg, got %d", len(args))
			}
			v, err := toFloat(args[0])
			if err != nil {
				return 0, err
			}
			return math.Round(v), nil
		},
	}

	result, err := eval.Evaluate(expression, variables, functions)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate pricing formula: %w", err)
	}

	price, err := toFloat(result)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) {
		return 0, fmt.Errorf("pricing formula produced NaN")
	}
	if math.IsInf(price, 0) {
		return 0, fmt.Errorf("pricing formula produced infinity")
	}
	if price < 0 {
		return 0, fmt.Errorf("pricing formula produced a negative price (%v)", price)
	}
	return price, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("pricing formula result is not a number (%T)", v)
}

func twoFloats(name string, args []interface{}) (float64, float64, error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("%s needs 2 args, got %d", name, len(args))
	}
	a, err := toFloat(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := toFloat(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
