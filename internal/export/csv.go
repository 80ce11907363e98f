package export

import (
	"fmt"
	"io"

	"pricepilot/internal/domain"

	"github.com/gocarina/gocsv"
)

// resultRow flattens a FinancialResult for CSV export. Formatting only;
// every number comes straight off the computed result.
type resultRow struct {
	Product            string  `csv:"product"`
	UnitVariableCost   float64 `csv:"unit_variable_cost"`
	AllocatedRatioPct  float64 `csv:"allocated_ratio_pct"`
	AllocatedFixed     float64 `csv:"allocated_fixed_monthly"`
	UnitCost           float64 `csv:"unit_cost"`
	Price              float64 `csv:"price"`
	AchievedMarginPct  float64 `csv:"achieved_margin_pct"`
	MonthlyQuantity    float64 `csv:"monthly_quantity"`
	Revenue            float64 `csv:"revenue"`
	Profit             float64 `csv:"profit"`
	ContributionMargin float64 `csv:"contribution_margin"`
	BreakEvenUnits     int     `csv:"break_even_units"`
	BreakEvenReachable bool    `csv:"break_even_reachable"`
	QuantityUncertain  bool    `csv:"quantity_uncertain"`
	Paused             bool    `csv:"paused"`
}

// ResultsCSV writes one row per product result.
func ResultsCSV(w io.Writer, results []domain.FinancialResult) error {
	rows := make([]resultRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, resultRow{
			Product:            r.Name,
			UnitVariableCost:   r.UnitVariableCost,
			AllocatedRatioPct:  r.AllocatedRatioPct,
			AllocatedFixed:     r.AllocatedFixedMonthly,
			UnitCost:           r.UnitCost,
			Price:              r.Price,
			AchievedMarginPct:  r.AchievedMarginPct,
			MonthlyQuantity:    r.MonthlyQuantity,
			Revenue:            r.Revenue,
			Profit:             r.Profit,
			ContributionMargin: r.ContributionMargin,
			BreakEvenUnits:     r.BreakEvenUnits,
			BreakEvenReachable: r.BreakEvenReachable,
			QuantityUncertain:  r.QuantityUncertain,
			Paused:             r.Paused,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write results csv: %w", err)
	}
	return nil
}
