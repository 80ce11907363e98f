package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"pricepilot/internal/domain"
)

// ReportJSON writes the full report as indented JSON. Runway's +Inf
// sentinel is not representable in JSON, so it is emitted as null.
func ReportJSON(w io.Writer, report domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonReport(report)); err != nil {
		return fmt.Errorf("failed to write report json: %w", err)
	}
	return nil
}

type reportDoc struct {
	Results     []domain.FinancialResult `json:"results"`
	Totals      totalsDoc                `json:"totals"`
	Diagnostics []domain.Diagnostic      `json:"diagnostics"`
}

type totalsDoc struct {
	domain.PortfolioTotals
	RunwayMonths *float64 `json:"runwayMonths"`
}

func jsonReport(report domain.Report) reportDoc {
	doc := reportDoc{
		Results:     report.Results,
		Totals:      totalsDoc{PortfolioTotals: report.Totals},
		Diagnostics: report.Diagnostics,
	}
	if !math.IsInf(report.Totals.RunwayMonths, 1) {
		v := report.Totals.RunwayMonths
		doc.Totals.RunwayMonths = &v
	}
	return doc
}
