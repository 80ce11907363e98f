package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"pricepilot/internal/domain"
	"pricepilot/internal/export"
	"pricepilot/internal/logger"
	"pricepilot/internal/service"
)

// Thin caller around the engine: load a snapshot, compute, print the
// report. All business logic lives in internal/.
func main() {
	var (
		inputPath = flag.String("input", "", "path to a snapshot JSON file (defaults to stdin)")
		format    = flag.String("format", "json", "output format: json or csv")
	)
	flag.Parse()

	log := logger.New()
	defer log.Sync()

	snapshot, err := loadSnapshot(*inputPath)
	if err != nil {
		log.Fatalw("failed to load snapshot", "error", err)
	}

	engine := service.NewPricingEngine(log)
	report := engine.Compute(*snapshot)

	switch *format {
	case "json":
		err = export.ReportJSON(os.Stdout, report)
	case "csv":
		err = export.ResultsCSV(os.Stdout, report.Results)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalw("failed to write report", "error", err)
	}
}

func loadSnapshot(path string) (*domain.Snapshot, error) {
	in := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot file: %w", err)
		}
		defer f.Close()
		in = f
	}

	snapshot := &domain.Snapshot{}
	if err := json.NewDecoder(in).Decode(snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snapshot, nil
}
