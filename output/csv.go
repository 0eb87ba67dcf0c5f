package output

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/heatwatch/heat-island-api-poc/internal/analysis"
)

// WriteSummaryCSV writes analysis summaries as a CSV report, one row per
// analyzed locality and date range.
func WriteSummaryCSV(path string, summaries []analysis.Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&summaries, file); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	return nil
}
