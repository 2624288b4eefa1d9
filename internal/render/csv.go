// Package render serialises a finished sweep for downstream consumption:
// CSV for spreadsheets, an HTML chart for quick inspection, and a PNG chart
// for reports. Rendering is a pure function of the SweepSeries; nothing
// here feeds back into the harness.
package render

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/MadeInShineA/forest-fire-simulation/internal/sweep"
)

// csvHeader is the column layout of the summary CSV.
var csvHeader = []string{
	"wind_strength",
	"max_burned_percent_mean", "max_burned_percent_stddev",
	"final_burned_percent_mean", "final_burned_percent_stddev",
	"burn_duration_mean_frames",
	"peak_fire_front_mean",
}

// WriteCSV writes the sweep summary to path, one row per wind strength.
func WriteCSV(series sweep.SweepSeries, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range series {
		row := []string{
			strconv.Itoa(p.WindStrength),
			fmt.Sprintf("%.6f", p.AvgMaxBurnedPercent),
			fmt.Sprintf("%.6f", p.StddevMaxBurnedPercent),
			fmt.Sprintf("%.6f", p.AvgFinalBurnedPercent),
			fmt.Sprintf("%.6f", p.StddevFinalBurnedPercent),
			fmt.Sprintf("%.1f", p.AvgBurnDuration),
			fmt.Sprintf("%.1f", p.AvgPeakFireFront),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
