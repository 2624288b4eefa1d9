package render

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/MadeInShineA/forest-fire-simulation/internal/sweep"
)

// WriteHTML renders the sweep as a self-contained HTML page with two line
// charts: max burned % and final burned % against wind strength.
func WriteHTML(series sweep.SweepSeries, path string) error {
	strengths := make([]string, len(series))
	maxBurned := make([]opts.LineData, len(series))
	finalBurned := make([]opts.LineData, len(series))
	for i, p := range series {
		strengths[i] = strconv.Itoa(p.WindStrength)
		maxBurned[i] = opts.LineData{Value: p.AvgMaxBurnedPercent}
		finalBurned[i] = opts.LineData{Value: p.AvgFinalBurnedPercent}
	}

	page := components.NewPage()
	page.AddCharts(
		burnChart("Max Burned % of Burnable Cells", "Max Burned %", strengths, maxBurned),
		burnChart("Final Burned % of Burnable Cells", "Final Burned %", strengths, finalBurned),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html chart %s: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render html chart: %w", err)
	}
	return nil
}

func burnChart(title, seriesName string, strengths []string, data []opts.LineData) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "averaged over repeated runs per wind strength",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Wind Strength (km/h)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Burned (%)", Min: 0, Max: 105}),
	)
	line.SetXAxis(strengths).AddSeries(seriesName, data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false), ShowSymbol: opts.Bool(true)}))
	return line
}
