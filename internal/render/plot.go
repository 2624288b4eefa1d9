package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/MadeInShineA/forest-fire-simulation/internal/sweep"
)

// WritePNG renders both burn curves into a single PNG, the static
// counterpart of the HTML chart.
func WritePNG(series sweep.SweepSeries, path string) error {
	p := plot.New()
	p.Title.Text = "Fire Simulation Metrics vs Wind Strength (Averaged)"
	p.X.Label.Text = "Wind Strength (km/h)"
	p.Y.Label.Text = "Burned (%)"
	p.Y.Min = 0
	p.Y.Max = 105
	p.Legend.Top = true

	maxPts := make(plotter.XYs, len(series))
	finalPts := make(plotter.XYs, len(series))
	for i, pt := range series {
		maxPts[i] = plotter.XY{X: float64(pt.WindStrength), Y: pt.AvgMaxBurnedPercent}
		finalPts[i] = plotter.XY{X: float64(pt.WindStrength), Y: pt.AvgFinalBurnedPercent}
	}

	maxLine, err := plotter.NewLine(maxPts)
	if err != nil {
		return fmt.Errorf("build max-burned line: %w", err)
	}
	maxLine.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255} // firebrick
	maxLine.Width = vg.Points(2)
	p.Add(maxLine)
	p.Legend.Add("Max Burned %", maxLine)

	finalLine, err := plotter.NewLine(finalPts)
	if err != nil {
		return fmt.Errorf("build final-burned line: %w", err)
	}
	finalLine.Color = color.RGBA{G: 100, A: 255} // dark green
	finalLine.Width = vg.Points(2)
	p.Add(finalLine)
	p.Legend.Add("Final Burned %", finalLine)

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save png chart %s: %w", path, err)
	}
	return nil
}
