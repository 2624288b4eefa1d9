package sweep

import (
	"gonum.org/v1/gonum/stat"

	"github.com/MadeInShineA/forest-fire-simulation/internal/firegrid"
)

// SweepPoint is the aggregate of all repeats at one wind strength.
type SweepPoint struct {
	WindStrength int `json:"wind_strength"`

	AvgMaxBurnedPercent    float64 `json:"avg_max_burned_percent"`
	StddevMaxBurnedPercent float64 `json:"stddev_max_burned_percent"`

	AvgFinalBurnedPercent    float64 `json:"avg_final_burned_percent"`
	StddevFinalBurnedPercent float64 `json:"stddev_final_burned_percent"`

	// AvgBurnDuration is the mean frame count to extinguishment.
	AvgBurnDuration float64 `json:"avg_burn_duration"`

	// AvgPeakFireFront is the mean peak number of simultaneously burning cells.
	AvgPeakFireFront float64 `json:"avg_peak_fire_front"`
}

// SweepSeries is the full sweep result in ascending wind-strength order.
// It is the sole artifact handed to the rendering step.
type SweepSeries []SweepPoint

// aggregate folds the metrics of all repeats at one wind strength into a
// SweepPoint.
func aggregate(windStrength int, runs []firegrid.RunMetrics) SweepPoint {
	maxBurned := make([]float64, len(runs))
	finalBurned := make([]float64, len(runs))
	durations := make([]float64, len(runs))
	peaks := make([]float64, len(runs))
	for i, m := range runs {
		maxBurned[i] = m.MaxBurnedPercent
		finalBurned[i] = m.FinalBurnedPercent
		durations[i] = float64(m.FrameCount)
		peaks[i] = float64(m.PeakFireFront)
	}

	p := SweepPoint{WindStrength: windStrength}
	p.AvgMaxBurnedPercent, p.StddevMaxBurnedPercent = meanStddev(maxBurned)
	p.AvgFinalBurnedPercent, p.StddevFinalBurnedPercent = meanStddev(finalBurned)
	p.AvgBurnDuration, _ = meanStddev(durations)
	p.AvgPeakFireFront, _ = meanStddev(peaks)
	return p
}

// meanStddev returns the mean and sample standard deviation of xs. A
// single-sample slice has zero deviation rather than NaN.
func meanStddev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean := stat.Mean(xs, nil)
	if len(xs) < 2 {
		return mean, 0
	}
	return mean, stat.StdDev(xs, nil)
}
