// Package sweep drives the wind-strength sweep: repeated simulator runs per
// parameter value, reduced to per-value averages.
package sweep

import (
	"strconv"

	"github.com/MadeInShineA/forest-fire-simulation/internal/simcontrol"
)

// RunConfig is the immutable configuration of one simulator run.
// WindStrength is the swept dimension; everything else is fixed across the
// whole sweep.
type RunConfig struct {
	GridWidth  int
	GridHeight int

	// Initial ignition percentages.
	FireTreePct  int
	FireGrassPct int

	ThunderEnabled      bool
	ThunderPct          int
	StepsBetweenThunder int

	WindEnabled  bool
	WindAngle    int
	WindStrength int
}

// DefaultRunConfig returns the stock 100x100 configuration: 5% of trees and
// 10% of grasses ignited, thunder off, wind from angle 0.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		GridWidth:           100,
		GridHeight:          100,
		FireTreePct:         5,
		FireGrassPct:        10,
		ThunderEnabled:      false,
		ThunderPct:          0,
		StepsBetweenThunder: 1,
		WindEnabled:         true,
		WindAngle:           0,
	}
}

// WithWindStrength returns a copy of the config at the given wind strength.
func (c RunConfig) WithWindStrength(strength int) RunConfig {
	c.WindStrength = strength
	return c
}

// Args encodes the config as the simulator's positional argument list, in
// the order the simulator expects: grid dimensions, ignition percentages,
// thunder parameters, wind parameters.
func (c RunConfig) Args() []string {
	return []string{
		strconv.Itoa(c.GridWidth),
		strconv.Itoa(c.GridHeight),
		strconv.Itoa(c.FireTreePct),
		strconv.Itoa(c.FireGrassPct),
		strconv.FormatBool(c.ThunderEnabled),
		strconv.Itoa(c.ThunderPct),
		strconv.Itoa(c.StepsBetweenThunder),
		boolFlag(c.WindEnabled),
		strconv.Itoa(c.WindAngle),
		strconv.Itoa(c.WindStrength),
	}
}

// ControlState derives the control-file record for this run. The harness
// never pauses or single-steps the simulator.
func (c RunConfig) ControlState() simcontrol.State {
	return simcontrol.State{
		ThunderPercentage: float64(c.ThunderPct),
		WindAngle:         float64(c.WindAngle),
		WindStrength:      float64(c.WindStrength),
		WindEnabled:       c.WindEnabled,
		Paused:            false,
		Step:              false,
	}
}

// boolFlag renders wind enablement as the 1/0 flag the simulator parses.
func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
