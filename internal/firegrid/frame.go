package firegrid

import "encoding/json"

// Frame is one snapshot of the simulated grid, indexed [row][col].
type Frame [][]string

// DecodeFrame parses one stream line into a Frame. A line is either a bare
// 2-D array of symbols or an object wrapping the grid under a "cells" key.
// Anything else, such as a partial write caught mid-flush, reports ok=false
// and is skipped by the caller.
func DecodeFrame(line []byte) (Frame, bool) {
	var wrapped struct {
		Cells [][]string `json:"cells"`
	}
	if err := json.Unmarshal(line, &wrapped); err == nil && wrapped.Cells != nil {
		return Frame(wrapped.Cells), true
	}

	var grid [][]string
	if err := json.Unmarshal(line, &grid); err == nil && grid != nil {
		return Frame(grid), true
	}

	return nil, false
}

// tally counts the fire-relevant cells of a frame in one pass.
func (f Frame) tally() (burning, burnable, burned int) {
	for _, row := range f {
		for _, cell := range row {
			switch Classify(cell) {
			case Burning:
				burning++
			case Burnable:
				burnable++
			case Burned:
				burned++
			}
		}
	}
	return burning, burnable, burned
}
