// Package simcontrol writes the simulator's out-of-band control file.
//
// The simulator polls a well-known JSON file for runtime parameters. The
// harness owns that file for writing; the simulator only ever reads it.
package simcontrol

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MadeInShineA/forest-fire-simulation/internal/fsutil"
)

// State is the control record consumed by the simulator. Field names match
// the JSON schema the simulator expects.
type State struct {
	ThunderPercentage float64 `json:"thunderPercentage"`
	WindAngle         float64 `json:"windAngle"`
	WindStrength      float64 `json:"windStrength"`
	WindEnabled       bool    `json:"windEnabled"`
	Paused            bool    `json:"paused"`
	Step              bool    `json:"step"`
}

// Writer serialises control state to a fixed path before each run.
type Writer struct {
	fs   fsutil.FileSystem
	path string
}

// NewWriter creates a control-file writer targeting path.
func NewWriter(fs fsutil.FileSystem, path string) *Writer {
	return &Writer{fs: fs, path: path}
}

// Path returns the control file path.
func (w *Writer) Path() string {
	return w.path
}

// Write atomically replaces the control file with the given state. The
// record is written to a sibling temp file and renamed into place, so a
// concurrently polling simulator never observes a half-written file.
func (w *Writer) Write(st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal control state: %w", err)
	}
	data = append(data, '\n')

	tmp := w.path + ".tmp"
	if err := w.fs.WriteFile(tmp, data, os.FileMode(0644)); err != nil {
		return fmt.Errorf("write control file %s: %w", tmp, err)
	}
	if err := w.fs.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("replace control file %s: %w", w.path, err)
	}
	return nil
}
