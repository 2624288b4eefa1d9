package simcontrol

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/MadeInShineA/forest-fire-simulation/internal/fsutil"
)

func TestWriteProducesExpectedJSON(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	w := NewWriter(fs, "res/sim_control.json")

	err := w.Write(State{
		ThunderPercentage: 0,
		WindAngle:         0,
		WindStrength:      12,
		WindEnabled:       true,
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := fs.ReadFile("res/sim_control.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("control file is not valid JSON: %v", err)
	}

	want := map[string]interface{}{
		"thunderPercentage": float64(0),
		"windAngle":         float64(0),
		"windStrength":      float64(12),
		"windEnabled":       true,
		"paused":            false,
		"step":              false,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %q = %v, want %v", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("control file has %d fields, want %d: %v", len(got), len(want), got)
	}
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	w := NewWriter(fs, "sim_control.json")

	if err := w.Write(State{WindStrength: 3, WindEnabled: true}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if fs.Exists("sim_control.json.tmp") {
		t.Error("temp file left behind after rename")
	}
	if !fs.Exists("sim_control.json") {
		t.Error("control file missing after write")
	}
}

func TestWriteOverwritesPreviousState(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	w := NewWriter(fs, "sim_control.json")

	if err := w.Write(State{WindStrength: 1}); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := w.Write(State{WindStrength: 2}); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	data, _ := fs.ReadFile("sim_control.json")
	var got State
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.WindStrength != 2 {
		t.Errorf("WindStrength = %v, want 2", got.WindStrength)
	}
}

// failingFS wraps a FileSystem and fails all writes.
type failingFS struct {
	fsutil.FileSystem
}

var errDiskFull = errors.New("disk full")

func (failingFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return errDiskFull
}

func TestWritePropagatesFailure(t *testing.T) {
	w := NewWriter(failingFS{fsutil.NewMemoryFileSystem()}, "sim_control.json")

	err := w.Write(State{})
	if !errors.Is(err, errDiskFull) {
		t.Errorf("Write error = %v, want wrapped errDiskFull", err)
	}
}
