package render

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/MadeInShineA/forest-fire-simulation/internal/sweep"
)

var testSeries = sweep.SweepSeries{
	{WindStrength: 0, AvgMaxBurnedPercent: 50, StddevMaxBurnedPercent: 14.142136,
		AvgFinalBurnedPercent: 50, StddevFinalBurnedPercent: 14.142136,
		AvgBurnDuration: 2, AvgPeakFireFront: 1},
	{WindStrength: 1, AvgMaxBurnedPercent: 90, AvgFinalBurnedPercent: 90,
		AvgBurnDuration: 3, AvgPeakFireFront: 2},
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	require.NoError(t, WriteCSV(testSeries, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 points

	if diff := cmp.Diff(csvHeader, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	want := []string{"0", "50.000000", "14.142136", "50.000000", "14.142136", "2.0", "1.0"}
	if diff := cmp.Diff(want, rows[1]); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}
	if rows[2][0] != "1" {
		t.Errorf("second row wind strength = %q, want %q", rows[2][0], "1")
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.html")
	require.NoError(t, WriteHTML(testSeries, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	body := string(data)
	for _, want := range []string{"Max Burned %", "Final Burned %", "Wind Strength"} {
		if !strings.Contains(body, want) {
			t.Errorf("html chart missing %q", want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.png")
	require.NoError(t, WritePNG(testSeries, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Size() == 0 {
		t.Error("png chart is empty")
	}
}

func TestWriteCSVEmptySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(nil, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
