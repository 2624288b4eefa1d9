// Command firesweep drives the external forest-fire simulator across a
// wind-strength sweep and renders the averaged burn metrics.
//
// Each wind strength is evaluated by several repeated runs. A run spawns
// the simulator, tails its append-only ndjson frame stream, reduces the
// frames to burn metrics, and tears the simulator's process tree down once
// the fire is out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/MadeInShineA/forest-fire-simulation/internal/firegrid"
	"github.com/MadeInShineA/forest-fire-simulation/internal/fsutil"
	"github.com/MadeInShineA/forest-fire-simulation/internal/render"
	"github.com/MadeInShineA/forest-fire-simulation/internal/runlog"
	"github.com/MadeInShineA/forest-fire-simulation/internal/simcontrol"
	"github.com/MadeInShineA/forest-fire-simulation/internal/simproc"
	"github.com/MadeInShineA/forest-fire-simulation/internal/sweep"
)

func main() {
	// Simulator invocation
	simCommand := flag.String("sim", "./run-sim.sh", "Simulator command")
	workDir := flag.String("workdir", "..", "Working directory for the simulator")
	streamPath := flag.String("stream", "../res/simulation_stream.ndjson", "Simulator output stream file")
	controlPath := flag.String("control", "../res/sim_control.json", "Simulator control file")

	// Sweep shape
	maxWind := flag.Int("max-wind", 50, "Maximum wind strength (sweep runs 0..max)")
	windStep := flag.Int("wind-step", 1, "Wind strength increment")
	repeats := flag.Int("repeats", 5, "Runs per wind strength")

	// Fixed run configuration
	gridWidth := flag.Int("width", 100, "Grid width")
	gridHeight := flag.Int("height", 100, "Grid height")
	fireTree := flag.Int("fire-tree", 5, "Initial burning tree percentage")
	fireGrass := flag.Int("fire-grass", 10, "Initial burning grass percentage")
	thunder := flag.Bool("thunder", false, "Enable thunder strikes")
	thunderPct := flag.Int("thunder-pct", 0, "Thunder strike percentage")
	stepsBetweenThunder := flag.Int("steps-between-thunder", 1, "Simulation steps between thunder strikes")
	windEnabled := flag.Bool("wind", true, "Enable wind")
	windAngle := flag.Int("wind-angle", 0, "Wind angle in degrees")

	// Harness behaviour
	pollInterval := flag.Duration("poll-interval", 50*time.Millisecond, "Delay between stream polls")
	headerLines := flag.Int("header-lines", 1, "Reserved non-data lines at the top of the stream")
	runTimeout := flag.Duration("run-timeout", 0, "Per-run timeout (0 = wait forever, as the fire may burn slowly)")

	// Outputs
	csvOut := flag.String("csv", "", "Summary CSV path (defaults to sweep-<timestamp>.csv)")
	htmlOut := flag.String("html", "fire_metrics_vs_wind_strength.html", "HTML chart path ('' to skip)")
	pngOut := flag.String("png", "fire_metrics_vs_wind_strength.png", "PNG chart path ('' to skip)")
	archivePath := flag.String("archive", "", "SQLite run archive path ('' to disable)")

	flag.Parse()

	base := sweep.RunConfig{
		GridWidth:           *gridWidth,
		GridHeight:          *gridHeight,
		FireTreePct:         *fireTree,
		FireGrassPct:        *fireGrass,
		ThunderEnabled:      *thunder,
		ThunderPct:          *thunderPct,
		StepsBetweenThunder: *stepsBetweenThunder,
		WindEnabled:         *windEnabled,
		WindAngle:           *windAngle,
	}

	var osfs fsutil.OSFileSystem
	runner := &sweep.Runner{
		Base:              base,
		MaxWindStrength:   *maxWind,
		WindStep:          *windStep,
		Repeats:           *repeats,
		SimCommand:        *simCommand,
		WorkDir:           *workDir,
		StreamPath:        *streamPath,
		Control:           simcontrol.NewWriter(osfs, *controlPath),
		Supervisor:        simproc.NewExecSupervisor(),
		FS:                osfs,
		PollInterval:      *pollInterval,
		StreamHeaderLines: *headerLines,
		RunTimeout:        *runTimeout,
	}

	var archive *runlog.Store
	if *archivePath != "" {
		var err error
		archive, err = runlog.Open(*archivePath)
		if err != nil {
			log.Fatalf("Could not open run archive: %v", err)
		}
		defer archive.Close()

		runner.OnRunComplete = func(cfg sweep.RunConfig, repeat int, m firegrid.RunMetrics) {
			if _, err := archive.RecordRun(cfg.WindStrength, repeat, m); err != nil {
				log.Printf("WARNING: could not archive run: %v", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Sweeping wind strength 0..%d (step %d, %d repeats per value)",
		*maxWind, *windStep, *repeats)

	series, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Printf("All simulations finished (%d sweep points)", len(series))

	if archive != nil {
		if err := archive.RecordSeries(series); err != nil {
			log.Printf("WARNING: could not archive sweep series: %v", err)
		}
	}

	csvPath := *csvOut
	if csvPath == "" {
		csvPath = fmt.Sprintf("sweep-%s.csv", time.Now().Format("20060102-150405"))
	}
	if err := render.WriteCSV(series, csvPath); err != nil {
		log.Fatalf("Could not write CSV: %v", err)
	}
	log.Printf("Summary: %s", csvPath)

	if *htmlOut != "" {
		if err := render.WriteHTML(series, *htmlOut); err != nil {
			log.Fatalf("Could not write HTML chart: %v", err)
		}
		log.Printf("HTML chart: %s", *htmlOut)
	}

	if *pngOut != "" {
		if err := render.WritePNG(series, *pngOut); err != nil {
			log.Fatalf("Could not write PNG chart: %v", err)
		}
		log.Printf("PNG chart: %s", *pngOut)
	}
}
