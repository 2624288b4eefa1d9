package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/MadeInShineA/forest-fire-simulation/internal/firegrid"
	"github.com/MadeInShineA/forest-fire-simulation/internal/fsutil"
	"github.com/MadeInShineA/forest-fire-simulation/internal/monitoring"
	"github.com/MadeInShineA/forest-fire-simulation/internal/simcontrol"
	"github.com/MadeInShineA/forest-fire-simulation/internal/simproc"
	"github.com/MadeInShineA/forest-fire-simulation/internal/simstream"
)

// Runner drives the full sweep: for each wind strength in [0, Max] stepped
// by WindStep, it executes Repeats simulator runs and folds their metrics
// into one SweepPoint.
//
// Runs execute strictly sequentially. The simulator, its control file and
// its output stream are singleton resources; a second concurrent run would
// corrupt the tail-offset bookkeeping.
type Runner struct {
	Base            RunConfig
	MaxWindStrength int
	WindStep        int
	Repeats         int

	SimCommand string
	WorkDir    string
	StreamPath string

	Control    *simcontrol.Writer
	Supervisor simproc.Supervisor
	FS         fsutil.FileSystem

	// PollInterval is the delay between stream polls when no new frames are
	// available. Defaults to simstream.DefaultPollInterval.
	PollInterval time.Duration

	// StreamHeaderLines is the reserved non-data line count at the top of
	// the stream file. The simulator reserves its first line, so this is
	// normally 1; a headerless format uses 0.
	StreamHeaderLines int

	// RunTimeout bounds a single run. Zero preserves the historical
	// unbounded wait: a simulator that never extinguishes hangs the sweep.
	RunTimeout time.Duration

	// OnRunComplete, if set, observes every finalized run in execution
	// order, before its metrics are folded into the sweep point.
	OnRunComplete func(cfg RunConfig, repeat int, m firegrid.RunMetrics)
}

// Run executes the whole sweep. Any fatal run error aborts the sweep with
// the failing wind strength and repeat index attached: partial sweep data
// is unusable downstream, so there is no per-run retry or skip.
func (r *Runner) Run(ctx context.Context) (SweepSeries, error) {
	step := r.WindStep
	if step <= 0 {
		step = 1
	}
	repeats := r.Repeats
	if repeats <= 0 {
		repeats = 1
	}

	var series SweepSeries
	for strength := 0; strength <= r.MaxWindStrength; strength += step {
		cfg := r.Base.WithWindStrength(strength)
		monitoring.Logf("wind strength %d/%d", strength, r.MaxWindStrength)

		runs := make([]firegrid.RunMetrics, 0, repeats)
		for repeat := 0; repeat < repeats; repeat++ {
			monitoring.Logf("  repeat %d/%d ...", repeat+1, repeats)
			m, err := r.runOnce(ctx, cfg)
			if err != nil {
				return nil, fmt.Errorf("wind strength %d, repeat %d/%d: %w",
					strength, repeat+1, repeats, err)
			}
			monitoring.Logf("  done: frames=%d burned=%.1f%%", m.FrameCount, m.FinalBurnedPercent)

			if r.OnRunComplete != nil {
				r.OnRunComplete(cfg, repeat, m)
			}
			runs = append(runs, m)
		}

		// Strengths are visited in increasing order, so the series stays
		// sorted by construction.
		series = append(series, aggregate(strength, runs))
	}
	return series, nil
}

// runOnce executes a single run: stale-output cleanup, control write,
// spawn, poll/classify to termination, teardown.
func (r *Runner) runOnce(ctx context.Context, cfg RunConfig) (firegrid.RunMetrics, error) {
	var zero firegrid.RunMetrics

	if r.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.RunTimeout)
		defer cancel()
	}

	interval := r.PollInterval
	if interval <= 0 {
		interval = simstream.DefaultPollInterval
	}

	// A leftover stream from the previous run would corrupt the line-offset
	// bookkeeping.
	if r.FS.Exists(r.StreamPath) {
		if err := r.FS.Remove(r.StreamPath); err != nil {
			return zero, fmt.Errorf("remove stale stream file: %w", err)
		}
	}

	if err := r.Control.Write(cfg.ControlState()); err != nil {
		return zero, err
	}

	handle, err := r.Supervisor.Spawn(r.SimCommand, cfg.Args(), r.WorkDir)
	if err != nil {
		return zero, err
	}
	defer r.Supervisor.Teardown(handle)

	tailer := simstream.NewTailer(r.FS, r.StreamPath, r.StreamHeaderLines)
	if err := tailer.WaitForFile(ctx, interval); err != nil {
		return zero, fmt.Errorf("waiting for stream file %s: %w", r.StreamPath, err)
	}

	reducer := firegrid.NewReducer()
	for {
		lines, err := tailer.Poll()
		if err != nil {
			return zero, fmt.Errorf("poll stream: %w", err)
		}

		if len(lines) == 0 {
			// No new complete frame yet. This is the run's only suspension
			// point, never a completion signal.
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(interval):
			}
			continue
		}

		done, err := reducer.ObserveBatch(lines)
		if err != nil {
			return zero, err
		}
		if done {
			return reducer.Metrics(), nil
		}
	}
}
