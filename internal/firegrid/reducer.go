package firegrid

import "errors"

// ErrNoBurnableCells reports a run whose first frame contains no
// fire-relevant cells at all. Such a run cannot be measured against a zero
// denominator and is a configuration error, not a zero-metric run.
var ErrNoBurnableCells = errors.New("no burnable cells in first frame")

// RunMetrics summarises one completed run.
type RunMetrics struct {
	// FrameCount is the number of successfully decoded frames, terminal
	// frame included.
	FrameCount int

	// MaxBurnedPercent is the running maximum of the per-frame burned
	// percentage, in [0, 100].
	MaxBurnedPercent float64

	// FinalBurnedPercent is the burned percentage of the terminal frame
	// (the first frame with no burning cells).
	FinalBurnedPercent float64

	// PeakFireFront is the largest number of simultaneously burning cells
	// observed in any frame.
	PeakFireFront int
}

// Reducer folds a run's stream lines into RunMetrics. It is seeded by the
// first successfully decoded frame, which fixes the burnable-cell
// denominator for the whole run, and finalises on the first frame with no
// burning cells. Lines observed after finalisation are ignored.
type Reducer struct {
	initialBurnable int
	seeded          bool
	done            bool
	metrics         RunMetrics
}

// NewReducer creates a reducer for a single run.
func NewReducer() *Reducer {
	return &Reducer{}
}

// Observe consumes one raw stream line. Undecodable lines are skipped
// silently: transient partial writes from the simulator are expected and
// must never abort a run mid-stream. The returned bool reports whether the
// run has reached its terminal frame.
func (r *Reducer) Observe(line []byte) (bool, error) {
	if r.done {
		return true, nil
	}

	frame, ok := DecodeFrame(line)
	if !ok {
		return false, nil
	}

	burning, burnable, burned := frame.tally()

	if !r.seeded {
		total := burning + burnable + burned
		if total == 0 {
			return false, ErrNoBurnableCells
		}
		r.initialBurnable = total
		r.seeded = true
	}

	r.metrics.FrameCount++

	percentBurned := 100 * float64(burned) / float64(r.initialBurnable)
	if percentBurned > r.metrics.MaxBurnedPercent {
		r.metrics.MaxBurnedPercent = percentBurned
	}
	if burning > r.metrics.PeakFireFront {
		r.metrics.PeakFireFront = burning
	}

	if burning == 0 {
		r.metrics.FinalBurnedPercent = percentBurned
		r.done = true
	}
	return r.done, nil
}

// ObserveBatch feeds lines in arrival order, stopping at the terminal
// frame. Remaining lines in the batch are not consumed.
func (r *Reducer) ObserveBatch(lines []string) (bool, error) {
	for _, line := range lines {
		done, err := r.Observe([]byte(line))
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
	}
	return false, nil
}

// Done reports whether the terminal frame has been observed.
func (r *Reducer) Done() bool {
	return r.done
}

// InitialBurnableCount returns the denominator fixed from the first frame,
// or 0 if no frame has been decoded yet.
func (r *Reducer) InitialBurnableCount() int {
	return r.initialBurnable
}

// Metrics returns the metrics accumulated so far. They are final once Done
// reports true.
func (r *Reducer) Metrics() RunMetrics {
	return r.metrics
}
