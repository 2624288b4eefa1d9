// Package runlog archives per-run metrics and aggregated sweep points in a
// SQLite database, so a finished sweep can be re-analysed without re-running
// hours of simulation.
package runlog

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/MadeInShineA/forest-fire-simulation/internal/firegrid"
	"github.com/MadeInShineA/forest-fire-simulation/internal/sweep"
)

// Store wraps the archive database.
type Store struct {
	*sql.DB
}

// Open opens (or creates) the archive at path. Pass ":memory:" for an
// ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run archive %s: %w", path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			wind_strength INTEGER NOT NULL,
			repeat_idx INTEGER NOT NULL,
			frame_count INTEGER NOT NULL,
			max_burned_percent DOUBLE NOT NULL,
			final_burned_percent DOUBLE NOT NULL,
			peak_fire_front INTEGER NOT NULL,
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS sweep_points (
			wind_strength INTEGER NOT NULL,
			avg_max_burned_percent DOUBLE NOT NULL,
			stddev_max_burned_percent DOUBLE NOT NULL,
			avg_final_burned_percent DOUBLE NOT NULL,
			stddev_final_burned_percent DOUBLE NOT NULL,
			avg_burn_duration DOUBLE NOT NULL,
			avg_peak_fire_front DOUBLE NOT NULL,
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create run archive schema: %w", err)
	}

	return &Store{db}, nil
}

// RecordRun stores one finalized run and returns its generated ID.
func (s *Store) RecordRun(windStrength, repeat int, m firegrid.RunMetrics) (string, error) {
	id := uuid.NewString()
	_, err := s.Exec(`
		INSERT INTO runs
			(run_id, wind_strength, repeat_idx, frame_count,
			 max_burned_percent, final_burned_percent, peak_fire_front)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, windStrength, repeat, m.FrameCount,
		m.MaxBurnedPercent, m.FinalBurnedPercent, m.PeakFireFront)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// RecordSeries stores every point of a completed sweep.
func (s *Store) RecordSeries(series sweep.SweepSeries) error {
	for _, p := range series {
		_, err := s.Exec(`
			INSERT INTO sweep_points
				(wind_strength,
				 avg_max_burned_percent, stddev_max_burned_percent,
				 avg_final_burned_percent, stddev_final_burned_percent,
				 avg_burn_duration, avg_peak_fire_front)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.WindStrength,
			p.AvgMaxBurnedPercent, p.StddevMaxBurnedPercent,
			p.AvgFinalBurnedPercent, p.StddevFinalBurnedPercent,
			p.AvgBurnDuration, p.AvgPeakFireFront)
		if err != nil {
			return fmt.Errorf("record sweep point at wind strength %d: %w", p.WindStrength, err)
		}
	}
	return nil
}

// RunRecord is one archived run.
type RunRecord struct {
	RunID        string
	WindStrength int
	RepeatIdx    int
	Metrics      firegrid.RunMetrics
}

// RunsAt returns every archived run at a wind strength, in repeat order.
func (s *Store) RunsAt(windStrength int) ([]RunRecord, error) {
	rows, err := s.Query(`
		SELECT run_id, wind_strength, repeat_idx, frame_count,
		       max_burned_percent, final_burned_percent, peak_fire_front
		FROM runs WHERE wind_strength = ? ORDER BY repeat_idx`, windStrength)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.WindStrength, &r.RepeatIdx,
			&r.Metrics.FrameCount, &r.Metrics.MaxBurnedPercent,
			&r.Metrics.FinalBurnedPercent, &r.Metrics.PeakFireFront); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Series reloads the archived sweep points in ascending wind-strength order.
func (s *Store) Series() (sweep.SweepSeries, error) {
	rows, err := s.Query(`
		SELECT wind_strength,
		       avg_max_burned_percent, stddev_max_burned_percent,
		       avg_final_burned_percent, stddev_final_burned_percent,
		       avg_burn_duration, avg_peak_fire_front
		FROM sweep_points ORDER BY wind_strength`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series sweep.SweepSeries
	for rows.Next() {
		var p sweep.SweepPoint
		if err := rows.Scan(&p.WindStrength,
			&p.AvgMaxBurnedPercent, &p.StddevMaxBurnedPercent,
			&p.AvgFinalBurnedPercent, &p.StddevFinalBurnedPercent,
			&p.AvgBurnDuration, &p.AvgPeakFireFront); err != nil {
			return nil, err
		}
		series = append(series, p)
	}
	return series, rows.Err()
}
