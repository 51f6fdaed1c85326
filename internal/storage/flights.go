package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Flight outcomes.
const (
	OutcomeLanded  = "landed"
	OutcomeCrashed = "crashed"
	OutcomeSkipped = "skipped"
)

// Flight is one attempt at one level.
type Flight struct {
	ID        int64
	RunID     string
	LevelID   string
	Outcome   string
	Ticks     int
	CreatedAt time.Time
}

// LevelStats aggregates the flights of one level.
type LevelStats struct {
	LevelID   string
	Attempts  int
	Landings  int
	Crashes   int
	BestTicks int // Fewest ticks of any landing, 0 if never landed
	LastFlown time.Time
}

// SuccessRate returns landings per attempt.
func (s LevelStats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Landings) / float64(s.Attempts)
}

// RecordFlight stores a flight. Returns the ID of the inserted record.
func (s *Store) RecordFlight(f Flight) (int64, error) {
	if f.RunID == "" || f.LevelID == "" {
		return 0, fmt.Errorf("storage: flight needs a run and a level")
	}

	res, err := s.db.Exec(
		`INSERT INTO flights (run_id, level_id, outcome, ticks) VALUES (?, ?, ?, ?)`,
		f.RunID, f.LevelID, f.Outcome, f.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record flight: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const levelStatsQuery = `
	SELECT level_id,
	       COUNT(*),
	       COALESCE(SUM(CASE WHEN outcome = 'landed' THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(CASE WHEN outcome = 'crashed' THEN 1 ELSE 0 END), 0),
	       COALESCE(MIN(CASE WHEN outcome = 'landed' THEN ticks END), 0),
	       MAX(created_at)
	FROM flights`

// LevelStats returns the aggregated flights for one level. A level that was
// never flown returns zero stats.
func (s *Store) LevelStats(levelID string) (LevelStats, error) {
	var (
		st        LevelStats
		lastFlown any
	)
	err := s.db.QueryRow(levelStatsQuery+` WHERE level_id = ? GROUP BY level_id`, levelID).
		Scan(&st.LevelID, &st.Attempts, &st.Landings, &st.Crashes, &st.BestTicks, &lastFlown)
	if errors.Is(err, sql.ErrNoRows) {
		return LevelStats{LevelID: levelID}, nil
	}
	if err != nil {
		return LevelStats{}, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	st.LastFlown = parseTime(lastFlown)
	return st, nil
}

// AllLevelStats returns stats for every level flown, keyed by level ID.
func (s *Store) AllLevelStats() (map[string]LevelStats, error) {
	rows, err := s.db.Query(levelStatsQuery + ` GROUP BY level_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]LevelStats)
	for rows.Next() {
		var (
			st        LevelStats
			lastFlown any
		)
		if err := rows.Scan(&st.LevelID, &st.Attempts, &st.Landings, &st.Crashes, &st.BestTicks, &lastFlown); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastFlown = parseTime(lastFlown)
		stats[st.LevelID] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// RunFlights returns the flights of one run in order.
func (s *Store) RunFlights(runID string) ([]Flight, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, outcome, ticks, created_at
		 FROM flights WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		var (
			f         Flight
			createdAt any
		)
		if err := rows.Scan(&f.ID, &f.RunID, &f.LevelID, &f.Outcome, &f.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		f.CreatedAt = parseTime(createdAt)
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return flights, nil
}

// ClearFlights deletes the whole flight log.
func (s *Store) ClearFlights() error {
	if _, err := s.db.Exec("DELETE FROM flights"); err != nil {
		return fmt.Errorf("storage: cannot clear flights: %w", err)
	}
	return nil
}
