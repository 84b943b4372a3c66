package journal

import (
	"database/sql"
	"fmt"

	"github.com/rustyeddy/cmegaps/gaps"
)

// GetRun loads one run row by its ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var r RunRecord
	err := j.db.QueryRow(`
		SELECT run_id, symbol, timezone, started, range_from, range_to, candles, total_gaps, closed_gaps
		FROM runs WHERE run_id = ?`, runID).
		Scan(&r.RunID, &r.Symbol, &r.Timezone, &r.Started, &r.RangeFrom, &r.RangeTo,
			&r.Candles, &r.TotalGaps, &r.Closed)
	if err == sql.ErrNoRows {
		return r, fmt.Errorf("run %s: not found", runID)
	}
	return r, err
}

// ListRuns returns all runs, newest first.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, symbol, timezone, started, range_from, range_to, candles, total_gaps, closed_gaps
		FROM runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.Symbol, &r.Timezone, &r.Started, &r.RangeFrom,
			&r.RangeTo, &r.Candles, &r.TotalGaps, &r.Closed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListGapsByRun reconstructs the enriched gap table stored for a run,
// ordered by gap start.
func (j *SQLite) ListGapsByRun(runID string) ([]gaps.Gap, error) {
	rows, err := j.db.Query(`
		SELECT gap_start, gap_end, close_price, open_price, gap_size, gap_size_pct,
		       direction, is_closed, closure_time, hours_to_close, days_to_close
		FROM gaps WHERE run_id = ? ORDER BY gap_start`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []gaps.Gap
	for rows.Next() {
		var g gaps.Gap
		var dir string
		var closed bool
		var closureTime sql.NullTime
		var hours, days sql.NullFloat64

		if err := rows.Scan(&g.Start, &g.End, &g.ClosePrice, &g.OpenPrice, &g.Size,
			&g.SizePct, &dir, &closed, &closureTime, &hours, &days); err != nil {
			return nil, err
		}
		g.Direction = gaps.Direction(dir)
		if closed && closureTime.Valid {
			g.Closure = &gaps.Closure{
				Time:  closureTime.Time,
				Hours: hours.Float64,
				Days:  days.Float64,
			}
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
