package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/cmegaps/gaps"
)

type SQLite struct {
	db *sql.DB
}

var _ Journal = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordRun writes the run row and its gap table in one transaction.
func (j *SQLite) RecordRun(run RunRecord, table []gaps.Gap) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs
		(run_id, symbol, timezone, started, range_from, range_to, candles, total_gaps, closed_gaps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Symbol, run.Timezone, run.Started,
		run.RangeFrom, run.RangeTo, run.Candles, run.TotalGaps, run.Closed,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO gaps
		(run_id, gap_start, gap_end, close_price, open_price, gap_size, gap_size_pct,
		 direction, is_closed, closure_time, hours_to_close, days_to_close)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range table {
		var closureTime any
		var hours, days any
		if g.Closed() {
			closureTime = g.Closure.Time
			hours = g.Closure.Hours
			days = g.Closure.Days
		}
		_, err := stmt.Exec(
			run.RunID, g.Start, g.End, g.ClosePrice, g.OpenPrice,
			g.Size, g.SizePct, string(g.Direction), g.Closed(),
			closureTime, hours, days,
		)
		if err != nil {
			return fmt.Errorf("insert gap at %s: %w", g.Start, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
