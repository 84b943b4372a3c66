// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	timezone TEXT NOT NULL,
	started DATETIME NOT NULL,
	range_from DATETIME NOT NULL,
	range_to DATETIME NOT NULL,
	candles INTEGER NOT NULL,
	total_gaps INTEGER NOT NULL,
	closed_gaps INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS gaps (
	run_id TEXT NOT NULL,
	gap_start DATETIME NOT NULL,
	gap_end DATETIME NOT NULL,
	close_price REAL NOT NULL,
	open_price REAL NOT NULL,
	gap_size REAL NOT NULL,
	gap_size_pct REAL NOT NULL,
	direction TEXT NOT NULL,
	is_closed INTEGER NOT NULL,
	closure_time DATETIME,
	hours_to_close REAL,
	days_to_close REAL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_gaps_run ON gaps(run_id);
CREATE INDEX IF NOT EXISTS idx_gaps_start ON gaps(gap_start);
`
