// Package journal persists analysis runs and their gap tables so they
// can be compared across runs. The core pipeline never touches it; the
// CLI hands finished tables over.
package journal

import (
	"time"

	"github.com/rustyeddy/cmegaps/gaps"
)

// RunRecord describes one completed analysis run.
type RunRecord struct {
	RunID     string // ULID; sorts by start time
	Symbol    string
	Timezone  string
	Started   time.Time
	RangeFrom time.Time
	RangeTo   time.Time
	Candles   int
	TotalGaps int
	Closed    int
}

// Journal records finished runs. Implementations: SQLite, Noop.
type Journal interface {
	RecordRun(RunRecord, []gaps.Gap) error
	Close() error
}

// Noop discards everything; used when journaling is disabled.
type Noop struct{}

func (Noop) RecordRun(RunRecord, []gaps.Gap) error { return nil }
func (Noop) Close() error                          { return nil }
