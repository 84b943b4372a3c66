// Package market holds the candle data model shared by the downloader,
// the gap pipeline, and the journal.
package market

import (
	"fmt"
	"time"
)

// Candle is one OHLCV bar. Time is an instant; the gap detector converts
// it into the session timezone when it needs local weekday/hour.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Table is an ordered candle series, ascending by Time. The analysis
// assumes hourly bars but does not enforce the interval; that is the
// downloader's job.
type Table []Candle

// Validate is the boundary check before candles enter the pipeline:
// strictly increasing timestamps, positive prices, non-negative volume.
func (t Table) Validate() error {
	for i, c := range t {
		if c.Time.IsZero() {
			return fmt.Errorf("candle %d: zero timestamp", i)
		}
		if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
			return fmt.Errorf("candle %d at %s: non-positive price", i, c.Time.Format(time.RFC3339))
		}
		if c.Volume < 0 {
			return fmt.Errorf("candle %d at %s: negative volume", i, c.Time.Format(time.RFC3339))
		}
		if i > 0 && !t[i-1].Time.Before(c.Time) {
			return fmt.Errorf("candle %d at %s: timestamp not after previous (%s)",
				i, c.Time.Format(time.RFC3339), t[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Start returns the first candle time, or the zero time for an empty table.
func (t Table) Start() time.Time {
	if len(t) == 0 {
		return time.Time{}
	}
	return t[0].Time
}

// End returns the last candle time, or the zero time for an empty table.
func (t Table) End() time.Time {
	if len(t) == 0 {
		return time.Time{}
	}
	return t[len(t)-1].Time
}
