package gaps

import (
	"time"

	"github.com/rustyeddy/cmegaps/market"
)

// The CME weekly session boundary: the exchange closes Friday 16:00 and
// reopens Sunday 17:00, both in the session timezone (normally
// America/Chicago). These anchor the detector; they are not data-derived.
const (
	sessionCloseWeekday = time.Friday
	sessionCloseHour    = 16
	sessionOpenWeekday  = time.Sunday
	sessionOpenHour     = 17
)

// Detect scans an hourly candle table for session-close/session-open
// pairs and returns one Gap per pair whose close/open discrepancy
// exceeds MinGapSize. Candles are classified by weekday and hour in loc.
//
// Each Friday-close candle is paired with the earliest Sunday-open
// candle strictly after it; a trailing Friday with no later Sunday is
// simply skipped. The result is ordered by Start ascending. An empty
// table, or one with no session candles, yields an empty result.
func Detect(candles market.Table, loc *time.Location) []Gap {
	if len(candles) == 0 {
		return nil
	}

	var closes, opens []int
	for i, c := range candles {
		local := c.Time.UTC().In(loc)
		switch {
		case local.Weekday() == sessionCloseWeekday && local.Hour() == sessionCloseHour:
			closes = append(closes, i)
		case local.Weekday() == sessionOpenWeekday && local.Hour() == sessionOpenHour:
			opens = append(opens, i)
		}
	}
	if len(closes) == 0 {
		return nil
	}

	var gaps []Gap
	next := 0 // cursor into opens; both index lists are ascending
	for _, ci := range closes {
		for next < len(opens) && !candles[opens[next]].Time.After(candles[ci].Time) {
			next++
		}
		if next >= len(opens) {
			break
		}

		fri := candles[ci]
		sun := candles[opens[next]]

		size := sun.Open - fri.Close
		if size <= MinGapSize && size >= -MinGapSize {
			continue
		}

		dir := Up
		if size < 0 {
			dir = Down
		}
		gaps = append(gaps, Gap{
			Start:      fri.Time,
			End:        sun.Time,
			ClosePrice: fri.Close,
			OpenPrice:  sun.Open,
			Size:       size,
			SizePct:    size / fri.Close * 100,
			Direction:  dir,
		})
	}

	return gaps
}
