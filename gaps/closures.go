package gaps

import (
	"sort"
	"sync"

	"github.com/rustyeddy/cmegaps/market"
)

const hoursPerDay = 24

// TrackClosures scans the candle table for the first bar after each
// gap's end where price retraced through the pre-gap close, within a
// relative tolerance (use DefaultTolerance for the usual 0.1%). Up gaps
// close when a bar's low drops to ClosePrice*(1+tolerance); down gaps
// when a bar's high reaches ClosePrice*(1-tolerance).
//
// The candle table may be the detection input or any superset covering
// later timestamps. Gaps that never retrace keep a nil Closure. The
// input slices are not modified; the result is a fresh slice in the same
// order. Each gap scans independently, so the work fans out across
// goroutines with no shared state beyond the read-only table.
func TrackClosures(candles market.Table, gaps []Gap, tolerance float64) []Gap {
	out := make([]Gap, len(gaps))

	var wg sync.WaitGroup
	for i, g := range gaps {
		wg.Add(1)
		go func(i int, g Gap) {
			defer wg.Done()
			g.Closure = findClosure(candles, g, tolerance)
			out[i] = g
		}(i, g)
	}
	wg.Wait()

	return out
}

// findClosure returns the earliest qualifying bar after g.End, or nil.
func findClosure(candles market.Table, g Gap, tolerance float64) *Closure {
	level := g.closureLevel(tolerance)

	// Candles are ascending; binary-search to the first bar after End.
	first := sort.Search(len(candles), func(i int) bool {
		return candles[i].Time.After(g.End)
	})

	for _, c := range candles[first:] {
		hit := false
		if g.Direction == Up {
			hit = c.Low <= level
		} else {
			hit = c.High >= level
		}
		if !hit {
			continue
		}

		elapsed := c.Time.Sub(g.End)
		return &Closure{
			Time:  c.Time,
			Hours: elapsed.Hours(),
			Days:  elapsed.Hours() / hoursPerDay,
		}
	}
	return nil
}
