// Package gaps implements the CME weekend gap pipeline: detect gaps at
// the weekly session boundary, track when price closes them, and reduce
// the results to summary statistics. Every stage is a pure function over
// slices; stages never mutate their inputs.
package gaps

import "time"

// Direction of a gap: up when the session opened above the prior close.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MinGapSize is the absolute price threshold below which a close/open
// discrepancy is noise, not a gap.
const MinGapSize = 0.01

// DefaultTolerance is the relative band around the pre-gap close used by
// the closure tracker (0.1%).
const DefaultTolerance = 0.001

// Closure records when and how long after the session open a gap filled.
// Hours and Days measure closure time minus gap end.
type Closure struct {
	Time  time.Time
	Hours float64
	Days  float64
}

// Gap is one session-boundary discontinuity. Start is the session-close
// candle's timestamp and End the session-open candle's; Size is
// OpenPrice minus ClosePrice, so Direction is Up exactly when Size > 0.
// Closure is nil until TrackClosures finds a fill; the detector's fields
// are never changed afterwards.
type Gap struct {
	Start      time.Time
	End        time.Time
	ClosePrice float64
	OpenPrice  float64
	Size       float64
	SizePct    float64
	Direction  Direction
	Closure    *Closure
}

// Closed reports whether the gap has been filled.
func (g Gap) Closed() bool { return g.Closure != nil }

// AbsSize returns the unsigned gap size.
func (g Gap) AbsSize() float64 {
	if g.Size < 0 {
		return -g.Size
	}
	return g.Size
}

// closureLevel is the price the market must trade back through for the
// gap to count as closed, given a relative tolerance. The band is
// one-sided and relative to ClosePrice only.
func (g Gap) closureLevel(tolerance float64) float64 {
	if g.Direction == Up {
		return g.ClosePrice * (1 + tolerance)
	}
	return g.ClosePrice * (1 - tolerance)
}
