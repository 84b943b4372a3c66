package gaps

import (
	"math"
	"sort"
)

// closedWithinDays is the window for the "closed within one week" stats.
const closedWithinDays = 7

// ClosureTimes aggregates time-to-close over the closed subset. It only
// exists when at least one gap closed; Summary carries it as a pointer
// so "no closed gaps" is distinguishable from zeros.
type ClosureTimes struct {
	AvgHours    float64
	MedianHours float64
	AvgDays     float64
	MedianDays  float64
	MinHours    float64
	MaxHours    float64
}

// Summary is the flat reduction of an enriched gap table. TotalGaps == 0
// is the "no gaps" sentinel; no other field is meaningful then. The
// per-direction averages degrade to 0 when that side has no gaps, so
// check UpGaps/DownGaps before reading them.
type Summary struct {
	TotalGaps   int
	ClosedGaps  int
	OpenGaps    int
	ClosureRate float64 // percent of all gaps

	AvgSize    float64 // mean |size|
	AvgSizePct float64 // mean |size %|
	MedianSize float64
	StdDevSize float64 // sample std dev of |size|

	Largest  Gap // by |size|; first occurrence wins ties
	Smallest Gap

	UpGaps          int
	DownGaps        int
	UpClosureRate   float64
	DownClosureRate float64
	AvgUpSize       float64 // mean signed size of up gaps
	AvgDownSize     float64

	ClosureTimes *ClosureTimes // nil when no gap has closed

	ClosedInWeek            int
	ClosedInWeekPct         float64 // of all gaps
	ClosedInWeekOfClosedPct float64 // of closed gaps
}

// Empty reports whether the summary is the "no gaps" sentinel.
func (s Summary) Empty() bool { return s.TotalGaps == 0 }

// Summarize reduces a gap table (after closure tracking) to a Summary.
// It never errors: an empty table returns the sentinel. Apart from the
// first-occurrence tie-break on largest/smallest, the result does not
// depend on input order.
func Summarize(gaps []Gap) Summary {
	if len(gaps) == 0 {
		return Summary{}
	}

	s := Summary{TotalGaps: len(gaps)}

	absSizes := make([]float64, 0, len(gaps))
	var absPctSum float64
	var upSum, downSum float64
	var upClosed, downClosed int
	var hours, days []float64

	largest, smallest := 0, 0
	for i, g := range gaps {
		abs := g.AbsSize()
		absSizes = append(absSizes, abs)
		absPctSum += math.Abs(g.SizePct)

		if abs > gaps[largest].AbsSize() {
			largest = i
		}
		if abs < gaps[smallest].AbsSize() {
			smallest = i
		}

		if g.Direction == Up {
			s.UpGaps++
			upSum += g.Size
			if g.Closed() {
				upClosed++
			}
		} else {
			s.DownGaps++
			downSum += g.Size
			if g.Closed() {
				downClosed++
			}
		}

		if g.Closed() {
			s.ClosedGaps++
			hours = append(hours, g.Closure.Hours)
			days = append(days, g.Closure.Days)
			if g.Closure.Days <= closedWithinDays {
				s.ClosedInWeek++
			}
		}
	}

	s.OpenGaps = s.TotalGaps - s.ClosedGaps
	s.ClosureRate = pct(s.ClosedGaps, s.TotalGaps)

	s.AvgSize = mean(absSizes)
	s.AvgSizePct = absPctSum / float64(len(gaps))
	s.MedianSize = median(absSizes)
	s.StdDevSize = sampleStdDev(absSizes)

	s.Largest = gaps[largest]
	s.Smallest = gaps[smallest]

	s.UpClosureRate = pct(upClosed, s.UpGaps)
	s.DownClosureRate = pct(downClosed, s.DownGaps)
	if s.UpGaps > 0 {
		s.AvgUpSize = upSum / float64(s.UpGaps)
	}
	if s.DownGaps > 0 {
		s.AvgDownSize = downSum / float64(s.DownGaps)
	}

	if s.ClosedGaps > 0 {
		min, max := hours[0], hours[0]
		for _, h := range hours[1:] {
			if h < min {
				min = h
			}
			if h > max {
				max = h
			}
		}
		s.ClosureTimes = &ClosureTimes{
			AvgHours:    mean(hours),
			MedianHours: median(hours),
			AvgDays:     mean(days),
			MedianDays:  median(days),
			MinHours:    min,
			MaxHours:    max,
		}
		s.ClosedInWeekPct = pct(s.ClosedInWeek, s.TotalGaps)
		s.ClosedInWeekOfClosedPct = pct(s.ClosedInWeek, s.ClosedGaps)
	}

	return s
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// median sorts a copy; the caller's slice order is preserved.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// sampleStdDev uses the n-1 denominator; one sample has no spread.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)-1))
}
