// Package report renders gap analysis results as plain text for the
// CLI. It consumes the enriched gap table and summary as opaque data;
// nothing here feeds back into the pipeline.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/cmegaps/gaps"
	"github.com/rustyeddy/cmegaps/market"
)

const rule = "============================================================"

// RenderSummary formats a Summary the way the analyze command prints it.
func RenderSummary(s gaps.Summary) string {
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "CME GAP STATISTICS")
	fmt.Fprintln(&b, rule)

	if s.Empty() {
		fmt.Fprintln(&b, "\nNo gaps detected.")
		return b.String()
	}

	fmt.Fprintf(&b, "\nTotal Gaps Detected: %d\n", s.TotalGaps)
	fmt.Fprintf(&b, "  - Closed: %d\n", s.ClosedGaps)
	fmt.Fprintf(&b, "  - Open: %d\n", s.OpenGaps)
	fmt.Fprintf(&b, "  - Closure Rate: %.2f%%\n", s.ClosureRate)

	fmt.Fprintf(&b, "\nGap Size:\n")
	fmt.Fprintf(&b, "  - Average: $%.2f (%.2f%%)\n", s.AvgSize, s.AvgSizePct)
	fmt.Fprintf(&b, "  - Median: $%.2f\n", s.MedianSize)
	fmt.Fprintf(&b, "  - Std Dev: $%.2f\n", s.StdDevSize)

	writeGapLine(&b, "Largest Gap", s.Largest)
	writeGapLine(&b, "Smallest Gap", s.Smallest)

	if ct := s.ClosureTimes; ct != nil {
		fmt.Fprintf(&b, "\nClosure Time (closed gaps):\n")
		fmt.Fprintf(&b, "  - Average: %.1f hours (%.2f days)\n", ct.AvgHours, ct.AvgDays)
		fmt.Fprintf(&b, "  - Median: %.1f hours (%.2f days)\n", ct.MedianHours, ct.MedianDays)
		fmt.Fprintf(&b, "  - Range: %.1f - %.1f hours\n", ct.MinHours, ct.MaxHours)
	}

	fmt.Fprintf(&b, "\nBy Direction:\n")
	fmt.Fprintf(&b, "  - Upward: %d (closure rate %.2f%%)\n", s.UpGaps, s.UpClosureRate)
	fmt.Fprintf(&b, "  - Downward: %d (closure rate %.2f%%)\n", s.DownGaps, s.DownClosureRate)
	fmt.Fprintf(&b, "  - Avg Up Size: $%.2f\n", s.AvgUpSize)
	fmt.Fprintf(&b, "  - Avg Down Size: $%.2f\n", s.AvgDownSize)

	fmt.Fprintf(&b, "\nClosed Within One Week:\n")
	fmt.Fprintf(&b, "  - Count: %d (%.2f%% of all gaps)\n", s.ClosedInWeek, s.ClosedInWeekPct)
	if s.ClosedGaps > 0 {
		fmt.Fprintf(&b, "  - Of closed gaps: %.2f%%\n", s.ClosedInWeekOfClosedPct)
	}

	fmt.Fprintln(&b, rule)
	return b.String()
}

func writeGapLine(b *strings.Builder, title string, g gaps.Gap) {
	fmt.Fprintf(b, "\n%s:\n", title)
	fmt.Fprintf(b, "  - Size: $%.2f (%.2f%%)\n", g.Size, g.SizePct)
	fmt.Fprintf(b, "  - Direction: %s\n", g.Direction)
	fmt.Fprintf(b, "  - Date: %s\n", g.Start.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(b, "  - Closed: %v\n", g.Closed())
}

// OpenGap is one still-open gap annotated with where price stands
// relative to its closure level.
type OpenGap struct {
	Gap       gaps.Gap
	DaysSince float64 // days between gap end and the latest candle
	// Distance is how far price must travel to reach the pre-gap close:
	// a drop for up gaps, a rise for down gaps. Negative means price has
	// already traded through the level since the last closure scan.
	Distance    float64
	DistancePct float64 // relative to the closure level
}

// OpenGapReport annotates the unclosed subset of a gap table against the
// latest candle in the table.
type OpenGapReport struct {
	AsOf         time.Time
	CurrentPrice float64
	Gaps         []OpenGap
}

// OpenGaps builds the open-gap report. The candle table supplies the
// current price (its last close); an empty table or fully-closed gap
// table yields a report with no rows.
func OpenGaps(candles market.Table, table []gaps.Gap) OpenGapReport {
	r := OpenGapReport{}
	if len(candles) == 0 {
		return r
	}
	last := candles[len(candles)-1]
	r.AsOf = last.Time
	r.CurrentPrice = last.Close

	for _, g := range table {
		if g.Closed() {
			continue
		}
		og := OpenGap{
			Gap:       g,
			DaysSince: last.Time.Sub(g.End).Hours() / 24,
		}
		if g.Direction == gaps.Up {
			og.Distance = r.CurrentPrice - g.ClosePrice
		} else {
			og.Distance = g.ClosePrice - r.CurrentPrice
		}
		og.DistancePct = og.Distance / g.ClosePrice * 100
		r.Gaps = append(r.Gaps, og)
	}
	return r
}

// RenderOpenGaps formats an open-gap report.
func RenderOpenGaps(r OpenGapReport) string {
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "UNCLOSED GAP REPORT")
	fmt.Fprintln(&b, rule)

	if len(r.Gaps) == 0 {
		fmt.Fprintln(&b, "\nNo unclosed gaps.")
		return b.String()
	}

	fmt.Fprintf(&b, "\nCurrent Price: $%.2f (as of %s)\n",
		r.CurrentPrice, r.AsOf.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Unclosed Gaps: %d\n", len(r.Gaps))

	for _, og := range r.Gaps {
		g := og.Gap
		fmt.Fprintf(&b, "\n%s gap from %s:\n", strings.ToUpper(string(g.Direction)),
			g.Start.UTC().Format("2006-01-02"))
		fmt.Fprintf(&b, "  - Size: $%.2f (%.2f%%)\n", g.Size, g.SizePct)
		fmt.Fprintf(&b, "  - Closure Level: $%.2f\n", g.ClosePrice)
		fmt.Fprintf(&b, "  - Age: %.1f days\n", og.DaysSince)
		fmt.Fprintf(&b, "  - Distance to Close: $%.2f (%.2f%%)\n", og.Distance, og.DistancePct)
	}

	fmt.Fprintln(&b, rule)
	return b.String()
}
