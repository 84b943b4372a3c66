// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/cmegaps/gaps"
	"github.com/rustyeddy/cmegaps/market"
)

// WriteCandlesCSV saves a candle table for later offline runs.
func WriteCandlesCSV(path string, table market.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}
	for _, c := range table {
		w.Write([]string{
			c.Time.UTC().Format(time.RFC3339),
			fnum(c.Open), fnum(c.High), fnum(c.Low), fnum(c.Close), fnum(c.Volume),
		})
	}

	w.Flush()
	return w.Error()
}

// WriteGapsCSV saves an enriched gap table. Closure columns are empty
// for open gaps.
func WriteGapsCSV(path string, table []gaps.Gap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"gap_start", "gap_end", "close_price", "open_price", "gap_size",
		"gap_size_pct", "direction", "is_closed", "closure_time",
		"hours_to_close", "days_to_close",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, g := range table {
		row := []string{
			g.Start.UTC().Format(time.RFC3339),
			g.End.UTC().Format(time.RFC3339),
			fnum(g.ClosePrice),
			fnum(g.OpenPrice),
			fnum(g.Size),
			fnum(g.SizePct),
			string(g.Direction),
			strconv.FormatBool(g.Closed()),
			"", "", "",
		}
		if g.Closed() {
			row[8] = g.Closure.Time.UTC().Format(time.RFC3339)
			row[9] = fnum(g.Closure.Hours)
			row[10] = fnum(g.Closure.Days)
		}
		w.Write(row)
	}

	w.Flush()
	return w.Error()
}

// ReadCandlesCSV loads a table previously written by WriteCandlesCSV.
func ReadCandlesCSV(path string) (market.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	table := make(market.Table, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, err
		}
		vals := make([]float64, 5)
		for i := 0; i < 5; i++ {
			if vals[i], err = strconv.ParseFloat(row[i+1], 64); err != nil {
				return nil, err
			}
		}
		table = append(table, market.Candle{
			Time: ts, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3], Volume: vals[4],
		})
	}
	return table, nil
}

func fnum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
