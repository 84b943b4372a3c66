package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/cmegaps/gaps"
	"github.com/rustyeddy/cmegaps/market"
)

func sampleGaps() []gaps.Gap {
	start := time.Date(2023, 1, 6, 22, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 8, 23, 0, 0, 0, time.UTC)
	return []gaps.Gap{
		{
			Start: start, End: end,
			ClosePrice: 30000, OpenPrice: 30500,
			Size: 500, SizePct: 500.0 / 30000 * 100, Direction: gaps.Up,
			Closure: &gaps.Closure{Time: end.Add(72 * time.Hour), Hours: 72, Days: 3},
		},
		{
			Start: start.AddDate(0, 0, 7), End: end.AddDate(0, 0, 7),
			ClosePrice: 30500, OpenPrice: 30100,
			Size: -400, SizePct: -400.0 / 30500 * 100, Direction: gaps.Down,
		},
	}
}

func TestWriteGapsCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gaps.csv")
	require.NoError(t, WriteGapsCSV(path, sampleGaps()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	want := []string{
		"gap_start", "gap_end", "close_price", "open_price", "gap_size",
		"gap_size_pct", "direction", "is_closed", "closure_time",
		"hours_to_close", "days_to_close",
	}
	assert.Equal(t, want, rows[0])

	// Closed gap carries closure columns; open gap leaves them empty.
	assert.Equal(t, "true", rows[1][7])
	assert.Equal(t, "72", rows[1][9])
	assert.Equal(t, "false", rows[2][7])
	assert.Equal(t, "", rows[2][8])
}

func TestCandlesCSVRoundTrip(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC)
	table := market.Table{
		{Time: start, Open: 30000, High: 30100.5, Low: 29900.25, Close: 30050, Volume: 12.5},
		{Time: start.Add(time.Hour), Open: 30050, High: 30200, Low: 30000, Close: 30150, Volume: 0},
	}

	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, WriteCandlesCSV(path, table))

	got, err := ReadCandlesCSV(path)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestReadCandlesCSVEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, WriteCandlesCSV(path, nil))

	got, err := ReadCandlesCSV(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
