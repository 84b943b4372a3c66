package gaps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/cmegaps/market"
)

// 2023-01-06 was a Friday; 16:00 UTC with loc=UTC is a session close.
var (
	friClose = time.Date(2023, 1, 6, 16, 0, 0, 0, time.UTC)
	sunOpen  = time.Date(2023, 1, 8, 17, 0, 0, 0, time.UTC)
)

func bar(ts time.Time, o, h, l, c float64) market.Candle {
	return market.Candle{Time: ts, Open: o, High: h, Low: l, Close: c, Volume: 10}
}

// flat returns a candle whose OHLC all sit at px.
func flat(ts time.Time, px float64) market.Candle {
	return bar(ts, px, px, px, px)
}

func TestDetectEmptyTable(t *testing.T) {
	assert.Empty(t, Detect(nil, time.UTC))
	assert.Empty(t, Detect(market.Table{}, time.UTC))
}

func TestDetectNoSessionCandles(t *testing.T) {
	// A Monday-only table has no Friday 16:00 and no Sunday 17:00.
	mon := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	tab := market.Table{flat(mon, 30000), flat(mon.Add(time.Hour), 30100)}
	assert.Empty(t, Detect(tab, time.UTC))
}

func TestDetectUnpairedFriday(t *testing.T) {
	// Friday close exists but the series ends before any Sunday open.
	tab := market.Table{
		flat(friClose, 30000),
		flat(friClose.Add(time.Hour), 30010),
	}
	assert.Empty(t, Detect(tab, time.UTC))
}

func TestDetectUpGap(t *testing.T) {
	tab := market.Table{
		flat(friClose, 30000),
		bar(sunOpen, 30500, 30600, 30450, 30550),
	}

	gaps := Detect(tab, time.UTC)
	require.Len(t, gaps, 1)

	g := gaps[0]
	assert.Equal(t, friClose, g.Start)
	assert.Equal(t, sunOpen, g.End)
	assert.Equal(t, 30000.0, g.ClosePrice)
	assert.Equal(t, 30500.0, g.OpenPrice)
	assert.Equal(t, 500.0, g.Size)
	assert.InDelta(t, 1.6667, g.SizePct, 0.0001)
	assert.Equal(t, Up, g.Direction)
	assert.False(t, g.Closed())
}

func TestDetectDownGap(t *testing.T) {
	tab := market.Table{
		flat(friClose, 30000),
		bar(sunOpen, 29600, 29700, 29500, 29650),
	}

	gaps := Detect(tab, time.UTC)
	require.Len(t, gaps, 1)
	assert.Equal(t, -400.0, gaps[0].Size)
	assert.Equal(t, Down, gaps[0].Direction)
	assert.Negative(t, gaps[0].SizePct)
}

func TestDetectBelowThreshold(t *testing.T) {
	// |30000.005 - 30000| <= 0.01: not a gap.
	tab := market.Table{
		flat(friClose, 30000),
		flat(sunOpen, 30000.005),
	}
	assert.Empty(t, Detect(tab, time.UTC))
}

func TestDetectMultipleWeeksOrdered(t *testing.T) {
	week := 7 * 24 * time.Hour
	tab := market.Table{
		flat(friClose, 30000),
		flat(sunOpen, 30500),
		flat(friClose.Add(week), 31000),
		flat(sunOpen.Add(week), 30800),
	}

	gaps := Detect(tab, time.UTC)
	require.Len(t, gaps, 2)
	assert.True(t, gaps[0].Start.Before(gaps[1].Start))
	assert.Equal(t, Up, gaps[0].Direction)
	assert.Equal(t, Down, gaps[1].Direction)
}

func TestDetectPairsEarliestSunday(t *testing.T) {
	week := 7 * 24 * time.Hour
	// Two Sunday opens after the Friday; the first one must win.
	tab := market.Table{
		flat(friClose, 30000),
		flat(sunOpen, 30500),
		flat(sunOpen.Add(week), 32000),
	}

	gaps := Detect(tab, time.UTC)
	require.Len(t, gaps, 1)
	assert.Equal(t, sunOpen, gaps[0].End)
	assert.Equal(t, 30500.0, gaps[0].OpenPrice)
}

func TestDetectSessionTimezone(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// January is CST (UTC-6): Friday 22:00 UTC is 16:00 in Chicago and
	// Sunday 23:00 UTC is 17:00.
	fri := time.Date(2023, 1, 6, 22, 0, 0, 0, time.UTC)
	sun := time.Date(2023, 1, 8, 23, 0, 0, 0, time.UTC)
	tab := market.Table{
		flat(fri, 30000),
		flat(sun, 30250),
	}

	gaps := Detect(tab, chicago)
	require.Len(t, gaps, 1)
	assert.Equal(t, fri, gaps[0].Start)
	assert.Equal(t, sun, gaps[0].End)

	// The same table classified in UTC has no session candles at all.
	assert.Empty(t, Detect(tab, time.UTC))
}

func TestDetectIsPure(t *testing.T) {
	tab := market.Table{
		flat(friClose, 30000),
		flat(sunOpen, 30500),
	}
	snapshot := append(market.Table(nil), tab...)

	first := Detect(tab, time.UTC)
	second := Detect(tab, time.UTC)

	assert.Equal(t, snapshot, tab)
	assert.Equal(t, first, second)
}
