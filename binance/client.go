// Package binance downloads hourly OHLCV candles from the Binance spot
// REST API. It is the data-acquisition side of the gap pipeline; the
// analysis itself never talks to the network.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rustyeddy/cmegaps/market"
)

// BaseURL is the public Binance spot API endpoint.
const BaseURL = "https://api.binance.com"

// maxLimit is the kline page size cap imposed by the API.
const maxLimit = 1000

// Client is a Binance market-data API client. The zero value is not
// usable; use NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the public API.
func NewClient() *Client {
	return &Client{
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CandlesRequest describes a historical kline download.
type CandlesRequest struct {
	Symbol   string    // required, e.g. "BTCUSDT"
	Interval string    // kline interval (default "1h")
	Start    time.Time // inclusive; zero means the API default window
	End      time.Time // exclusive-ish: candles opening at or before End
}

// GetCandles downloads the requested range, paginating at the API's
// 1000-candle limit, and returns an ascending candle table.
func (c *Client) GetCandles(ctx context.Context, req CandlesRequest) (market.Table, error) {
	if req.Symbol == "" {
		return nil, fmt.Errorf("binance: symbol is required")
	}
	interval := req.Interval
	if interval == "" {
		interval = "1h"
	}

	// Match the API's own defaults for an open-ended request: the last
	// three years up to now.
	if req.End.IsZero() {
		req.End = time.Now().UTC()
	}
	if req.Start.IsZero() {
		req.Start = req.End.AddDate(-3, 0, 0)
	}

	var table market.Table

	start := req.Start.UnixMilli()
	end := req.End.UnixMilli()

	for {
		batch, err := c.getKlines(ctx, req.Symbol, interval, start, end)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		table = append(table, batch...)

		if len(batch) < maxLimit {
			break
		}
		next := batch[len(batch)-1].Time.UnixMilli() + 1
		if next <= start || next >= end {
			break
		}
		start = next
	}

	return table, nil
}

// numField accepts the API's price/volume encoding, which is usually a
// JSON string but occasionally a bare number.
func numField(v any) (float64, error) {
	switch x := v.(type) {
	case string:
		return strconv.ParseFloat(x, 64)
	case float64:
		return x, nil
	default:
		return 0, fmt.Errorf("unexpected field type %T", v)
	}
}

func (c *Client) getKlines(ctx context.Context, symbol, interval string, startMs, endMs int64) (market.Table, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("startTime", strconv.FormatInt(startMs, 10))
	q.Set("endTime", strconv.FormatInt(endMs, 10))
	q.Set("limit", strconv.Itoa(maxLimit))

	u := fmt.Sprintf("%s/api/v3/klines?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("klines request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("klines request failed: status %d: %s", resp.StatusCode, string(body))
	}

	// Klines come back as positional arrays with mixed types:
	// [openTime(ms), "open", "high", "low", "close", "volume", closeTime, ...]
	var rows [][]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}

	table := make(market.Table, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("kline %d: expected at least 6 fields, got %d", i, len(row))
		}

		openTime, ok := row[0].(float64)
		if !ok {
			return nil, fmt.Errorf("kline %d: open time is %T, want number", i, row[0])
		}
		openMs := int64(openTime)

		var px [5]float64
		for j := 1; j <= 5; j++ {
			v, err := numField(row[j])
			if err != nil {
				return nil, fmt.Errorf("kline %d field %d: %w", i, j, err)
			}
			px[j-1] = v
		}

		table = append(table, market.Candle{
			Time:   time.UnixMilli(openMs).UTC(),
			Open:   px[0],
			High:   px[1],
			Low:    px[2],
			Close:  px[3],
			Volume: px[4],
		})
	}

	return table, nil
}
