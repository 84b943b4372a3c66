package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "BTCUSDT", cfg.Data.Symbol)
	assert.Equal(t, "America/Chicago", cfg.Analysis.Timezone)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"bad exchange", func(c *Config) { c.Data.Exchange = "coinbase" }, "data.exchange"},
		{"no symbol", func(c *Config) { c.Data.Symbol = "" }, "data.symbol"},
		{"bad date", func(c *Config) { c.Data.Start = "01/02/2023" }, "YYYY-MM-DD"},
		{"bad timezone", func(c *Config) { c.Analysis.Timezone = "Mars/Olympus" }, "timezone"},
		{"bad tolerance", func(c *Config) { c.Analysis.Tolerance = 1.5 }, "tolerance"},
		{"bad journal type", func(c *Config) { c.Journal.Type = "csv" }, "journal.type"},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite" }, "db_path"},
		{"no output dir", func(c *Config) { c.Output.Dir = "" }, "output.dir"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mut(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := `
data:
  exchange: binance
  symbol: ETHUSDT
  interval: 1h
  start: "2022-01-01"
analysis:
  timezone: America/Chicago
  tolerance: 0.002
journal:
  type: sqlite
  db_path: ./gaps.db
output:
  dir: out
  save_data: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ETHUSDT", cfg.Data.Symbol)
	assert.Equal(t, 0.002, cfg.Analysis.Tolerance)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.True(t, cfg.Output.SaveData)
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  exchange: kraken\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	cfg.Data.Symbol = "SOLUSDT"
	cfg.Output.SaveData = true

	for _, name := range []string{"cfg.yaml", "cfg.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, got, name)
	}
}
