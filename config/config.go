package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/cmegaps/gaps"
)

// Config is the complete analyzer configuration.
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}

// DataConfig controls where candles come from.
type DataConfig struct {
	Exchange string `json:"exchange" yaml:"exchange"` // only "binance"
	Symbol   string `json:"symbol" yaml:"symbol"`
	Interval string `json:"interval" yaml:"interval"`
	Start    string `json:"start,omitempty" yaml:"start,omitempty"` // YYYY-MM-DD; empty = 3 years ago
	End      string `json:"end,omitempty" yaml:"end,omitempty"`     // YYYY-MM-DD; empty = now
	CSVFile  string `json:"csv_file,omitempty" yaml:"csv_file,omitempty"`
}

// AnalysisConfig holds the gap pipeline parameters.
type AnalysisConfig struct {
	Timezone  string  `json:"timezone" yaml:"timezone"`   // session timezone, e.g. America/Chicago
	Tolerance float64 `json:"tolerance" yaml:"tolerance"` // closure tolerance, e.g. 0.001
}

// JournalConfig controls run persistence.
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "none" or "sqlite"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// OutputConfig controls report/CSV output.
type OutputConfig struct {
	Dir      string `json:"dir" yaml:"dir"`
	SaveData bool   `json:"save_data" yaml:"save_data"`
}

// LoadFromFile loads configuration from a file, YAML first with a JSON
// fallback, then validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the config, format chosen by extension (.yaml/.yml
// vs anything else as JSON).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if n := len(path); (n > 5 && path[n-5:] == ".yaml") || (n > 4 && path[n-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Data.Exchange != "binance" {
		return fmt.Errorf("data.exchange must be 'binance', got %q", c.Data.Exchange)
	}
	if c.Data.Symbol == "" {
		return fmt.Errorf("data.symbol is required")
	}
	if c.Data.Interval == "" {
		return fmt.Errorf("data.interval is required")
	}
	for _, d := range []string{c.Data.Start, c.Data.End} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("bad date %q: want YYYY-MM-DD", d)
		}
	}
	if c.Analysis.Timezone == "" {
		return fmt.Errorf("analysis.timezone is required")
	}
	if _, err := time.LoadLocation(c.Analysis.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Analysis.Timezone, err)
	}
	if c.Analysis.Tolerance < 0 || c.Analysis.Tolerance >= 1 {
		return fmt.Errorf("analysis.tolerance must be in [0, 1), got %g", c.Analysis.Tolerance)
	}
	switch c.Journal.Type {
	case "none":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	default:
		return fmt.Errorf("journal.type must be 'none' or 'sqlite'")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	return nil
}

// Location returns the parsed session timezone. Call after Validate.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Analysis.Timezone)
}

// Default returns the stock configuration: Bitcoin hourly candles from
// Binance against CME hours in Chicago time.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Exchange: "binance",
			Symbol:   "BTCUSDT",
			Interval: "1h",
		},
		Analysis: AnalysisConfig{
			Timezone:  "America/Chicago",
			Tolerance: gaps.DefaultTolerance,
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Output: OutputConfig{
			Dir: "output",
		},
	}
}
