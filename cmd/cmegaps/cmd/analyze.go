package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/cmegaps/binance"
	"github.com/rustyeddy/cmegaps/config"
	"github.com/rustyeddy/cmegaps/gaps"
	"github.com/rustyeddy/cmegaps/journal"
	"github.com/rustyeddy/cmegaps/market"
	"github.com/rustyeddy/cmegaps/pkg/id"
	"github.com/rustyeddy/cmegaps/report"
)

var analyzeFlags = struct {
	configPath string
	symbol     string
	start      string
	end        string
	timezone   string
	tolerance  float64
	csvFile    string
	dbPath     string
	outputDir  string
	saveData   bool
}{}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Download candles, detect gaps, track closures, print statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		table, err := loadCandles(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := table.Validate(); err != nil {
			return fmt.Errorf("bad candle data: %w", err)
		}
		fmt.Printf("Loaded %d candles (%s to %s)\n", len(table),
			table.Start().Format("2006-01-02"), table.End().Format("2006-01-02"))

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		detected := gaps.Detect(table, loc)
		fmt.Printf("Detected %d gaps\n", len(detected))

		tracked := gaps.TrackClosures(table, detected, cfg.Analysis.Tolerance)
		summary := gaps.Summarize(tracked)

		fmt.Print(report.RenderSummary(summary))

		if cfg.Output.SaveData {
			if err := saveData(cfg, table, tracked); err != nil {
				return err
			}
		}
		return recordRun(cfg, table, tracked, summary)
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.configPath, "config", "c", "", "config file (YAML or JSON)")
	f.StringVar(&analyzeFlags.symbol, "symbol", "", "trading pair, e.g. BTCUSDT")
	f.StringVar(&analyzeFlags.start, "start", "", "start date YYYY-MM-DD (default: 3 years ago)")
	f.StringVar(&analyzeFlags.end, "end", "", "end date YYYY-MM-DD (default: now)")
	f.StringVar(&analyzeFlags.timezone, "tz", "", "session timezone (default: America/Chicago)")
	f.Float64Var(&analyzeFlags.tolerance, "tolerance", -1, "closure tolerance, e.g. 0.001")
	f.StringVar(&analyzeFlags.csvFile, "csv", "", "load candles from CSV instead of downloading")
	f.StringVar(&analyzeFlags.dbPath, "db", "", "record the run in this SQLite journal")
	f.StringVarP(&analyzeFlags.outputDir, "output-dir", "o", "", "output directory")
	f.BoolVar(&analyzeFlags.saveData, "save-data", false, "save candles and gaps to CSV")

	rootCmd.AddCommand(analyzeCmd)
}

// resolveConfig layers CLI flags over the config file (or defaults).
func resolveConfig() (*config.Config, error) {
	cfg := config.Default()
	if analyzeFlags.configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(analyzeFlags.configPath); err != nil {
			return nil, err
		}
	}

	if analyzeFlags.symbol != "" {
		cfg.Data.Symbol = analyzeFlags.symbol
	}
	if analyzeFlags.start != "" {
		cfg.Data.Start = analyzeFlags.start
	}
	if analyzeFlags.end != "" {
		cfg.Data.End = analyzeFlags.end
	}
	if analyzeFlags.csvFile != "" {
		cfg.Data.CSVFile = analyzeFlags.csvFile
	}
	if analyzeFlags.timezone != "" {
		cfg.Analysis.Timezone = analyzeFlags.timezone
	}
	if analyzeFlags.tolerance >= 0 {
		cfg.Analysis.Tolerance = analyzeFlags.tolerance
	}
	if analyzeFlags.dbPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = analyzeFlags.dbPath
	}
	if analyzeFlags.outputDir != "" {
		cfg.Output.Dir = analyzeFlags.outputDir
	}
	if analyzeFlags.saveData {
		cfg.Output.SaveData = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadCandles(ctx context.Context, cfg *config.Config) (market.Table, error) {
	if cfg.Data.CSVFile != "" {
		fmt.Printf("Loading candles from %s\n", cfg.Data.CSVFile)
		return journal.ReadCandlesCSV(cfg.Data.CSVFile)
	}

	req := binance.CandlesRequest{
		Symbol:   cfg.Data.Symbol,
		Interval: cfg.Data.Interval,
	}
	if cfg.Data.Start != "" {
		t, _ := time.Parse("2006-01-02", cfg.Data.Start)
		req.Start = t.UTC()
	}
	if cfg.Data.End != "" {
		t, _ := time.Parse("2006-01-02", cfg.Data.End)
		req.End = t.UTC()
	}

	fmt.Printf("Downloading %s %s candles from Binance...\n", cfg.Data.Symbol, cfg.Data.Interval)
	return binance.NewClient().GetCandles(ctx, req)
}

func saveData(cfg *config.Config, table market.Table, tracked []gaps.Gap) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}

	candlesPath := filepath.Join(cfg.Output.Dir, "price_data.csv")
	if err := journal.WriteCandlesCSV(candlesPath, table); err != nil {
		return fmt.Errorf("save candles: %w", err)
	}
	gapsPath := filepath.Join(cfg.Output.Dir, "cme_gaps.csv")
	if err := journal.WriteGapsCSV(gapsPath, tracked); err != nil {
		return fmt.Errorf("save gaps: %w", err)
	}

	fmt.Printf("Saved %s and %s\n", candlesPath, gapsPath)
	return nil
}

func recordRun(cfg *config.Config, table market.Table, tracked []gaps.Gap, summary gaps.Summary) error {
	var j journal.Journal = journal.Noop{}
	if cfg.Journal.Type == "sqlite" {
		sj, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		j = sj
	}
	defer j.Close()

	run := journal.RunRecord{
		RunID:     id.New(),
		Symbol:    cfg.Data.Symbol,
		Timezone:  cfg.Analysis.Timezone,
		Started:   time.Now().UTC(),
		RangeFrom: table.Start(),
		RangeTo:   table.End(),
		Candles:   len(table),
		TotalGaps: summary.TotalGaps,
		Closed:    summary.ClosedGaps,
	}
	if err := j.RecordRun(run, tracked); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	if cfg.Journal.Type == "sqlite" {
		fmt.Printf("Journaled run %s to %s\n", run.RunID, cfg.Journal.DBPath)
	}
	return nil
}
