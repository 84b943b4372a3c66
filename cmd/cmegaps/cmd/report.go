package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/cmegaps/gaps"
	"github.com/rustyeddy/cmegaps/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report unclosed gaps and how far price is from filling them",
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

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		tracked := gaps.TrackClosures(table, gaps.Detect(table, loc), cfg.Analysis.Tolerance)
		fmt.Print(report.RenderOpenGaps(report.OpenGaps(table, tracked)))
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&analyzeFlags.configPath, "config", "c", "", "config file (YAML or JSON)")
	f.StringVar(&analyzeFlags.symbol, "symbol", "", "trading pair, e.g. BTCUSDT")
	f.StringVar(&analyzeFlags.start, "start", "", "start date YYYY-MM-DD")
	f.StringVar(&analyzeFlags.end, "end", "", "end date YYYY-MM-DD")
	f.StringVar(&analyzeFlags.timezone, "tz", "", "session timezone")
	f.StringVar(&analyzeFlags.csvFile, "csv", "", "load candles from CSV instead of downloading")

	rootCmd.AddCommand(reportCmd)
}
