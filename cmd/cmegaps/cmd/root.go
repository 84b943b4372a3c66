package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cmegaps",
	Short: "Analyze CME weekend gaps in Bitcoin price data",
	Long: `cmegaps detects CME weekend gaps in a continuously-traded asset's
hourly candles, tracks when price comes back to fill them, and reports
closure statistics.

The CME futures market closes Friday 4 PM and reopens Sunday 5 PM
Chicago time; spot keeps trading through the weekend, so the reopen
often prints away from Friday's close. Traders watch how often and how
fast those gaps fill.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
