package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tayloree/coupon-report/internal/display"
	"github.com/tayloree/coupon-report/internal/source"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the built-in sample coupons as JSON",
	Long:  "Print the built-in demo coupons. The output is valid input for every other command.",
	Example: `  couponcli sample > coupons.json
  couponcli sample | couponcli --today 2025-01-20`,
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	return display.PrintJSON(cmd.OutOrStdout(), source.SampleRecords())
}
