package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tayloree/coupon-report/internal/display"
	"github.com/tayloree/coupon-report/internal/filter"
)

type bucketsOutput struct {
	RunID  string             `json:"runId"`
	Today  string             `json:"today"`
	Counts display.CountsJSON `json:"counts"`
}

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Count coupons per validity bucket and product group",
	Example: `  couponcli buckets --input coupons.json
  couponcli buckets -i coupons.json --today 2025-01-20 --json`,
	RunE: runBuckets,
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
	registerCouponFilterFlags(bucketsCmd.Flags())
}

func runBuckets(cmd *cobra.Command, _ []string) error {
	env, err := prepareRun(cmd)
	if err != nil {
		return err
	}
	result, err := analyze(cmd, env)
	if err != nil {
		return err
	}

	counts := display.Counts(result.input.Buckets, filter.Statuses(result.records))

	if flagJSON {
		return display.PrintJSON(cmd.OutOrStdout(), bucketsOutput{
			RunID:  env.runID,
			Today:  env.today.Format("2006-01-02"),
			Counts: counts,
		})
	}
	display.PrintBuckets(cmd.OutOrStdout(), env.today, counts)
	return nil
}
