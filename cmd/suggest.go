package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tayloree/coupon-report/internal/display"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest coupon combinations for coupons usable today",
	Example: `  couponcli suggest --input coupons.json
  couponcli suggest --input coupons.json --group food
  couponcli sample | couponcli suggest --today 2025-01-20 --json`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	registerCouponFilterFlags(suggestCmd.Flags())
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	env, err := prepareRun(cmd)
	if err != nil {
		return err
	}
	result, err := analyze(cmd, env)
	if err != nil {
		return err
	}

	suggestions := result.input.Suggestions
	if flagJSON {
		return display.PrintJSON(cmd.OutOrStdout(), display.SuggestionsJSON(suggestions))
	}
	display.PrintSuggestions(cmd.OutOrStdout(), len(result.input.Buckets.Today), suggestions)
	return nil
}
