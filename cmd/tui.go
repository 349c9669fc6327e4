package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tayloree/coupon-report/internal/display"
	"github.com/tayloree/coupon-report/internal/report"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"tui"},
	Short:   "Browse coupons interactively in the terminal",
	Example: `  couponcli browse --input coupons.json
  couponcli browse --sample --today 2025-01-20 --group food`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	registerCouponFilterFlags(browseCmd.Flags())
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if err := validateFilterFlags(); err != nil {
		return err
	}
	if !flagJSON && !isInteractiveSession(cmd.InOrStdin(), cmd.OutOrStdout()) {
		return invalidArgsError(
			"`couponcli browse` requires an interactive terminal",
			"Use `couponcli --input coupons.json --json` in pipelines.",
		)
	}

	env, err := prepareRun(cmd)
	if err != nil {
		return err
	}

	if flagJSON {
		result, err := analyze(cmd, env)
		if err != nil {
			return err
		}
		return display.PrintJSON(cmd.OutOrStdout(), display.Analysis(env.runID, result.input, report.Render(result.input)))
	}

	if flagInput == "" && !flagSample {
		return invalidArgsError(
			"`couponcli browse` needs --input PATH or --sample",
			"couponcli browse --input coupons.json",
			"couponcli browse --sample",
		)
	}

	cfg := tuiLoadConfig{
		initialOpts: currentFilterOptions(),
		today:       env.today,
		load: func() (tuiData, error) {
			records, origin, err := loadRecords(cmd, env)
			if err != nil {
				return tuiData{}, err
			}
			label := origin
			if flagSample {
				label = "sample coupons"
			}
			return tuiData{label: label, records: records}, nil
		},
	}

	program := tea.NewProgram(
		newLoadingBrowseModel(cfg),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	if m, ok := final.(browseModel); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

func isInteractiveSession(stdin io.Reader, stdout io.Writer) bool {
	return isTTYReader(stdin) && isTTY(stdout)
}
