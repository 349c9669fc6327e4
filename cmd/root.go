package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tayloree/coupon-report/internal/advisor"
	"github.com/tayloree/coupon-report/internal/config"
	"github.com/tayloree/coupon-report/internal/coupon"
	"github.com/tayloree/coupon-report/internal/display"
	"github.com/tayloree/coupon-report/internal/export"
	"github.com/tayloree/coupon-report/internal/filter"
	"github.com/tayloree/coupon-report/internal/logging"
	"github.com/tayloree/coupon-report/internal/report"
	"github.com/tayloree/coupon-report/internal/source"
)

var (
	flagInput  string
	flagSample bool
	flagToday  string
	flagOutput string
	flagNoSave bool
	flagXLSX   string
	flagQuery  string
	flagGroup  string
	flagStatus string
	flagLimit  int
	flagJSON   bool
)

var rootCmd = &cobra.Command{
	Use:   "couponcli",
	Short: "Analyze coupons by validity and suggest combinations",
	Long: "CLI tool that sorts coupons into usable-today, upcoming and expired buckets,\n" +
		"extracts applicable items and conditions from their descriptions, suggests\n" +
		"combinations and writes a markdown report.\n\n" +
		"Coupons are read from --input PATH or piped JSON on stdin.\n\n" +
		"Agent-friendly mode: minor syntax issues are auto-corrected when intent is clear " +
		"(for example: -input coupons.json, today=2025-01-20, --tody 2025-01-20).",
	Example: `  couponcli --input coupons.json
  couponcli --input coupons.json --today 2025-01-20 --xlsx coupons.xlsx
  couponcli sample | couponcli --no-save
  couponcli buckets --input coupons.json
  couponcli suggest --input coupons.json --json
  couponcli browse --sample`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagInput, "input", "i", "", "Coupon JSON file (use - for stdin)")
	pf.BoolVar(&flagSample, "sample", false, "Analyze the built-in sample coupons")
	pf.StringVarP(&flagToday, "today", "t", "", "Evaluation date, e.g. 2025-01-20 (default: today)")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.MarkFlagsMutuallyExclusive("input", "sample")

	f := rootCmd.Flags()
	f.StringVarP(&flagOutput, "output", "o", "", "Report path (default coupon_analysis.md)")
	f.BoolVar(&flagNoSave, "no-save", false, "Print the report without saving it")
	f.StringVar(&flagXLSX, "xlsx", "", "Also write an XLSX workbook to this path")
	registerCouponFilterFlags(f)
}

// Execute runs the root command.
func Execute() {
	os.Exit(runCLI(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	resetCLIState()

	normalizedArgs, notes := normalizeCLIArgs(args)
	for _, note := range notes {
		fmt.Fprintf(stderr, "note: %s\n", note)
	}

	if len(normalizedArgs) == 0 && isTTYReader(stdin) {
		if err := printQuickStart(stdout, !isTTY(stdout)); err != nil {
			cliErr := classifyCLIError(err)
			display.PrintError(stderr, formatCLIErrorText(cliErr))
			return cliErr.ExitCode
		}
		return ExitSuccess
	}

	if shouldAutoJSON(normalizedArgs, isTTY(stdout)) {
		normalizedArgs = append(normalizedArgs, "--json")
	}

	setCommandIO(rootCmd, stdin, stdout, stderr)
	rootCmd.SetArgs(normalizedArgs)

	if err := rootCmd.Execute(); err != nil {
		cliErr := classifyCLIError(err)
		if hasJSONPreference(normalizedArgs) {
			if jerr := printCLIErrorJSON(stderr, cliErr); jerr != nil {
				fmt.Fprintln(stderr, formatCLIErrorText(classifyCLIError(jerr)))
				return ExitInternal
			}
		} else {
			display.PrintError(stderr, formatCLIErrorText(cliErr))
		}
		return cliErr.ExitCode
	}
	return ExitSuccess
}

func setCommandIO(cmd *cobra.Command, stdin io.Reader, stdout, stderr io.Writer) {
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdin, stdout, stderr)
	}
}

// resetCLIState restores every flag to its default so repeated runs in one
// process start clean.
func resetCLIState() {
	resetFlags(rootCmd)
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func registerCouponFilterFlags(f *pflag.FlagSet) {
	f.StringVarP(&flagQuery, "query", "q", "", "Keep coupons whose name or description contains this text")
	f.StringVarP(&flagGroup, "group", "g", "", "Keep coupons in a product group (drink, food, other)")
	f.StringVar(&flagStatus, "status", "", "Keep coupons with this status (e.g., available, used)")
	f.IntVarP(&flagLimit, "limit", "n", 0, "Analyze at most this many coupons (0 = all)")
}

func currentFilterOptions() filter.Options {
	return filter.Options{
		Query:  flagQuery,
		Group:  flagGroup,
		Status: flagStatus,
		Limit:  flagLimit,
	}
}

func validateFilterFlags() error {
	if strings.TrimSpace(flagGroup) != "" {
		if _, ok := advisor.ParseGroup(flagGroup); !ok {
			return invalidArgsError(
				fmt.Sprintf("unknown product group %q (use drink, food, or other)", flagGroup),
				"couponcli --input coupons.json --group drink",
				"couponcli --input coupons.json --group food",
			)
		}
	}
	if flagLimit < 0 {
		return invalidArgsError(
			"--limit must be zero or positive",
			"couponcli --input coupons.json --limit 10",
		)
	}
	return nil
}

// runEnv carries the per-run configuration shared by every command.
type runEnv struct {
	cfg   *config.Config
	log   *logrus.Entry
	runID string
	today time.Time
}

func prepareRun(cmd *cobra.Command) (*runEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	_, log := logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	today, err := resolveToday(cfg)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"today":   today.Format("2006-01-02"),
	}).Debug("run.start")

	return &runEnv{cfg: cfg, log: log, runID: logging.RunID(log), today: today}, nil
}

func resolveToday(cfg *config.Config) (time.Time, error) {
	raw := strings.TrimSpace(flagToday)
	origin := "--today"
	if raw == "" {
		raw = strings.TrimSpace(cfg.Today)
		origin = "COUPON_TODAY"
	}
	if raw == "" {
		return coupon.Day(time.Now()), nil
	}
	day, ok := coupon.ParseDate(raw)
	if !ok {
		return time.Time{}, invalidArgsError(
			fmt.Sprintf("invalid date for %s: %q", origin, raw),
			"Use YYYY-MM-DD, YYYY/MM/DD, MM/DD/YYYY or DD/MM/YYYY.",
			"couponcli --input coupons.json --today 2025-01-20",
		)
	}
	return day, nil
}

// loadRecords reads raw coupon records from the sample set, a file, or stdin.
// It also returns a description of where the records came from. An empty
// coupon list is valid; only a missing payload is an error.
func loadRecords(cmd *cobra.Command, env *runEnv) (records []source.Record, origin string, err error) {

	switch {
	case flagSample:
		records, origin = source.SampleRecords(), "sample"
	case flagInput == "-":
		records, err = source.Decode(cmd.InOrStdin())
		origin = "stdin"
	case flagInput != "":
		records, err = source.LoadFile(flagInput)
		origin = flagInput
	case isTTYReader(cmd.InOrStdin()):
		return nil, "", invalidArgsError(
			"no coupon input: provide --input PATH, --sample, or pipe JSON on stdin",
			"couponcli --input coupons.json",
			"couponcli sample | couponcli",
		)
	default:
		records, err = source.Decode(cmd.InOrStdin())
		origin = "stdin"
	}
	if errors.Is(err, source.ErrNoInput) {
		return nil, "", notFoundError(
			fmt.Sprintf("no coupons found in %s", origin),
			"couponcli sample > coupons.json",
		)
	}
	if err != nil {
		return nil, "", inputError("loading coupons from "+origin, err)
	}

	fields := logrus.Fields{"origin": origin, "records": len(records)}
	if len(records) > 0 {
		fields["first"] = records[0].Label()
	}
	env.log.WithFields(fields).Debug("input.loaded")
	return records, origin, nil
}

// analysis is the result of running the pipeline over the selected records.
type analysis struct {
	input   report.Input
	records []source.Record
	origin  string
}

func analyze(cmd *cobra.Command, env *runEnv) (*analysis, error) {
	if err := validateFilterFlags(); err != nil {
		return nil, err
	}

	records, origin, err := loadRecords(cmd, env)
	if err != nil {
		return nil, err
	}

	opts := currentFilterOptions()
	if opts.Active() && len(records) > 0 {
		loaded := len(records)
		records = filter.Apply(records, opts)
		fields := logrus.Fields{"loaded": loaded, "kept": len(records)}
		if len(records) > 0 {
			fields["first"] = records[0].Label()
		}
		env.log.WithFields(fields).Debug("filter.applied")
		if len(records) == 0 {
			return nil, notFoundError(
				"no coupons match your filters",
				"Relax filters like --query/--group/--status.",
			)
		}
	}

	buckets := coupon.Categorize(records, env.today)
	suggestions := advisor.Suggest(buckets.Today)

	env.log.WithFields(logrus.Fields{
		"today":       len(buckets.Today),
		"future":      len(buckets.Future),
		"expired":     len(buckets.Expired),
		"suggestions": len(suggestions),
	}).Debug("analysis.done")

	return &analysis{
		input: report.Input{
			Today:       env.today,
			Buckets:     buckets,
			Suggestions: suggestions,
		},
		records: records,
		origin:  origin,
	}, nil
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	env, err := prepareRun(cmd)
	if err != nil {
		return err
	}
	result, err := analyze(cmd, env)
	if err != nil {
		return err
	}

	text := report.Render(result.input)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if !flagJSON {
		display.PrintContext(stderr, fmt.Sprintf("Analyzing %d coupons from %s", len(result.records), result.origin))
		fmt.Fprint(stdout, text)
	}

	savedTo := ""
	if !flagNoSave {
		path := flagOutput
		if path == "" {
			path = env.cfg.OutputPath
		}
		if err := report.Save(path, text); err != nil {
			env.log.WithError(err).Debug("report.save.failed")
			display.PrintWarning(stderr, fmt.Sprintf("warning: could not save report: %v", err))
		} else {
			savedTo = path
			if !flagJSON {
				display.PrintSaved(stderr, "Report", path)
			}
		}
	}

	workbook := ""
	if flagXLSX != "" {
		if err := export.WriteFile(flagXLSX, result.input, env.log); err != nil {
			env.log.WithError(err).Debug("workbook.save.failed")
			display.PrintWarning(stderr, fmt.Sprintf("warning: could not save workbook: %v", err))
		} else {
			workbook = flagXLSX
			if !flagJSON {
				display.PrintSaved(stderr, "Workbook", flagXLSX)
			}
		}
	}

	if flagJSON {
		doc := display.Analysis(env.runID, result.input, text)
		doc.Counts.Statuses = filter.Statuses(result.records)
		doc.SavedTo = savedTo
		doc.Workbook = workbook
		return display.PrintJSON(stdout, doc)
	}
	return nil
}
