package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
)

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func isTTY(w io.Writer) bool { return isTerminal(w) }

func isTTYReader(r io.Reader) bool { return isTerminal(r) }

func hasJSONPreference(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "--json" || strings.HasPrefix(a, "--json=")
	})
}

func hasHelpRequest(args []string) bool {
	return slices.Contains(args, "-h") || slices.Contains(args, "--help")
}

// autoJSONCommands print JSON instead of styled summaries when stdout is piped.
// The analysis itself always prints the markdown report.
var autoJSONCommands = []string{"buckets", "suggest"}

func shouldAutoJSON(args []string, stdoutIsTTY bool) bool {
	if stdoutIsTTY || len(args) == 0 || hasJSONPreference(args) || hasHelpRequest(args) {
		return false
	}
	return slices.Contains(autoJSONCommands, firstCommand(args))
}

// knownShorthands maps single-character shorthands to whether they take a value.
var knownShorthands = map[byte]bool{
	'i': true, // --input
	't': true, // --today
	'o': true, // --output
	'q': true, // --query
	'g': true, // --group
	'n': true, // --limit
}

// takesValue reports whether a flag token consumes the following argument.
func takesValue(arg string) bool {
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		name, inline := splitFlag(name)
		spec, known := knownFlags[name]
		return known && spec.requiresValue && inline == ""
	}
	return len(arg) == 2 && knownShorthands[arg[1]]
}

// firstCommand returns the first positional argument, skipping flag values.
func firstCommand(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return ""
		case !strings.HasPrefix(arg, "-"):
			return arg
		case takesValue(arg):
			i++
		}
	}
	return ""
}

type quickStartJSON struct {
	Name     string   `json:"name"`
	Usage    string   `json:"usage"`
	Examples []string `json:"examples"`
}

var quickStart = quickStartJSON{
	Name:  "couponcli",
	Usage: "couponcli [flags] | [buckets|suggest|sample|browse] [flags]",
	Examples: []string{
		"couponcli --input coupons.json --today 2025-01-20",
		"couponcli sample | couponcli --no-save",
		"couponcli buckets --input coupons.json --json",
	},
}

const quickStartFlags = "--input --sample --today --output --no-save --xlsx --json --query --group --status --limit"

func printQuickStart(w io.Writer, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(quickStart)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nusage: %s\nexamples:\n", quickStart.Name, quickStart.Usage)
	for _, ex := range quickStart.Examples {
		fmt.Fprintf(&b, "  %s\n", ex)
	}
	fmt.Fprintf(&b, "flags: %s\n", quickStartFlags)
	_, err := io.WriteString(w, b.String())
	return err
}
