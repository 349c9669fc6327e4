package cmd

import (
	"fmt"
	"slices"
	"strings"
)

type flagSpec struct {
	name          string
	requiresValue bool
}

var knownFlags = map[string]flagSpec{
	"input":   {name: "input", requiresValue: true},
	"sample":  {name: "sample"},
	"today":   {name: "today", requiresValue: true},
	"output":  {name: "output", requiresValue: true},
	"no-save": {name: "no-save"},
	"xlsx":    {name: "xlsx", requiresValue: true},
	"json":    {name: "json"},
	"query":   {name: "query", requiresValue: true},
	"group":   {name: "group", requiresValue: true},
	"status":  {name: "status", requiresValue: true},
	"limit":   {name: "limit", requiresValue: true},
	"help":    {name: "help"},
}

// flagNames is knownFlags' keys in a fixed order so typo correction is stable.
var flagNames = func() []string {
	names := make([]string, 0, len(knownFlags))
	for name := range knownFlags {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}()

var knownCommands = []string{
	"buckets",
	"suggest",
	"sample",
	"browse",
	"tui",
	"completion",
	"help",
}

var flagAliases = map[string]string{
	"file":     "input",
	"in":       "input",
	"demo":     "sample",
	"date":     "today",
	"as-of":    "today",
	"out":      "output",
	"nosave":   "no-save",
	"dry-run":  "no-save",
	"excel":    "xlsx",
	"workbook": "xlsx",
	"search":   "query",
	"category": "group",
	"state":    "status",
	"max":      "limit",
}

// argToken is one normalized command-line token.
type argToken struct {
	text       string
	note       string
	flag       bool
	needsValue bool
	command    bool
}

func flagToken(original, canonical, inline string) argToken {
	tok := argToken{
		text:       "--" + canonical + inline,
		flag:       true,
		needsValue: knownFlags[canonical].requiresValue,
	}
	if tok.text != original {
		tok.note = rewriteNote(original, tok.text)
	}
	return tok
}

func rewriteNote(from, to string) string {
	return fmt.Sprintf("interpreted `%s` as `%s`; use `%s` next time.", from, to, to)
}

// argNormalizer walks the arguments once, tracking which command is active
// and whether the next token is a flag value that must pass through untouched.
type argNormalizer struct {
	command      string
	nestedChosen bool
	bareFlags    bool
	pendingValue bool
	passthrough  bool

	out   []string
	notes []string
}

func normalizeCLIArgs(args []string) ([]string, []string) {
	n := &argNormalizer{
		bareFlags: true,
		out:       make([]string, 0, len(args)),
		notes:     make([]string, 0, 2),
	}
	for i, raw := range args {
		n.push(raw, i == len(args)-1)
	}
	return n.out, n.notes
}

func (n *argNormalizer) push(raw string, last bool) {
	if n.passthrough || n.pendingValue {
		n.pendingValue = false
		n.out = append(n.out, raw)
		return
	}
	if raw == "--" {
		n.passthrough = true
		n.out = append(n.out, raw)
		return
	}

	tok := classifyToken(raw, n.acceptsCommand(), n.bareFlags)
	n.out = append(n.out, tok.text)
	if tok.note != "" {
		n.notes = append(n.notes, tok.note)
	}

	switch {
	case tok.command && n.command == "":
		n.command = tok.text
		n.bareFlags = bareFlagRewriteAllowed(tok.text)
	case tok.command:
		n.nestedChosen = true
	case tok.flag && tok.needsValue && !strings.Contains(tok.text, "=") && !last:
		n.pendingValue = true
	}
}

func (n *argNormalizer) acceptsCommand() bool {
	if n.command == "" {
		return true
	}
	return allowsNestedCommandArg(n.command) && !n.nestedChosen
}

func classifyToken(raw string, canBeCommand, bareFlags bool) argToken {
	switch {
	case strings.HasPrefix(raw, "--"):
		name, inline := splitFlag(raw[2:])
		if canonical, ok := resolveFlagName(name); ok {
			return flagToken(raw, canonical, inline)
		}
		return argToken{text: raw, flag: true}

	case len(raw) == 2 && raw[0] == '-':
		return argToken{text: raw, flag: true, needsValue: knownShorthands[raw[1]]}

	case strings.HasPrefix(raw, "-"):
		// Single-dash long flags such as -input.
		name, inline := splitFlag(raw[1:])
		if canonical, ok := resolveFlagName(name); ok {
			return flagToken(raw, canonical, inline)
		}
		return argToken{text: raw, flag: true}
	}

	// Bare key=value such as today=2025-01-20.
	if name, inline, ok := strings.Cut(raw, "="); ok {
		if canonical, found := resolveFlagName(name); found {
			return flagToken(raw, canonical, "="+inline)
		}
	}

	if canBeCommand {
		if cmd, ok := resolveCommand(raw); ok {
			tok := argToken{text: cmd, command: true}
			if cmd != raw {
				tok.note = fmt.Sprintf("interpreted command `%s` as `%s`; use `%s` next time.", raw, cmd, cmd)
			}
			return tok
		}
	}

	if bareFlags {
		if canonical, ok := resolveFlagName(raw); ok {
			return flagToken(raw, canonical, "")
		}
	}
	return argToken{text: raw}
}

// bareFlagRewriteAllowed lists commands without positional arguments, where a
// bare `json` can only mean `--json`.
func bareFlagRewriteAllowed(command string) bool {
	return slices.Contains([]string{"buckets", "suggest", "sample", "browse"}, command)
}

// allowsNestedCommandArg lists commands that take another command name as argument.
func allowsNestedCommandArg(command string) bool {
	return command == "help" || command == "completion"
}

func resolveFlagName(raw string) (string, bool) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if canonical, ok := flagAliases[name]; ok {
		return canonical, true
	}
	if _, ok := knownFlags[name]; ok {
		return name, true
	}
	return closestMatch(name, flagNames, 2)
}

func resolveCommand(raw string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if slices.Contains(knownCommands, name) {
		return name, true
	}
	return closestMatch(name, knownCommands, 2)
}

func explainCLIError(err error) string {
	return formatCLIErrorText(classifyCLIError(err))
}

// splitFlag separates "name=value" into "name" and "=value".
func splitFlag(value string) (string, string) {
	if name, v, ok := strings.Cut(value, "="); ok {
		return name, "=" + v
	}
	return value, ""
}

// extractUnknownValue pulls the offending token out of a cobra or pflag
// message such as `unknown command "x" for "couponcli"`.
func extractUnknownValue(msg, marker string) string {
	_, rest, found := strings.Cut(msg, marker)
	if !found {
		return ""
	}
	rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))

	for _, quote := range []string{`"`, "`"} {
		if inner, ok := strings.CutPrefix(rest, quote); ok {
			if value, _, closed := strings.Cut(inner, quote); closed {
				return value
			}
		}
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		return strings.Trim(fields[0], "\"`")
	}
	return ""
}

// closestMatch returns the first candidate within maxDistance edits of target.
// Ties resolve to the earlier candidate.
func closestMatch(target string, candidates []string, maxDistance int) (string, bool) {
	best, bestDist := "", maxDistance+1
	for _, candidate := range candidates {
		if d := editDistance(target, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, bestDist <= maxDistance
}

// editDistance is the Levenshtein distance over bytes, using a single row.
func editDistance(a, b string) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			above := row[j]
			row[j] = min(above+1, row[j-1]+1, diag+cost)
			diag = above
		}
	}
	return row[len(b)]
}
