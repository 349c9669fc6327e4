package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// ExitSuccess is returned when the command succeeds.
	ExitSuccess = 0
	// ExitNotFound is returned when there is no input payload or no coupon matches the filters.
	ExitNotFound = 1
	// ExitInvalidArgs is returned when the command input is invalid.
	ExitInvalidArgs = 2
	// ExitInput is returned when the coupon input cannot be read, decoded or validated.
	ExitInput = 3
	// ExitInternal is returned for unexpected internal failures.
	ExitInternal = 4
)

const (
	codeInvalidArgs = "INVALID_ARGS"
	codeNotFound    = "NOT_FOUND"
	codeInput       = "INPUT_ERROR"
	codeInternal    = "INTERNAL_ERROR"
)

var exitCodes = map[string]int{
	codeInvalidArgs: ExitInvalidArgs,
	codeNotFound:    ExitNotFound,
	codeInput:       ExitInput,
	codeInternal:    ExitInternal,
}

// cliError is the only error shape that reaches the user.
type cliError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	ExitCode    int      `json:"exitCode"`
}

func (e *cliError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func newCLIError(code, message string, suggestions ...string) *cliError {
	return &cliError{
		Code:        code,
		Message:     message,
		Suggestions: suggestions,
		ExitCode:    exitCodes[code],
	}
}

func invalidArgsError(message string, suggestions ...string) error {
	return newCLIError(codeInvalidArgs, message, suggestions...)
}

func notFoundError(message string, suggestions ...string) error {
	return newCLIError(codeNotFound, message, suggestions...)
}

func inputError(action string, err error) error {
	return newCLIError(codeInput, fmt.Sprintf("%s: %v", action, err),
		`Input must be a JSON array of coupon objects or {"coupons": [...]}.`,
		"couponcli sample > coupons.json",
	)
}

// errorRule maps cobra, pflag and loader messages onto the taxonomy.
// Rules are tried in order; hint may prepend a did-you-mean line.
type errorRule struct {
	code        string
	markers     []string
	suggestions []string
	hint        func(msg string) string
}

var errorRules = []errorRule{
	{
		code:    codeInvalidArgs,
		markers: []string{"unknown command"},
		suggestions: []string{
			"couponcli buckets --input coupons.json",
			"couponcli suggest --input coupons.json",
		},
		hint: func(msg string) string {
			bad := extractUnknownValue(msg, "unknown command")
			if s, ok := closestMatch(strings.ToLower(bad), knownCommands, 2); ok && bad != "" {
				return fmt.Sprintf("Did you mean `%s`?", s)
			}
			return ""
		},
	},
	{
		code:    codeInvalidArgs,
		markers: []string{"unknown flag", "unknown shorthand flag"},
		suggestions: []string{
			"couponcli --input coupons.json",
			"couponcli --input coupons.json --today 2025-01-20",
		},
		hint: func(msg string) string {
			bad := strings.TrimLeft(extractUnknownValue(msg, "unknown flag"), "-")
			if s, ok := resolveFlagName(bad); ok && bad != "" {
				return fmt.Sprintf("Try `--%s`.", s)
			}
			return ""
		},
	},
	{
		code: codeInvalidArgs,
		markers: []string{
			"requires an argument for flag",
			"flag needs an argument",
			"invalid argument",
			"required flag(s)",
			"none of the others can be",
		},
		suggestions: []string{"couponcli --input coupons.json", "couponcli --input coupons.json --limit 10"},
	},
	{
		code:    codeNotFound,
		markers: []string{"no coupons found", "no coupons match"},
	},
	{
		code:        codeInput,
		markers:     []string{"reading input", "decoding coupons", "validating coupons"},
		suggestions: []string{"couponcli sample > coupons.json"},
	},
}

func (r errorRule) matches(lowerMsg string) bool {
	for _, m := range r.markers {
		if strings.Contains(lowerMsg, m) {
			return true
		}
	}
	return false
}

func classifyCLIError(err error) *cliError {
	if err == nil {
		return nil
	}
	var typed *cliError
	if errors.As(err, &typed) {
		return typed
	}

	msg := strings.TrimSpace(err.Error())
	lower := strings.ToLower(msg)
	for _, rule := range errorRules {
		if !rule.matches(lower) {
			continue
		}
		suggestions := append([]string(nil), rule.suggestions...)
		if rule.hint != nil {
			if h := rule.hint(msg); h != "" {
				suggestions = append([]string{h}, suggestions...)
			}
		}
		return newCLIError(rule.code, msg, suggestions...)
	}
	return newCLIError(codeInternal, msg, "Run `couponcli --help` for usage details.")
}

func printCLIErrorJSON(w io.Writer, err *cliError) error {
	if err == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(struct {
		Error *cliError `json:"error"`
	}{err})
}

func formatCLIErrorText(err *cliError) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "error[%s]: %s", strings.ToLower(err.Code), err.Message)
	if len(err.Suggestions) > 0 {
		b.WriteString("\nsuggestions:")
		for _, s := range err.Suggestions {
			b.WriteString("\n  " + s)
		}
	}
	return b.String()
}
