package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldAutoJSON(t *testing.T) {
	assert.True(t, shouldAutoJSON([]string{"buckets", "--input", "c.json"}, false))
	assert.True(t, shouldAutoJSON([]string{"--input", "c.json", "suggest"}, false))
	assert.False(t, shouldAutoJSON([]string{"buckets", "--json"}, false))
	assert.False(t, shouldAutoJSON([]string{"--input", "c.json"}, false))
	assert.False(t, shouldAutoJSON([]string{"sample"}, false))
	assert.False(t, shouldAutoJSON([]string{"completion", "zsh"}, false))
	assert.False(t, shouldAutoJSON([]string{"buckets", "--help"}, false))
	assert.False(t, shouldAutoJSON([]string{"buckets"}, true))
}

func TestFirstCommand_SkipsFlagValues(t *testing.T) {
	assert.Equal(t, "buckets", firstCommand([]string{"--input", "c.json", "buckets"}))
	assert.Equal(t, "suggest", firstCommand([]string{"-t", "2025-01-20", "suggest"}))
	assert.Equal(t, "", firstCommand([]string{"--input", "c.json"}))
}

func TestPrintQuickStart_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := printQuickStart(&buf, true)
	require.NoError(t, err)

	var payload quickStartJSON
	err = json.Unmarshal(buf.Bytes(), &payload)
	require.NoError(t, err)

	assert.Equal(t, "couponcli", payload.Name)
	assert.NotEmpty(t, payload.Usage)
	assert.Len(t, payload.Examples, 3)
}

func TestPrintQuickStart_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printQuickStart(&buf, false))

	assert.Contains(t, buf.String(), "usage: couponcli")
	assert.Contains(t, buf.String(), "--today")
}

func TestPrintCLIErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	err := printCLIErrorJSON(&buf, classifyCLIError(invalidArgsError("bad flag", "couponcli --input coupons.json")))
	require.NoError(t, err)

	var payload map[string]any
	err = json.Unmarshal(buf.Bytes(), &payload)
	require.NoError(t, err)

	errorObject, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_ARGS", errorObject["code"])
	assert.Equal(t, "bad flag", errorObject["message"])
	assert.EqualValues(t, ExitInvalidArgs, errorObject["exitCode"])
}

func TestClassifyCLIError(t *testing.T) {
	tests := []struct {
		err      error
		code     string
		exitCode int
	}{
		{notFoundError("no coupons found in stdin"), "NOT_FOUND", ExitNotFound},
		{inputError("loading coupons from stdin", errors.New("decoding coupons: EOF")), "INPUT_ERROR", ExitInput},
		{fmt.Errorf("wrapped: %w", invalidArgsError("bad")), "INVALID_ARGS", ExitInvalidArgs},
		{errors.New(`invalid argument "abc" for "-n, --limit" flag`), "INVALID_ARGS", ExitInvalidArgs},
		{errors.New("flag needs an argument: --input"), "INVALID_ARGS", ExitInvalidArgs},
		{errors.New("validating coupons: payload does not match schema"), "INPUT_ERROR", ExitInput},
		{errors.New("no coupons match your filters"), "NOT_FOUND", ExitNotFound},
		{errors.New("something odd"), "INTERNAL_ERROR", ExitInternal},
	}
	for _, tt := range tests {
		got := classifyCLIError(tt.err)
		assert.Equal(t, tt.code, got.Code, "error %q", tt.err)
		assert.Equal(t, tt.exitCode, got.ExitCode, "error %q", tt.err)
	}
	assert.Nil(t, classifyCLIError(nil))
}

func TestFormatCLIErrorText(t *testing.T) {
	text := formatCLIErrorText(&cliError{Code: "NOT_FOUND", Message: "nothing", Suggestions: []string{"try again"}})

	assert.Equal(t, "error[not_found]: nothing\nsuggestions:\n  try again", text)
	assert.Empty(t, formatCLIErrorText(nil))
}
