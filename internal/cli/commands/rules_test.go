package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hoshi/pkg/lint"
)

func executeRules(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{"group", "verbose", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListAll(t *testing.T) {
	// A buffer is not a terminal, so auto mode renders markdown.
	output, err := executeRules(t)
	require.NoError(t, err)

	assert.Contains(t, output, "# Checker Rules")
	assert.Contains(t, output, "## Ambiguous")
	assert.Contains(t, output, "## Performance")
	assert.Contains(t, output, "## Structure")
	for _, id := range []string{"HS01", "HS02", "HS03", "HS04", "HS05", "HS06", "HS07"} {
		assert.Contains(t, output, "**"+id+"**")
	}
}

func TestRulesCommand_Text(t *testing.T) {
	output, err := executeRules(t, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, output, "Checker Rules (7)")
	assert.Contains(t, output, "HS05")
	assert.Contains(t, output, "unsupported operator")
	assert.Contains(t, output, "Performance")
	assert.NotContains(t, output, "\x1b[", "non-terminal output has no ANSI escapes")
}

func TestRulesCommand_FilterByGroup(t *testing.T) {
	t.Run("known group", func(t *testing.T) {
		output, err := executeRules(t, "--group", "structure")
		require.NoError(t, err)

		assert.Contains(t, output, "**HS02**")
		assert.Contains(t, output, "**HS06**")
		assert.NotContains(t, output, "**HS01**")
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := executeRules(t, "--group", "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no rules in group")
	})
}

func TestRulesCommand_ShowSpecificRule(t *testing.T) {
	output, err := executeRules(t, "HS05", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, output, "HS05 - performance.or_condition")
	assert.Contains(t, output, "Why This Matters")
	assert.Contains(t, output, "Options: mode")
}

func TestRulesCommand_ShowIsCaseInsensitive(t *testing.T) {
	output, err := executeRules(t, "hs01")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "# HS01"))
}

func TestRulesCommand_NotFound(t *testing.T) {
	_, err := executeRules(t, "INVALID99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRulesCommand_InvalidFormat(t *testing.T) {
	_, err := executeRules(t, "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output mode")
}

func TestRulesCommand_JSON(t *testing.T) {
	output, err := executeRules(t, "--format", "json")
	require.NoError(t, err)

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, lint.Count(), result.Count.Total)
	assert.Equal(t, 2, result.Count.ByGroup["ambiguous"])
	assert.Equal(t, 3, result.Count.ByGroup["performance"])
	assert.Equal(t, 2, result.Count.ByGroup["structure"])
}

func TestRulesCommand_Verbose(t *testing.T) {
	output, err := executeRules(t, "--verbose")
	require.NoError(t, err)

	// Descriptions and rationale are included.
	assert.Contains(t, output, "A WHERE condition uses OR")
	assert.Contains(t, output, "  > ")
}

func TestRulesCommand_SingleRuleJSON(t *testing.T) {
	output, err := executeRules(t, "HS04", "--format", "json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "HS04", result["id"])
	assert.Equal(t, "warning", result["default_severity"])
	assert.Equal(t, []any{"known_tables"}, result["config_keys"])
}

func TestRulesCommand_SingleRuleMarkdown(t *testing.T) {
	output, err := executeRules(t, "HS07", "--format", "markdown")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(output, "# HS07"))
	assert.Contains(t, output, "```sql")
}

func TestFilterRulesByGroup(t *testing.T) {
	rules := []lint.RuleInfo{
		{ID: "HS01", Group: "ambiguous"},
		{ID: "HS02", Group: "structure"},
		{ID: "HS03", Group: "ambiguous"},
	}

	assert.Equal(t, rules, filterRulesByGroup(rules, ""))

	got := filterRulesByGroup(rules, "Ambiguous")
	require.Len(t, got, 2)
	assert.Equal(t, "HS01", got[0].ID)
	assert.Equal(t, "HS03", got[1].ID)

	assert.Nil(t, filterRulesByGroup(rules, "performance"))
}

func TestTruncateOneLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"multiline", "hello\nworld", 20, "hello world"},
		{"multiline truncated", "hello\nworld", 8, "hello..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := truncateOneLine(tc.input, tc.maxLen)
			assert.Equal(t, tc.expected, result)
		})
	}
}
