package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hoshi/internal/cli/output"
	clitestutil "github.com/leapstack-labs/hoshi/internal/cli/testutil"
	"github.com/leapstack-labs/hoshi/internal/engine"
	"github.com/leapstack-labs/hoshi/internal/testutil"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"compile", "check", "run", "tokens", "ast", "repl", "rules", "lsp", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "output", "color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestCompile_Text(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	stdout, stderr, err := run(t, "compile", "-o", "text", filepath.Join(dir, clitestutil.CleanFile))
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, total FROM orders WHERE status = 'open'\n", stdout)
	assert.Empty(t, stderr)
}

func TestCompile_Pretty(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "q.hoshi", "SELECT name FROM users |> WHERE age > 18")

	compact, _, err := run(t, "compile", "-o", "text", path)
	require.NoError(t, err)
	pretty, _, err := run(t, "compile", "-o", "text", "--pretty", path)
	require.NoError(t, err)

	assert.NotEqual(t, compact, pretty)
	assert.Contains(t, pretty, "\n")
}

func TestCompile_QualifiedOrderFlag(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "q.hoshi", "SELECT users.id FROM users")

	stdout, _, err := run(t, "compile", "-o", "text", path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id.users FROM users\n", stdout)

	stdout, _, err = run(t, "compile", "-o", "text", "--qualified-order", "qualifier-first", path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT users.id FROM users\n", stdout)
}

func TestCompile_ErrorExits(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	stdout, stderr, err := run(t, "compile", "-o", "text", filepath.Join(dir, clitestutil.ErrorFile))
	require.ErrorIs(t, err, engine.ErrCheckFailed)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "ERROR >>> [HS05] unsupported operator")
	assert.Contains(t, stderr, "1 | FROM payments |> WHERE cash OR card")
	clitestutil.AssertNoANSI(t, stderr)
}

func TestCompile_DisableFlag(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	stdout, _, err := run(t, "compile", "-o", "text", "--disable", "HS05", filepath.Join(dir, clitestutil.ErrorFile))
	require.NoError(t, err)
	assert.Contains(t, stdout, "OR")
}

func TestCompile_JSON(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	stdout, _, err := run(t, "compile", "-o", "json",
		filepath.Join(dir, clitestutil.CleanFile),
		filepath.Join(dir, clitestutil.WarningFile),
		filepath.Join(dir, clitestutil.ErrorFile))
	require.ErrorIs(t, err, engine.ErrCheckFailed)

	var got output.CompileOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got.Files, 3)
	assert.Equal(t, 3, got.Summary.Files)
	assert.Equal(t, 1, got.Summary.Errors)
	assert.Equal(t, 1, got.Summary.Warnings)

	assert.NotEmpty(t, got.Files[0].SQL)
	assert.NotEmpty(t, got.Files[1].SQL)
	assert.Empty(t, got.Files[2].SQL)
	require.Len(t, got.Files[1].Diagnostics, 1)
	assert.Equal(t, "HS01", got.Files[1].Diagnostics[0].RuleID)
	assert.Equal(t, 1, got.Files[1].Diagnostics[0].Start.Line)
}

func TestCheck_Markdown(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	_, stderr, err := run(t, "check", filepath.Join(dir, clitestutil.WarningFile))
	require.NoError(t, err)
	assert.Contains(t, stderr, "WARNING >>>")
	clitestutil.AssertNoANSI(t, stderr)
}

func TestRun_Stub(t *testing.T) {
	stdout, _, err := run(t, "run", "report.hoshi")
	require.NoError(t, err)
	assert.Equal(t, "\"report.hoshi\"\n", stdout)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := testutil.WriteFile(t, dir, "custom.yaml", `output: text
lint:
  disabled: [HS05]
`)
	path := testutil.WriteFile(t, dir, "q.hoshi", "FROM users |> WHERE a OR b")

	stdout, _, err := run(t, "--config", cfgPath, "compile", path)
	require.NoError(t, err)
	assert.Equal(t, "FROM users WHERE a OR b\n", stdout)
}

func TestInvalidOutput(t *testing.T) {
	_, _, err := run(t, "compile", "-o", "html", "q.hoshi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output mode")
}

func TestCompletion(t *testing.T) {
	stdout, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hoshi")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Hoshi v"+Version)
}

func TestLSP_ExitsOnEOF(t *testing.T) {
	t.Chdir(t.TempDir())

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"lsp"})
	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())
}
