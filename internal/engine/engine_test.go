package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hoshi/internal/testutil"
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/format"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	cfg.Logger = testutil.NewTestLogger(t)
	return New(cfg)
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"select", "SELECT name FROM users", "SELECT name FROM users"},
		{"pipe", "SELECT name FROM users |> WHERE age > 18", "SELECT name FROM users WHERE age > 18"},
		{"aggregate", "FROM users |> AGGREGATE COUNT(id)", "SELECT COUNT(id) FROM users"},
		{"qualified column", "SELECT users.id FROM users", "SELECT id.users FROM users"},
	}

	e := newTestEngine(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Compile(context.Background(), token.NewSource("q.hoshi", tt.input))
			require.NoError(t, err)
			assert.False(t, res.Fatal)
			assert.Empty(t, res.Diagnostics)
			assert.NoError(t, res.Err())
			assert.Equal(t, tt.want, res.SQL)
			assert.NotEmpty(t, res.RunID)
			assert.Equal(t, "q.hoshi", res.Path)
		})
	}
}

func TestCompile_FormatOptions(t *testing.T) {
	e := newTestEngine(t, Config{Format: format.Options{ColumnOrder: format.QualifierFirst}})
	res, err := e.Compile(context.Background(), token.NewSource("q", "SELECT users.id FROM users"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT users.id FROM users", res.SQL)
}

func TestCompile_Pretty(t *testing.T) {
	e := newTestEngine(t, Config{Pretty: true})
	res, err := e.Compile(context.Background(), token.NewSource("q", "SELECT name FROM users |> WHERE age > 18"))
	require.NoError(t, err)
	assert.Equal(t, format.Pretty(res.Program), res.SQL)
}

func TestCompile_FatalError(t *testing.T) {
	e := newTestEngine(t, Config{})
	res, err := e.Compile(context.Background(), token.NewSource("q", `SELECT "abc`))
	require.NoError(t, err)

	assert.True(t, res.Fatal)
	assert.Nil(t, res.Program)
	assert.Empty(t, res.SQL)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "unterminated string literal", res.Diagnostics[0].Message)
	assert.Equal(t, token.NewRange(7, 11), res.Diagnostics[0].Range)
	assert.ErrorIs(t, res.Err(), ErrCheckFailed)
}

func TestCompile_ErrorGatesEmission(t *testing.T) {
	e := newTestEngine(t, Config{})
	res, err := e.Compile(context.Background(), token.NewSource("q", "FROM users |> WHERE a OR b"))
	require.NoError(t, err)

	assert.NotNil(t, res.Program)
	assert.True(t, res.ContainsError())
	assert.Empty(t, res.SQL)
	assert.ErrorIs(t, res.Err(), ErrCheckFailed)
	assert.Equal(t, 1, res.Manager().Len())
}

func TestCompile_WarningsStillEmit(t *testing.T) {
	e := newTestEngine(t, Config{})
	res, err := e.Compile(context.Background(), token.NewSource("q", "SELECT id, id FROM t"))
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, core.SeverityWarning, res.Diagnostics[0].Severity)
	assert.False(t, res.ContainsError())
	assert.Equal(t, "SELECT id, id FROM t", res.SQL)
}

func TestCompile_LintConfig(t *testing.T) {
	cfg := lint.NewConfig().SetSeverity("HS05", core.SeverityWarning)
	e := newTestEngine(t, Config{Lint: cfg})
	res, err := e.Compile(context.Background(), token.NewSource("q", "FROM users |> WHERE a OR b"))
	require.NoError(t, err)

	assert.False(t, res.ContainsError())
	assert.Equal(t, "FROM users WHERE a OR b", res.SQL)
}

func TestCheck_SkipsEmission(t *testing.T) {
	e := newTestEngine(t, Config{})
	res, err := e.Check(context.Background(), token.NewSource("q", "SELECT name FROM users"))
	require.NoError(t, err)
	assert.Empty(t, res.SQL)
	assert.NotNil(t, res.Diagnostics)
	assert.Empty(t, res.Diagnostics)
}

func TestCompile_CanceledContext(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Compile(ctx, token.NewSource("q", "SELECT a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileFiles_Order(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 8 {
		paths = append(paths, testutil.WriteFile(t, dir, fmt.Sprintf("q%d.hoshi", i), fmt.Sprintf("SELECT c%d FROM t", i)))
	}

	e := newTestEngine(t, Config{Concurrency: 3})
	results, err := e.CompileFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, res := range results {
		assert.Equal(t, paths[i], res.Path)
		assert.Equal(t, fmt.Sprintf("SELECT c%d FROM t", i), res.SQL)
	}

	// Run IDs are per run.
	assert.NotEqual(t, results[0].RunID, results[1].RunID)
}

func TestCompileFiles_MissingFile(t *testing.T) {
	dir := t.TempDir()
	ok := testutil.WriteFile(t, dir, "ok.hoshi", "SELECT a")

	e := newTestEngine(t, Config{})
	_, err := e.CompileFiles(context.Background(), []string{ok, dir + "/missing.hoshi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.hoshi")
	assert.False(t, errors.Is(err, ErrCheckFailed))
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteFile(t, dir, "good.hoshi", "SELECT a FROM t")
	bad := testutil.WriteFile(t, dir, "bad.hoshi", "SELECT a FROM t |> WHERE a OR b")

	e := newTestEngine(t, Config{})
	results, err := e.CheckFiles(context.Background(), []string{good, bad})
	require.NoError(t, err)
	assert.False(t, results[0].ContainsError())
	assert.True(t, results[1].ContainsError())
}
