package diagnostic_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
	"github.com/leapstack-labs/hoshi/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ContainsError(t *testing.T) {
	tests := []struct {
		name       string
		severities []core.Severity
		want       bool
	}{
		{"empty", nil, false},
		{"warnings only", []core.Severity{core.SeverityWarning, core.SeverityWarning}, false},
		{"one error", []core.Severity{core.SeverityWarning, core.SeverityError}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := diagnostic.NewManager()
			for _, sev := range tt.severities {
				m.Add(diagnostic.Diagnostic{Message: "x", Severity: sev})
			}
			assert.Equal(t, tt.want, m.ContainsError())
		})
	}
}

func TestManager_KeepsInsertionOrder(t *testing.T) {
	m := diagnostic.NewManager()
	m.Add(diagnostic.Diagnostic{Message: "first", Severity: core.SeverityWarning})
	m.AddAll([]diagnostic.Diagnostic{
		{Message: "second", Severity: core.SeverityError},
		{Message: "first", Severity: core.SeverityWarning},
	})

	ds := m.Diagnostics()
	require.Len(t, ds, 3)
	assert.Equal(t, "first", ds[0].Message)
	assert.Equal(t, "second", ds[1].Message)
	assert.Equal(t, "first", ds[2].Message, "duplicates are kept")

	ds[0].Message = "changed"
	assert.Equal(t, "first", m.Diagnostics()[0].Message, "Diagnostics returns a copy")

	errs, warns := m.Counts()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, warns)
}

func TestRenderExcerpt(t *testing.T) {
	raw := "SELECT a\n|> WHERE x OR y"

	got := diagnostic.RenderExcerpt(12, 24, raw, core.SeverityError)
	want := "2 | |> WHERE x OR y\n" +
		"  |    ^^^^^^^^^^^^\n"
	assert.Equal(t, want, got)
}

func TestRenderExcerpt_MultiLine(t *testing.T) {
	raw := "FROM t\n|> WHERE a\n= 1"

	got := diagnostic.RenderExcerpt(10, 21, raw, core.SeverityWarning)
	want := "2 | |> WHERE a\n" +
		"  |    ^^^^^^^\n" +
		"3 | = 1\n" +
		"  | ^^^\n"
	assert.Equal(t, want, got)
}

func TestRenderExcerpt_EmptyRangeAtEnd(t *testing.T) {
	got := diagnostic.RenderExcerpt(9, 9, "FROM t |>", core.SeverityError)
	assert.Equal(t, "1 | FROM t |>\n  | "+strings.Repeat(" ", 9)+"^\n", got)
}

func TestRenderExcerpt_ClampsOutOfRange(t *testing.T) {
	assert.NotPanics(t, func() {
		diagnostic.RenderExcerpt(-3, 100, "abc", core.SeverityError)
	})
}

func TestReport(t *testing.T) {
	src := token.NewSource("query.hoshi", "FROM users |> WHERE a OR b")
	m := diagnostic.NewManager()
	m.Add(diagnostic.Diagnostic{
		RuleID:   "HS05",
		Message:  "unsupported operator",
		Hint:     "use supported operators like `=`, `<`, `>`",
		Range:    token.NewRange(14, 26),
		Severity: core.SeverityError,
	})
	m.Add(diagnostic.Diagnostic{
		Message:  "duplicate table",
		Range:    token.NewRange(0, 10),
		Severity: core.SeverityWarning,
	})

	var buf bytes.Buffer
	m.Report(&buf, src)

	want := "\n" +
		"ERROR >>> [HS05] unsupported operator\n" +
		"query.hoshi\n" +
		"\n" +
		"1 | FROM users |> WHERE a OR b\n" +
		"  | " + strings.Repeat(" ", 14) + "^^^^^^^^^^^^\n" +
		"\n" +
		"HELP: use supported operators like `=`, `<`, `>`\n" +
		"\n" +
		"\n" +
		"WARNING >>> duplicate table\n" +
		"query.hoshi\n" +
		"\n" +
		"1 | FROM users |> WHERE a OR b\n" +
		"  | ^^^^^^^^^^\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestFatal(t *testing.T) {
	d := diagnostic.Fatal("unterminated string literal", token.NewRange(3, 8))
	assert.True(t, d.IsError())
	assert.Empty(t, d.RuleID)
	assert.Equal(t, token.NewRange(3, 8), d.Range)
}
