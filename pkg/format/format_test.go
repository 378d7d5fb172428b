package format_test

import (
	"testing"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/format"
	"github.com/leapstack-labs/hoshi/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, input string) string {
	t.Helper()
	prog, err := parser.Parse(input)
	require.NoError(t, err)
	return format.SQL(prog)
}

func TestSQL_RoundTrips(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"select with inline from", "SELECT name FROM users", "SELECT name FROM users"},
		{"pipe where", "SELECT name FROM users |> WHERE age > 18", "SELECT name FROM users WHERE age > 18"},
		{"aggregate over from", "FROM users |> AGGREGATE COUNT(id)", "SELECT COUNT(id) FROM users"},
		{"aggregate alias", "FROM users |> AGGREGATE SUM(total) AS revenue", "SELECT SUM(total) AS revenue FROM users"},
		{"aggregate over non-from base", "SELECT id |> AGGREGATE COUNT(id)", "SELECT COUNT(id) FROM SELECT id"},
		{"aggregate after where", "FROM users |> WHERE age > 18 |> AGGREGATE AVG(age)", "SELECT AVG(age) FROM users WHERE age > 18"},
		{"distinct and alias", "SELECT DISTINCT city AS c FROM users", "SELECT DISTINCT city AS c FROM users"},
		{"join", "FROM users |> JOIN orders ON id = user_id", "FROM users JOIN orders ON id = user_id"},
		{"group by", "SELECT region FROM sales |> GROUP BY region, city", "SELECT region FROM sales GROUP BY region, city"},
		{"order by renders direction", "SELECT a FROM t |> ORDER BY a, b DESC", "SELECT a FROM t ORDER BY a ASC, b DESC"},
		{"limit", "SELECT a FROM t |> LIMIT 10", "SELECT a FROM t LIMIT 10"},
		{"limit offset", "SELECT a FROM t |> LIMIT 10, 5", "SELECT a FROM t LIMIT 10, 5"},
		{"limit offset keyword", "SELECT a FROM t |> LIMIT 10 OFFSET 5", "SELECT a FROM t LIMIT 10, 5"},
		{"string literal single quoted", `SELECT a FROM t |> WHERE status = "active"`, "SELECT a FROM t WHERE status = 'active'"},
		{"embedded quote doubled", `SELECT a FROM t |> WHERE name = "O'Brien"`, "SELECT a FROM t WHERE name = 'O''Brien'"},
		{"boolean and not equal", "SELECT a FROM t |> WHERE active != false", "SELECT a FROM t WHERE active != false"},
		{"function calls", "SELECT COUNT(id), lower(name) FROM users", "SELECT COUNT(id), lower(name) FROM users"},
		{"subquery", "FROM t |> AGGREGATE MAX((SELECT x FROM y))", "SELECT MAX((SELECT x FROM y)) FROM t"},
		{"statements joined by space", "SELECT a FROM t; SELECT b FROM u;", "SELECT a FROM t SELECT b FROM u"},
		{"comments dropped", "-- all users\nSELECT name FROM users -- done", "SELECT name FROM users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, compile(t, tt.input))
		})
	}
}

func TestSQL_QualifiedColumnOrder(t *testing.T) {
	prog, err := parser.Parse("SELECT users.id FROM users")
	require.NoError(t, err)

	assert.Equal(t, format.NameFirst, format.QualifiedColumnOrder)
	assert.Equal(t, "SELECT id.users FROM users", format.SQL(prog),
		"qualified columns render name first by default")
	assert.Equal(t, "SELECT users.id FROM users",
		format.SQLWith(prog, format.Options{ColumnOrder: format.QualifierFirst}))
}

func TestParseColumnOrder(t *testing.T) {
	order, ok := format.ParseColumnOrder("qualifier-first")
	assert.True(t, ok)
	assert.Equal(t, format.QualifierFirst, order)

	order, ok = format.ParseColumnOrder("")
	assert.True(t, ok)
	assert.Equal(t, format.NameFirst, order)

	_, ok = format.ParseColumnOrder("sideways")
	assert.False(t, ok)
}

func TestSQL_Nodes(t *testing.T) {
	prog, err := parser.Parse("FROM users |> WHERE age > 18")
	require.NoError(t, err)

	pipe := prog.Statements[0].(*core.PipeStmt)
	assert.Equal(t, "FROM users", format.SQL(pipe.Left))

	where := pipe.Right.(*core.WhereClause)
	assert.Equal(t, "age > 18", format.SQL(where.Condition))
}

func TestPretty(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "select pipe where",
			input: "SELECT name, age FROM users |> WHERE age > 18",
			expected: `SELECT
  name,
  age
FROM users
WHERE
  age > 18
`,
		},
		{
			name:  "aggregate over from",
			input: "FROM users |> AGGREGATE COUNT(id) AS n",
			expected: `SELECT
  COUNT(id) AS n
FROM users
`,
		},
		{
			name:  "aggregate over select",
			input: "SELECT id |> AGGREGATE COUNT(id)",
			expected: `SELECT
  COUNT(id)
FROM
  SELECT
    id
`,
		},
		{
			name:  "group and order",
			input: "FROM sales |> GROUP BY region |> ORDER BY region DESC |> LIMIT 5",
			expected: `FROM sales
GROUP BY
  region
ORDER BY
  region DESC
LIMIT 5
`,
		},
		{
			name:  "comments kept before statements",
			input: "-- first\nSELECT DISTINCT a FROM t;\n-- second\nFROM u |> JOIN v ON x = y",
			expected: `-- first
SELECT DISTINCT
  a
FROM t

-- second
FROM u
JOIN v ON x = y
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format.Pretty(prog))
		})
	}
}

func TestDecorate(t *testing.T) {
	prog, err := parser.Parse("-- a\nSELECT x; -- b\nSELECT y -- c")
	require.NoError(t, err)

	leading, trailing := format.Decorate(prog)
	require.Len(t, leading, 2)
	require.Len(t, leading[0], 1)
	assert.Equal(t, "a", leading[0][0].Body())
	require.Len(t, leading[1], 1)
	assert.Equal(t, "b", leading[1][0].Body())
	require.Len(t, trailing, 1)
	assert.Equal(t, "c", trailing[0].Body())
}
