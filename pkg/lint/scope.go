package lint

import (
	"sort"

	"github.com/leapstack-labs/hoshi/pkg/core"
)

// Scope is the state the Analyzer threads through a program: table names
// introduced by FROM and plain column names selected so far. A Scope is a
// value; the With methods return a new Scope and leave the receiver as is.
type Scope struct {
	tables  map[string]struct{}
	columns map[string]struct{}
}

// NewScope returns an empty scope.
func NewScope() Scope {
	return Scope{}
}

// HasTable reports whether name was introduced by a FROM.
func (s Scope) HasTable(name string) bool {
	_, ok := s.tables[name]
	return ok
}

// HasColumn reports whether name was already selected.
func (s Scope) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// WithTable returns s plus table name.
func (s Scope) WithTable(name string) Scope {
	if s.HasTable(name) {
		return s
	}
	s.tables = with(s.tables, name)
	return s
}

// WithColumn returns s plus column name.
func (s Scope) WithColumn(name string) Scope {
	if s.HasColumn(name) {
		return s
	}
	s.columns = with(s.columns, name)
	return s
}

// Tables returns the tables in scope, sorted.
func (s Scope) Tables() []string {
	return keys(s.tables)
}

// Columns returns the columns in scope, sorted.
func (s Scope) Columns() []string {
	return keys(s.columns)
}

// Advance returns the scope after stmt: a FROM (standalone or inline)
// adds its table and a SELECT adds its plain column names. Pipes are not
// handled here; the Analyzer visits their stages one by one.
func Advance(s Scope, stmt core.Statement) Scope {
	switch stmt := stmt.(type) {
	case *core.FromClause:
		s = s.WithTable(core.NameOf(stmt.Table))
	case *core.SelectStmt:
		for _, name := range SelectedColumns(stmt) {
			s = s.WithColumn(name)
		}
		if stmt.From != nil {
			s = s.WithTable(core.NameOf(stmt.From.Table))
		}
	}
	return s
}

// SelectedColumns returns the names of the plain column expressions in a
// select list, in order. Calls, literals and subqueries are skipped.
func SelectedColumns(stmt *core.SelectStmt) []string {
	var names []string
	for _, item := range stmt.Expressions {
		if col, ok := item.Expr.(*core.ColumnRef); ok {
			names = append(names, core.NameOf(col.Name))
		}
	}
	return names
}

func with(set map[string]struct{}, name string) map[string]struct{} {
	next := make(map[string]struct{}, len(set)+1)
	for k := range set {
		next[k] = struct{}{}
	}
	next[name] = struct{}{}
	return next
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
