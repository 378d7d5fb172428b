package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

const indentSize = 2

// Printer lays out SQL one clause per line with indentation.
type Printer struct {
	emitter     emitter
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

func newPrinter(opts Options) *Printer {
	return &Printer{
		emitter:     emitter{opts: opts},
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// kw prints keywords separated by spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.write(" ")
		}
		p.write(t.String())
	}
}

// block writes pre-rendered multi-line text at the current depth.
func (p *Printer) block(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		p.write(line)
		p.writeln()
	}
}

func (p *Printer) formatComments(comments []*token.Comment) {
	for _, c := range comments {
		p.write("--" + c.Text)
		p.writeln()
	}
}

// formatList prints count items separated by sep, one per line.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
		p.writeln()
	}
}

// ---------- Statements ----------

func (p *Printer) formatProgram(prog *core.Program) {
	leading, trailing := Decorate(prog)
	for i, stmt := range prog.Statements {
		if i > 0 {
			p.writeln()
		}
		p.formatComments(leading[i])
		p.formatStmt(stmt)
	}
	p.formatComments(trailing)
}

func (p *Printer) formatStmt(stmt core.Statement) {
	switch s := stmt.(type) {
	case *core.PipeStmt:
		p.formatPipe(s)
	case *core.SelectStmt:
		p.formatSelect(s)
	case *core.FromClause:
		p.kw(token.FROM)
		p.write(" " + core.NameOf(s.Table))
		p.writeln()
	case *core.JoinClause:
		p.kw(token.JOIN)
		p.write(" " + core.NameOf(s.Table) + " ")
		p.kw(token.ON)
		p.write(" " + p.emitter.expr(s.On))
		p.writeln()
	case *core.WhereClause:
		p.kw(token.WHERE)
		p.writeln()
		p.indent()
		p.write(p.emitter.expr(s.Condition))
		p.writeln()
		p.dedent()
	case *core.GroupByClause:
		p.kw(token.GROUP, token.BY)
		p.writeln()
		p.indent()
		p.formatList(len(s.Columns), func(i int) {
			p.write(p.emitter.column(s.Columns[i]))
		}, ",")
		p.dedent()
	case *core.OrderClause:
		p.kw(token.ORDER, token.BY)
		p.writeln()
		p.indent()
		p.formatList(len(s.Columns), func(i int) {
			p.write(p.emitter.orderColumn(s.Columns[i]))
		}, ",")
		p.dedent()
	case *core.LimitClause:
		p.write(p.emitter.limit(s))
		p.writeln()
	case *core.AggregateClause:
		p.write(p.emitter.aggregate(s))
		p.writeln()
	case *core.ExprStmt:
		p.write(p.emitter.expr(s.Expr))
		p.writeln()
	}
}

// formatPipe mirrors emitter.pipe: an aggregate wraps the rendered left side.
func (p *Printer) formatPipe(s *core.PipeStmt) {
	agg, ok := s.Right.(*core.AggregateClause)
	if !ok {
		p.formatStmt(s.Left)
		p.formatStmt(s.Right)
		return
	}

	base := newPrinter(p.emitter.opts)
	base.formatStmt(s.Left)
	text := base.String()

	p.kw(token.SELECT)
	p.writeln()
	p.indent()
	p.write(p.emitter.aggregate(agg))
	p.writeln()
	p.dedent()

	if strings.HasPrefix(strings.TrimSpace(text), "FROM") {
		p.block(text)
		return
	}
	p.kw(token.FROM)
	p.writeln()
	p.indent()
	p.block(text)
	p.dedent()
}

func (p *Printer) formatSelect(s *core.SelectStmt) {
	p.kw(token.SELECT)
	if s.Distinct {
		p.write(" ")
		p.kw(token.DISTINCT)
	}
	p.writeln()

	p.indent()
	p.formatList(len(s.Expressions), func(i int) {
		p.write(p.emitter.selectExpr(s.Expressions[i]))
	}, ",")
	p.dedent()

	if s.From != nil {
		p.kw(token.FROM)
		p.write(" " + core.NameOf(s.From.Table))
		p.writeln()
	}
}
