package commands

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/hoshi/internal/cli/output"
	"github.com/leapstack-labs/hoshi/pkg/core"
	"github.com/leapstack-labs/hoshi/pkg/parser"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// NewASTCommand creates the ast command.
func NewASTCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the parsed syntax tree of a file",
		Long: `Parse a Hoshi file and print its syntax tree as YAML. Every node
carries its type and byte range; pipelines appear left-deep.`,
		Example: `  hoshi ast report.hoshi
  hoshi ast report.hoshi --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			if err := cmdCtx.WithFormat(cmd, format); err != nil {
				return err
			}

			src, err := loadSource(args[0])
			if err != nil {
				return err
			}
			prog, err := parser.ParseSource(src)
			if err != nil {
				return reportFatal(cmdCtx, src, err)
			}

			tree := astNode(prog)
			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				var v any
				if err := tree.Decode(&v); err != nil {
					return fmt.Errorf("failed to convert tree: %w", err)
				}
				return r.JSON(v)
			}

			enc := yaml.NewEncoder(r.Writer())
			enc.SetIndent(2)
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("failed to encode tree: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml (text, markdown) or json")
	return cmd
}

// astNode converts an AST node into an ordered YAML mapping.
func astNode(n core.Node) *yaml.Node {
	if n == nil || reflect.ValueOf(n).IsNil() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}

	m := newMapping()
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, scalar(key), value)
	}

	typeName := reflect.TypeOf(n).Elem().Name()
	add("type", scalar(typeName))
	add("range", rangeNode(n.Range()))

	switch v := n.(type) {
	case *core.Program:
		stmts := newSequence()
		for _, s := range v.Statements {
			stmts.Content = append(stmts.Content, astNode(s))
		}
		add("statements", stmts)
		if len(v.Comments) > 0 {
			comments := newSequence()
			for _, c := range v.Comments {
				cm := newMapping()
				cm.Content = append(cm.Content,
					scalar("text"), scalar(c.Body()),
					scalar("range"), rangeNode(c.Range))
				comments.Content = append(comments.Content, cm)
			}
			add("comments", comments)
		}
	case *core.PipeStmt:
		add("left", astNode(v.Left))
		add("right", astNode(v.Right))
	case *core.SelectStmt:
		if v.Distinct {
			add("distinct", boolNode(true))
		}
		exprs := newSequence()
		for _, e := range v.Expressions {
			exprs.Content = append(exprs.Content, astNode(e))
		}
		add("expressions", exprs)
		if v.From != nil {
			add("from", astNode(v.From))
		}
	case *core.SelectExpr:
		add("expr", astNode(v.Expr))
		if v.Alias != nil {
			add("alias", scalar(v.Alias.Name))
		}
	case *core.FromClause:
		add("table", scalar(core.NameOf(v.Table)))
	case *core.JoinClause:
		add("join_type", scalar(string(v.Type)))
		add("table", scalar(core.NameOf(v.Table)))
		add("on", astNode(v.On))
	case *core.WhereClause:
		add("condition", astNode(v.Condition))
	case *core.GroupByClause:
		cols := newSequence()
		for _, c := range v.Columns {
			cols.Content = append(cols.Content, astNode(c))
		}
		add("columns", cols)
	case *core.OrderClause:
		cols := newSequence()
		for _, c := range v.Columns {
			cols.Content = append(cols.Content, astNode(c))
		}
		add("columns", cols)
	case *core.OrderColumn:
		add("column", astNode(v.Column))
		add("direction", scalar(v.Direction.String()))
	case *core.LimitClause:
		add("count", astNode(v.Count))
		if v.Offset != nil {
			add("offset", astNode(v.Offset))
		}
	case *core.AggregateClause:
		add("function", scalar(v.Function.String()))
		add("argument", astNode(v.Argument))
		if v.Alias != nil {
			add("alias", scalar(v.Alias.Name))
		}
	case *core.ExprStmt:
		add("expr", astNode(v.Expr))
	case *core.ColumnRef:
		if v.Table != nil {
			add("table", scalar(v.Table.Name))
		}
		add("name", scalar(core.NameOf(v.Name)))
	case *core.Literal:
		add("kind", scalar(v.Kind.String()))
		add("value", scalar(v.Value))
	case *core.ConditionExpr:
		add("left", astNode(v.Left))
		add("op", scalar(v.Op.Symbol()))
		add("right", astNode(v.Right))
	case *core.FunctionCall:
		add("name", scalar(core.NameOf(v.Name)))
		args := newSequence()
		for _, a := range v.Args {
			args.Content = append(args.Content, astNode(a))
		}
		add("args", args)
	case *core.SubqueryExpr:
		add("statement", astNode(v.Stmt))
	}
	return m
}

func newMapping() *yaml.Node  { return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"} }
func newSequence() *yaml.Node { return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"} }

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func intNode(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func rangeNode(r token.Range) *yaml.Node {
	seq := newSequence()
	seq.Style = yaml.FlowStyle
	seq.Content = []*yaml.Node{intNode(r.Start), intNode(r.End)}
	return seq
}
