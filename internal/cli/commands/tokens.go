package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hoshi/internal/cli/output"
	"github.com/leapstack-labs/hoshi/pkg/parser"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Long: `Lex a Hoshi file and print every token with its byte range and
line:column position, up to and including EOF.`,
		Example: `  hoshi tokens report.hoshi
  hoshi tokens report.hoshi --format json`,
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
			toks, err := parser.Tokenize(src.Raw)
			if err != nil {
				return reportFatal(cmdCtx, src, err)
			}
			return renderTokens(cmdCtx.Renderer, src, toks)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json, markdown")
	return cmd
}

func renderTokens(r *output.Renderer, src *token.Source, toks []token.Token) error {
	if r.EffectiveMode() == output.ModeJSON {
		out := make([]output.TokenOutput, 0, len(toks))
		for _, tok := range toks {
			out = append(out, output.TokenOutput{
				Type:    tok.Type.String(),
				Literal: tok.Literal,
				Text:    src.Text(tok.Range),
				Range:   tok.Range,
				Start:   src.Position(tok.Range.Start),
			})
		}
		return r.JSON(out)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.Writer())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Type", "Literal", "Range", "Position"})
	for i, tok := range toks {
		pos := src.Position(tok.Range.Start)
		tw.AppendRow(table.Row{i, tok.Type.String(), tok.Literal, tok.Range.String(), fmt.Sprintf("%d:%d", pos.Line, pos.Column)})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		tw.RenderMarkdown()
	} else {
		tw.Render()
	}
	return nil
}
