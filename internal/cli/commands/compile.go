package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hoshi/internal/cli/output"
	"github.com/leapstack-labs/hoshi/internal/engine"
)

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	Watch bool
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}
	cmd := &cobra.Command{
		Use:   "compile <file>...",
		Short: "Compile pipe SQL to plain SQL",
		Long: `Compile one or more Hoshi files into single-statement SQL.

Each file is lexed, parsed and checked. Every diagnostic is reported on
stderr; a file with an error-severity diagnostic is not emitted and the
command exits non-zero.

Output adapts to environment:
  - Terminal: Plain SQL
  - Piped/Scripted: Markdown with code block
  - JSON: SQL and diagnostics per file`,
		Example: `  # Compile a file
  hoshi compile report.hoshi

  # One clause per line
  hoshi compile report.hoshi --pretty

  # Conventional table.column order
  hoshi compile report.hoshi --qualified-order qualifier-first

  # Recompile on every save
  hoshi compile report.hoshi --watch

  # Machine-readable output
  hoshi compile a.hoshi b.hoshi -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, opts)
		},
	}

	cmd.Flags().Bool("pretty", false, "Emit one clause per line")
	cmd.Flags().String("qualified-order", "", "Qualified column order: name-first, qualifier-first")
	cmd.Flags().StringSlice("disable", nil, "Rule IDs to disable")
	cmd.Flags().Int("concurrency", 0, "Files compiled in parallel (0 = all)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Recompile when a file changes")

	_ = cmd.RegisterFlagCompletionFunc("qualified-order", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"name-first", "qualifier-first"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCompile(cmd *cobra.Command, paths []string, opts *CompileOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if opts.Watch {
		return watchFiles(cmd.Context(), cmdCtx, paths, func(ctx context.Context, changed []string) error {
			return compileOnce(ctx, cmdCtx, changed)
		})
	}
	return compileOnce(cmd.Context(), cmdCtx, paths)
}

func compileOnce(ctx context.Context, cmdCtx *CommandContext, paths []string) error {
	results, err := cmdCtx.Engine.CompileFiles(ctx, paths)
	if err != nil {
		return err
	}
	return renderResults(cmdCtx, results, true)
}

// renderResults reports diagnostics and, when emit is set, prints the SQL
// of every file that compiled cleanly. It returns an error wrapping
// engine.ErrCheckFailed if any file has an error-severity diagnostic.
func renderResults(cmdCtx *CommandContext, results []*engine.Result, emit bool) error {
	r := cmdCtx.Renderer
	mode := r.EffectiveMode()

	failed := 0
	for _, res := range results {
		if res.ContainsError() {
			failed++
		}
	}

	switch mode {
	case output.ModeJSON:
		if err := r.JSON(compileOutput(results)); err != nil {
			return err
		}
	default:
		reporter := cmdCtx.Reporter()
		for _, res := range results {
			reporter.Report(res.Diagnostics, res.Source)
			if !emit {
				continue
			}
			if res.ContainsError() {
				continue
			}
			if mode == output.ModeMarkdown {
				r.Println(output.FormatHeader(2, res.Path))
				r.Println("")
				r.Println(output.FormatCodeBlock("sql", res.SQL))
				r.Println("")
				continue
			}
			if len(results) > 1 {
				r.Muted("-- " + res.Path)
			}
			r.Println(res.SQL)
		}
		if !emit {
			renderCheckSummary(r, results)
		}
	}

	for _, res := range results {
		cmdCtx.Logger.Debug("file done",
			"file", res.Path,
			"run_id", res.RunID,
			"diagnostics", len(res.Diagnostics),
			"fatal", res.Fatal)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed: %w", failed, len(results), engine.ErrCheckFailed)
	}
	return nil
}

func renderCheckSummary(r *output.Renderer, results []*engine.Result) {
	for _, res := range results {
		errs, warns := res.Manager().Counts()
		switch {
		case errs > 0:
			r.Error(fmt.Sprintf("%s: %d error(s), %d warning(s)", res.Path, errs, warns))
		case warns > 0:
			r.Println(fmt.Sprintf("%s: ok, %d warning(s)", res.Path, warns))
		default:
			r.Success(res.Path + ": ok")
		}
	}
}

func compileOutput(results []*engine.Result) output.CompileOutput {
	out := output.CompileOutput{Files: make([]output.FileOutput, 0, len(results))}
	for _, res := range results {
		errs, warns := res.Manager().Counts()
		out.Files = append(out.Files, output.FileOutput{
			Path:        res.Path,
			RunID:       res.RunID,
			SQL:         res.SQL,
			Errors:      errs,
			Warnings:    warns,
			Diagnostics: output.NewDiagnosticOutputs(res.Diagnostics, res.Source),
		})
		out.Summary.Errors += errs
		out.Summary.Warnings += warns
	}
	out.Summary.Files = len(results)
	return out
}
