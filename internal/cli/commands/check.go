package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check pipe SQL without emitting",
		Long: `Lex, parse and check one or more Hoshi files and report every
diagnostic. Nothing is emitted. Exits non-zero when any file has an
error-severity diagnostic.`,
		Example: `  # Check a file
  hoshi check report.hoshi

  # Silence a rule for this run
  hoshi check report.hoshi --disable HS04

  # Machine-readable diagnostics
  hoshi check *.hoshi -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			check := func(ctx context.Context, paths []string) error {
				results, err := cmdCtx.Engine.CheckFiles(ctx, paths)
				if err != nil {
					return err
				}
				return renderResults(cmdCtx, results, false)
			}
			if watch {
				return watchFiles(cmd.Context(), cmdCtx, args, check)
			}
			return check(cmd.Context(), args)
		},
	}

	cmd.Flags().StringSlice("disable", nil, "Rule IDs to disable")
	cmd.Flags().Int("concurrency", 0, "Files checked in parallel (0 = all)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-check when a file changes")

	return cmd
}
