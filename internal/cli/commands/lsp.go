package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hoshi/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start a Language Server Protocol server on stdin/stdout.

The server checks open documents as they change and publishes the
diagnostics, and offers completion, hover, go to definition for tables
and whole-document formatting. Lint settings come from hoshi.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			srv := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.Config{
				Engine:  cmdCtx.Engine,
				Format:  cmdCtx.Cfg.FormatOptions(),
				Logger:  cmdCtx.Logger,
				Version: version,
			})
			return srv.Run(cmd.Context())
		},
	}
}
