package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display Hoshi version and build information.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Hoshi v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pipe SQL compiler (commit %s, built %s, %s)\n", commit, buildDate, runtime.Version())
		},
	}
}
