package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hoshi/internal/cli/config"
)

// NewRunCommand creates the run command. Executing SQL is not supported;
// the command only echoes the file it was given.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run compiled SQL (not implemented)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.GetLogger(cmd.Context()).Warn("run is a stub; no database is contacted", "file", args[0])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%q\n", args[0])
			return err
		},
	}
}
