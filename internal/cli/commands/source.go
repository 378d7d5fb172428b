package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
	"github.com/leapstack-labs/hoshi/pkg/parser"
	"github.com/leapstack-labs/hoshi/pkg/token"

	"github.com/leapstack-labs/hoshi/internal/engine"
)

func loadSource(path string) (*token.Source, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-named input file
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return token.NewSource(path, string(data)), nil
}

// reportFatal prints the single diagnostic for a lex or parse error and
// returns the error the command should exit with.
func reportFatal(cmdCtx *CommandContext, src *token.Source, err error) error {
	d, ok := parser.AsDiagnostic(err)
	if !ok {
		return err
	}
	cmdCtx.Reporter().Report([]diagnostic.Diagnostic{d}, src)
	return fmt.Errorf("%s: %w", src.Path, engine.ErrCheckFailed)
}
