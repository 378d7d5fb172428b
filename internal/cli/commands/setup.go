package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hoshi/internal/cli/config"
	"github.com/leapstack-labs/hoshi/internal/cli/output"
	"github.com/leapstack-labs/hoshi/internal/engine"
	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the configuration and
// logger the root command stored in cmd's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   engine.New(cfg.EngineConfig(logger)),
		Renderer: newRenderer(cmd, cfg, ""),
	}
}

// WithFormat replaces the renderer when a command-level --format flag
// was given.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) error {
	if format == "" {
		return nil
	}
	if _, err := output.ParseMode(format); err != nil {
		return fmt.Errorf("--format: %w", err)
	}
	c.Renderer = newRenderer(cmd, c.Cfg, format)
	return nil
}

// Reporter returns a diagnostic reporter writing to stderr with the
// renderer's color profile.
func (c *CommandContext) Reporter() *diagnostic.Reporter {
	return diagnostic.NewReporterWithProfile(c.Renderer.ErrWriter(), c.Renderer.ColorProfile())
}

func newRenderer(cmd *cobra.Command, cfg *config.Config, format string) *output.Renderer {
	if format == "" {
		format = cfg.Output
	}
	// Both values were validated when the config was loaded.
	mode, _ := output.ParseMode(format)
	color, _ := output.ParseColor(cfg.Color)

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	r.SetColor(color)
	return r
}
